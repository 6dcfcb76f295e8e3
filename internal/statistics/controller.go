package statistics

import (
	"github.com/flagbot/flagbot/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

var modes = []controller.Mode{controller.ModeDisabled, controller.ModeDriver, controller.ModeAutonomous}

type ControllerCollector struct {
	controller controller.RobotController

	mode             *prometheus.Desc
	lastRunDuration  *prometheus.Desc
	lastRunCompleted *prometheus.Desc
	lastRunSteps     *prometheus.Desc
}

func NewControllerCollector(robotController controller.RobotController) *ControllerCollector {
	return &ControllerCollector{
		controller: robotController,
		mode: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "mode"),
			"1 for the active mode of the controller",
			[]string{"mode"}, nil,
		),
		lastRunDuration: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "last_run_duration_seconds"),
			"Duration of the last autonomous run",
			[]string{"routine", "alliance"}, nil,
		),
		lastRunCompleted: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "last_run_completed"),
			"1 if the last autonomous run executed all of its steps",
			[]string{"routine", "alliance"}, nil,
		),
		lastRunSteps: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "last_run_failed_steps"),
			"Number of steps of the last autonomous run that did not converge",
			[]string{"routine", "alliance"}, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.mode
	ch <- collector.lastRunDuration
	ch <- collector.lastRunCompleted
	ch <- collector.lastRunSteps
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	active := collector.controller.Mode()
	for _, mode := range modes {
		ch <- prometheus.MustNewConstMetric(collector.mode, prometheus.GaugeValue, boolValue(mode == active), string(mode))
	}

	run := collector.controller.LastRun()
	if run == nil {
		return
	}
	failed := 0
	for _, step := range run.Steps {
		if step.Error != "" {
			failed++
		}
	}
	routine := run.Routine
	alliance := string(run.Alliance)
	ch <- prometheus.MustNewConstMetric(collector.lastRunDuration, prometheus.GaugeValue, float64(run.EndMs-run.StartMs)/1000, routine, alliance)
	ch <- prometheus.MustNewConstMetric(collector.lastRunCompleted, prometheus.GaugeValue, boolValue(run.Completed), routine, alliance)
	ch <- prometheus.MustNewConstMetric(collector.lastRunSteps, prometheus.GaugeValue, float64(failed), routine, alliance)
}
