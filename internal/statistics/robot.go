package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const robotSubsystem = "robot"

type RobotCollector struct {
	source SnapshotSource

	tick          *prometheus.Desc
	drive         *prometheus.Desc
	sinkErrorRate *prometheus.Desc
	fireShot      *prometheus.Desc
	fireStage     *prometheus.Desc
}

func NewRobotCollector(source SnapshotSource) *RobotCollector {
	return &RobotCollector{
		source: source,
		tick: prometheus.NewDesc(prometheus.BuildFQName(namespace, robotSubsystem, "tick"),
			"Number of control ticks run since start",
			nil, nil,
		),
		drive: prometheus.NewDesc(prometheus.BuildFQName(namespace, robotSubsystem, "drive"),
			"Drive intent of a side in [-127, 127]",
			[]string{"side"}, nil,
		),
		sinkErrorRate: prometheus.NewDesc(prometheus.BuildFQName(namespace, robotSubsystem, "sink_error_rate"),
			"Fraction of failed actuator writes over the recent ticks",
			nil, nil,
		),
		fireShot: prometheus.NewDesc(prometheus.BuildFQName(namespace, robotSubsystem, "fire_shot_state"),
			"1 for the current single shot state",
			[]string{"state"}, nil,
		),
		fireStage: prometheus.NewDesc(prometheus.BuildFQName(namespace, robotSubsystem, "fire_double_shot_stage"),
			"Current stage of the double shot sequence, 0 is idle",
			nil, nil,
		),
	}
}

func (collector *RobotCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.tick
	ch <- collector.drive
	ch <- collector.sinkErrorRate
	ch <- collector.fireShot
	ch <- collector.fireStage
}

// Collect implements required collect function for all prometheus collectors
func (collector *RobotCollector) Collect(ch chan<- prometheus.Metric) {
	state := collector.source.Snapshot()
	ch <- prometheus.MustNewConstMetric(collector.tick, prometheus.CounterValue, float64(state.Tick))
	ch <- prometheus.MustNewConstMetric(collector.drive, prometheus.GaugeValue, float64(state.LeftDrive), "left")
	ch <- prometheus.MustNewConstMetric(collector.drive, prometheus.GaugeValue, float64(state.RightDrive), "right")
	ch <- prometheus.MustNewConstMetric(collector.sinkErrorRate, prometheus.GaugeValue, state.SinkErrorRate)
	ch <- prometheus.MustNewConstMetric(collector.fireShot, prometheus.GaugeValue, 1, string(state.Fire.Shot))
	ch <- prometheus.MustNewConstMetric(collector.fireStage, prometheus.GaugeValue, float64(state.Fire.Stage))
}
