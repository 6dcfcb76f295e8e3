package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemFlywheel = "flywheel"

type FlywheelCollector struct {
	source SnapshotSource

	setpoint *prometheus.Desc
	rate     *prometheus.Desc
	error    *prometheus.Desc
	locked   *prometheus.Desc
	output   *prometheus.Desc
}

func NewFlywheelCollector(source SnapshotSource) *FlywheelCollector {
	return &FlywheelCollector{
		source: source,
		setpoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemFlywheel, "setpoint_rpm"),
			"Target speed of the flywheel",
			nil, nil,
		),
		rate: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemFlywheel, "rpm"),
			"Measured speed of the flywheel",
			nil, nil,
		),
		error: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemFlywheel, "error_rpm"),
			"Difference between setpoint and measured speed",
			nil, nil,
		),
		locked: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemFlywheel, "locked"),
			"1 while the flywheel is at speed",
			nil, nil,
		),
		output: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemFlywheel, "output"),
			"Normalized output of the take-back-half controller",
			nil, nil,
		),
	}
}

func (collector *FlywheelCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.setpoint
	ch <- collector.rate
	ch <- collector.error
	ch <- collector.locked
	ch <- collector.output
}

// Collect implements required collect function for all prometheus collectors
func (collector *FlywheelCollector) Collect(ch chan<- prometheus.Metric) {
	state := collector.source.Snapshot()
	ch <- prometheus.MustNewConstMetric(collector.setpoint, prometheus.GaugeValue, state.FlywheelSetpoint)
	ch <- prometheus.MustNewConstMetric(collector.rate, prometheus.GaugeValue, state.FlywheelRate)
	ch <- prometheus.MustNewConstMetric(collector.error, prometheus.GaugeValue, state.FlywheelError)
	ch <- prometheus.MustNewConstMetric(collector.locked, prometheus.GaugeValue, boolValue(state.FlywheelLocked))
	ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, state.Flywheel.Output)
}
