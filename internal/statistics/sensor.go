package statistics

import (
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	source SnapshotSource
	value  *prometheus.Desc
}

func NewSensorCollector(source SnapshotSource) *SensorCollector {
	return &SensorCollector{
		source: source,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "value"),
			"Scaled value of the sensor providing the role, as read by the last tick",
			[]string{"role"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.source.Snapshot().Sensors
	for _, role := range configuration.SensorRoles {
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, snapshot.Value(role), string(role))
	}
}
