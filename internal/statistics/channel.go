package statistics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const channelSubsystem = "channel"

type ChannelCollector struct {
	source    SnapshotSource
	target    *prometheus.Desc
	commanded *prometheus.Desc
	output    *prometheus.Desc
}

func NewChannelCollector(source SnapshotSource) *ChannelCollector {
	labels := []string{"id", "name"}
	return &ChannelCollector{
		source: source,
		target: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "target"),
			"Requested value of the channel",
			labels, nil,
		),
		commanded: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "commanded"),
			"Value of the channel after clamping, deadband and slew limiting",
			labels, nil,
		),
		output: prometheus.NewDesc(prometheus.BuildFQName(namespace, channelSubsystem, "output"),
			"Value written to the actuator, including reversal",
			labels, nil,
		),
	}
}

func (collector *ChannelCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.target
	ch <- collector.commanded
	ch <- collector.output
}

// Collect implements required collect function for all prometheus collectors
func (collector *ChannelCollector) Collect(ch chan<- prometheus.Metric) {
	for _, channel := range collector.source.Snapshot().Channels {
		id := strconv.Itoa(channel.Id)
		ch <- prometheus.MustNewConstMetric(collector.target, prometheus.GaugeValue, float64(channel.Target), id, channel.Name)
		ch <- prometheus.MustNewConstMetric(collector.commanded, prometheus.GaugeValue, float64(channel.Commanded), id, channel.Name)
		ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, float64(channel.Output), id, channel.Name)
	}
}
