package statistics

import (
	"errors"

	"github.com/flagbot/flagbot/internal/robot"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	namespace = "flagbot"
)

// Registry holds every collector of the daemon, it is served by the
// statistics endpoint and the REST api
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// SnapshotSource provides the state published by the last completed tick
type SnapshotSource interface {
	Snapshot() robot.State
}

// Register adds a collector to Registry, a collector with the same metrics
// that is already registered is kept
func Register(collector prometheus.Collector) {
	err := Registry.Register(collector)
	if err == nil {
		return
	}
	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		ui.Warning("Collector already registered, keeping the existing one")
		return
	}
	ui.Error("Unable to register collector: %v", err)
}

func boolValue(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
