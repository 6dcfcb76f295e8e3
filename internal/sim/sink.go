package sim

import (
	"context"
	"time"

	"github.com/flagbot/flagbot/internal/actuators"
	"github.com/flagbot/flagbot/internal/configuration"
)

// Sink applies the commands of a tick to the plant and advances it by one tick
type Sink struct {
	plant    *Plant
	tickRate time.Duration
}

func NewSink(plant *Plant, tickRate time.Duration) *Sink {
	return &Sink{
		plant:    plant,
		tickRate: tickRate,
	}
}

func (s *Sink) GetType() configuration.SinkType {
	return configuration.SinkTypeSim
}

func (s *Sink) Write(ctx context.Context, commands []actuators.Command) error {
	s.plant.Apply(commands)
	s.plant.Advance(s.tickRate)
	return nil
}

func (s *Sink) Close() error {
	return nil
}
