package actuators

import (
	"context"
	"fmt"

	"github.com/flagbot/flagbot/internal/configuration"
)

// Sink accepts the resolved channel commands of a tick. Writes are fire-and-forget.
type Sink interface {
	GetType() configuration.SinkType
	Write(ctx context.Context, commands []Command) error
	Close() error
}

// NewSink creates a hardware sink, the simulated sink is created by the simulator
func NewSink(ctx context.Context, config configuration.SinkConfig, channels []configuration.ChannelConfig) (Sink, error) {
	switch config.Type {
	case configuration.SinkTypeFile:
		return NewFileSink(config.File.Directory, channels)
	case configuration.SinkTypeSerial:
		return NewSerialSink(config.Serial.Port, config.Serial.BaudRate)
	case configuration.SinkTypeCan:
		return NewCanSink(ctx, config.Can.Interface, config.Can.BaseId)
	}
	return nil, fmt.Errorf("no hardware sink for type '%s'", config.Type)
}
