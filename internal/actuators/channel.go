package actuators

import (
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/util"
)

const (
	MaxCommandValue = 127
	MinCommandValue = -127
)

// Channel is a single motor output. Every tick the requested target is
// clamped, deadbanded and slew rate limited, in this order.
type Channel struct {
	config configuration.ChannelConfig

	target        int
	lastCommanded int
}

func NewChannel(config configuration.ChannelConfig) *Channel {
	return &Channel{
		config: config,
	}
}

func (c *Channel) GetId() int {
	return c.config.Id
}

func (c *Channel) GetName() string {
	return c.config.Name
}

func (c *Channel) GetConfig() configuration.ChannelConfig {
	return c.config
}

// SetTarget requests a new command value, it is applied on the next Resolve
func (c *Channel) SetTarget(value int) {
	c.target = value
}

func (c *Channel) GetTarget() int {
	return c.target
}

// GetLastCommanded returns the value produced by the last Resolve
func (c *Channel) GetLastCommanded() int {
	return c.lastCommanded
}

// Resolve advances the channel by one tick and returns the value to write
func (c *Channel) Resolve() int {
	value := util.Coerce(c.target, MinCommandValue, MaxCommandValue)

	if util.Abs(value) < c.config.Deadband {
		value = 0
	}

	step := util.Coerce(value-c.lastCommanded, -c.config.SlewRate, c.config.SlewRate)
	c.lastCommanded += step

	return c.lastCommanded
}

// Output returns the value as seen by the hardware, taking reversal into account
func (c *Channel) Output() int {
	if c.config.Reversed {
		return -c.lastCommanded
	}
	return c.lastCommanded
}
