package actuators

import (
	"errors"
	"fmt"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/util"
)

var ErrUnknownChannel = errors.New("unknown channel")

// Command is a resolved value for a single hardware channel
type Command struct {
	Channel int `json:"channel"`
	Value   int `json:"value"`
}

// Bank holds all configured channels of the robot
type Bank struct {
	channels map[int]*Channel
	ids      []int
}

func NewBank(configs []configuration.ChannelConfig) *Bank {
	channels := map[int]*Channel{}
	for _, config := range configs {
		channels[config.Id] = NewChannel(config)
	}
	return &Bank{
		channels: channels,
		ids:      util.SortedKeys(channels),
	}
}

func (b *Bank) GetChannel(id int) (*Channel, error) {
	channel, ok := b.channels[id]
	if !ok {
		return nil, fmt.Errorf("channel %d: %w", id, ErrUnknownChannel)
	}
	return channel, nil
}

// GetChannels returns all channels ordered by id
func (b *Bank) GetChannels() []*Channel {
	result := make([]*Channel, 0, len(b.ids))
	for _, id := range b.ids {
		result = append(result, b.channels[id])
	}
	return result
}

func (b *Bank) SetTarget(id int, value int) error {
	channel, err := b.GetChannel(id)
	if err != nil {
		return err
	}
	channel.SetTarget(value)
	return nil
}

// Stop sets the target of every channel to zero, the outputs still ramp down
func (b *Bank) Stop() {
	for _, channel := range b.channels {
		channel.SetTarget(0)
	}
}

// Resolve runs the output pipeline of every channel and returns
// the hardware commands for this tick
func (b *Bank) Resolve() []Command {
	result := make([]Command, 0, len(b.ids))
	for _, id := range b.ids {
		channel := b.channels[id]
		channel.Resolve()
		result = append(result, Command{
			Channel: id,
			Value:   channel.Output(),
		})
	}
	return result
}
