package actuators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/util"
)

// FileSink writes the command of every channel into its own file,
// named after the channel
type FileSink struct {
	Directory string
	names     map[int]string
}

func NewFileSink(directory string, channels []configuration.ChannelConfig) (*FileSink, error) {
	expanded, err := util.ExpandPath(directory)
	if err != nil {
		return nil, err
	}
	err = os.MkdirAll(expanded, 0755)
	if err != nil {
		return nil, err
	}

	names := map[int]string{}
	for _, channel := range channels {
		name := channel.Name
		if len(name) <= 0 {
			name = fmt.Sprintf("channel%d", channel.Id)
		}
		names[channel.Id] = name
	}

	return &FileSink{
		Directory: expanded,
		names:     names,
	}, nil
}

func (sink *FileSink) GetType() configuration.SinkType {
	return configuration.SinkTypeFile
}

func (sink *FileSink) Write(ctx context.Context, commands []Command) error {
	for _, command := range commands {
		err := util.WriteIntToFileAtomic(command.Value, sink.pathOf(command.Channel))
		if err != nil {
			return fmt.Errorf("channel %d: %w", command.Channel, err)
		}
	}
	return nil
}

func (sink *FileSink) pathOf(channel int) string {
	name, ok := sink.names[channel]
	if !ok {
		name = fmt.Sprintf("channel%d", channel)
	}
	return filepath.Join(sink.Directory, name)
}

func (sink *FileSink) Close() error {
	return nil
}
