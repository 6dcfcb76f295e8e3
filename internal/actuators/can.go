package actuators

import (
	"context"
	"fmt"
	"net"

	"github.com/flagbot/flagbot/internal/configuration"
	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

const canChannelsPerFrame = 8

type frameTransmitter interface {
	TransmitFrame(ctx context.Context, frame can.Frame) error
}

// CanSink transmits commands on a SocketCAN bus. Channel n is carried in
// byte n%8 of the frame with id baseId + n/8.
type CanSink struct {
	BaseId uint32

	conn net.Conn
	tx   frameTransmitter
}

func NewCanSink(ctx context.Context, iface string, baseId uint32) (*CanSink, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial: %w", err)
	}
	return &CanSink{
		BaseId: baseId,
		conn:   conn,
		tx:     socketcan.NewTransmitter(conn),
	}, nil
}

func (sink *CanSink) GetType() configuration.SinkType {
	return configuration.SinkTypeCan
}

func (sink *CanSink) Write(ctx context.Context, commands []Command) error {
	for _, frame := range encodeCanFrames(sink.BaseId, commands) {
		err := sink.tx.TransmitFrame(ctx, frame)
		if err != nil {
			return fmt.Errorf("transmitting frame 0x%X: %w", frame.ID, err)
		}
	}
	return nil
}

func (sink *CanSink) Close() error {
	if sink.conn != nil {
		return sink.conn.Close()
	}
	return nil
}

func encodeCanFrames(baseId uint32, commands []Command) []can.Frame {
	frames := map[uint32]*can.Frame{}
	var order []uint32

	for _, command := range commands {
		id := baseId + uint32(command.Channel/canChannelsPerFrame)
		frame, ok := frames[id]
		if !ok {
			frame = &can.Frame{ID: id, Length: canChannelsPerFrame}
			frames[id] = frame
			order = append(order, id)
		}
		frame.Data[command.Channel%canChannelsPerFrame] = byte(int8(command.Value))
	}

	result := make([]can.Frame, 0, len(order))
	for _, id := range order {
		result = append(result, *frames[id])
	}
	return result
}
