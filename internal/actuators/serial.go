package actuators

import (
	"context"
	"fmt"
	"io"

	"github.com/flagbot/flagbot/internal/configuration"
	"go.bug.st/serial"
)

const serialFrameStart = 0xAA

// SerialSink streams command frames to a motor co-processor.
//
// Frame layout: start byte, channel count, (channel, int8 value) pairs, xor checksum
type SerialSink struct {
	port io.WriteCloser
}

func NewSerialSink(portName string, baudRate int) (*SerialSink, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", portName, err)
	}
	return &SerialSink{port: port}, nil
}

func (sink *SerialSink) GetType() configuration.SinkType {
	return configuration.SinkTypeSerial
}

func (sink *SerialSink) Write(ctx context.Context, commands []Command) error {
	_, err := sink.port.Write(encodeSerialFrame(commands))
	return err
}

func (sink *SerialSink) Close() error {
	return sink.port.Close()
}

func encodeSerialFrame(commands []Command) []byte {
	frame := make([]byte, 0, 3+2*len(commands))
	frame = append(frame, serialFrameStart, byte(len(commands)))
	for _, command := range commands {
		frame = append(frame, byte(command.Channel), byte(int8(command.Value)))
	}

	var checksum byte
	for _, b := range frame[1:] {
		checksum ^= b
	}
	return append(frame, checksum)
}
