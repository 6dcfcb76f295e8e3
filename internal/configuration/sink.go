package configuration

import (
	"fmt"
	"strings"
)

type SinkType string

const (
	SinkTypeSim    SinkType = "sim"
	SinkTypeFile   SinkType = "file"
	SinkTypeSerial SinkType = "serial"
	SinkTypeCan    SinkType = "can"
)

var SinkTypes = []SinkType{SinkTypeSim, SinkTypeFile, SinkTypeSerial, SinkTypeCan}

func ParseSinkType(text string) (SinkType, error) {
	for _, t := range SinkTypes {
		if strings.EqualFold(string(t), text) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown sink type '%s'", text)
}

// SinkConfig selects where resolved channel commands are written to
type SinkConfig struct {
	Type   SinkType          `json:"type"`
	File   *FileSinkConfig   `json:"file,omitempty"`
	Serial *SerialSinkConfig `json:"serial,omitempty"`
	Can    *CanSinkConfig    `json:"can,omitempty"`
}

// FileSinkConfig writes one file per channel into Directory
type FileSinkConfig struct {
	Directory string `json:"directory"`
}

// SerialSinkConfig streams command frames to a motor co-processor
type SerialSinkConfig struct {
	Port     string `json:"port"`
	BaudRate int    `json:"baudRate"`
}

// CanSinkConfig transmits command frames on a SocketCAN interface
type CanSinkConfig struct {
	Interface string `json:"interface"`
	BaseId    uint32 `json:"baseId"`
}
