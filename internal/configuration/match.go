package configuration

import (
	"fmt"
	"strings"
)

type Alliance string

const (
	AllianceBlue Alliance = "blue"
	AllianceRed  Alliance = "red"
)

// ParseAlliance accepts the alliance color or its letter (a = blue, b = red)
func ParseAlliance(text string) (Alliance, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "blue", "a":
		return AllianceBlue, nil
	case "red", "b":
		return AllianceRed, nil
	}
	return "", fmt.Errorf("unknown alliance '%s', use one of: blue | red", text)
}

// HeadingSign is the factor mirrored headings are multiplied with
func (a Alliance) HeadingSign() float64 {
	if a == AllianceRed {
		return -1
	}
	return 1
}

// MatchConfig is selected once before an autonomous run and read-only afterwards
type MatchConfig struct {
	Alliance Alliance `json:"alliance"`
	Routine  string   `json:"routine"`
}
