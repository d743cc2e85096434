// Package command implements the single byte desk lift protocol.
//
// Each byte is a signed two's-complement value. The sign selects the
// direction (negative is down) and the magnitude is the duration in
// units of 10ms. Every byte is a valid command.
package command

import (
	"fmt"
	"strings"
	"time"
)

// Direction is the direction of a motion.
type Direction int

// Directions.
const (
	Up Direction = iota
	Down
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection parses "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	}
	return Up, fmt.Errorf("invalid direction %q", s)
}

// Unit is the duration represented by a magnitude of 1.
const Unit = 10 * time.Millisecond

// Command is a single motion instruction.
type Command int8

// New creates a Command from its signed value.
func New(raw int8) Command {
	return Command(raw)
}

// Decode reinterprets a received byte as a Command.
func Decode(b byte) Command {
	return Command(int8(b))
}

// Raw returns the signed value.
func (c Command) Raw() int8 {
	return int8(c)
}

// Byte returns the wire representation.
func (c Command) Byte() byte {
	return byte(c)
}

// Direction returns Down for negative values, Up otherwise.
func (c Command) Direction() Direction {
	if c < 0 {
		return Down
	}
	return Up
}

// Millis returns the duration in milliseconds.
func (c Command) Millis() uint16 {
	if c == -128 {
		// the absolute value of -128 doesn't fit into an int8.
		return 1280
	}
	v := int16(c)
	if v < 0 {
		v = -v
	}
	return uint16(v) * 10
}

// Duration returns Millis as a time.Duration.
func (c Command) Duration() time.Duration {
	return time.Duration(c.Millis()) * time.Millisecond
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return fmt.Sprintf("%s/%dms", c.Direction(), c.Millis())
}
