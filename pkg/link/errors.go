package link

import (
	"errors"
	"fmt"
)

// Status bytes echoed by a Receiver with Ack enabled.
const (
	StatusOK       byte = 0x06
	StatusRejected byte = 0x15
)

var (
	// ErrNoAck indicates no status byte was received for a sent command.
	ErrNoAck = errors.New("no ack")
)

// RejectedError indicates the lift dropped a command.
type RejectedError struct {
	// Index is the position of the command in the sent sequence.
	Index int
	Byte  byte
}

// Error implements error.
func (e *RejectedError) Error() string {
	return fmt.Sprintf("command %d (0x%02x) rejected", e.Index, e.Byte)
}

// StatusError indicates an unknown status byte.
type StatusError struct {
	Index  int
	Status byte
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("command %d: unexpected status 0x%02x", e.Index, e.Status)
}
