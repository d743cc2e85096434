package ringbuf

import "errors"

var (
	// ErrFull indicates the buffer already holds Cap() unconsumed bytes.
	ErrFull = errors.New("ring buffer full")
)
