package command

import (
	"errors"
	"fmt"
)

// MaxPlanMillis is the longest motion Plan accepts.
const MaxPlanMillis = 15000

const maxMagnitude = 127

var (
	// ErrInvalidDuration indicates a non-positive duration.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrDurationTooLong indicates a duration above MaxPlanMillis.
	ErrDurationTooLong = fmt.Errorf("duration may not exceed %dms", MaxPlanMillis)
)

// Plan splits a motion of ms milliseconds into wire bytes. Durations are
// truncated to multiples of 10ms, so anything below 10ms plans nothing.
// -128 is never emitted, every byte has a magnitude of at most 127.
func Plan(dir Direction, ms int) ([]byte, error) {
	if ms <= 0 {
		return nil, ErrInvalidDuration
	}
	if ms > MaxPlanMillis {
		return nil, ErrDurationTooLong
	}
	steps := ms / int(Unit.Milliseconds())
	full, rem := steps/maxMagnitude, steps%maxMagnitude
	cmds := make([]byte, 0, full+1)
	for i := 0; i < full; i++ {
		cmds = append(cmds, signed(dir, maxMagnitude).Byte())
	}
	if rem > 0 {
		cmds = append(cmds, signed(dir, int8(rem)).Byte())
	}
	return cmds, nil
}

func signed(dir Direction, magnitude int8) Command {
	if dir == Down {
		return New(-magnitude)
	}
	return New(magnitude)
}
