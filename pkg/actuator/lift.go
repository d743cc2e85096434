// Package actuator drives the desk lift outputs: two mutually exclusive
// direction pins and a status LED.
package actuator

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"

	"github.com/robotalks/desklift/pkg/command"
	fx "github.com/robotalks/desklift/pkg/framework"
)

// Pin is a digital output.
type Pin interface {
	Out(high bool) error
}

// PinFunc is the func form of Pin.
type PinFunc func(bool) error

// Out implements Pin.
func (f PinFunc) Out(high bool) error {
	return f(high)
}

// State is the state of the lift.
type State int32

// States.
const (
	Idle State = iota
	Actuating
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Actuating:
		return "actuating"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

var (
	// ErrBusy indicates Move was called while another motion is running.
	ErrBusy = errors.New("lift busy")
)

// Lift executes motion commands. At most one motion runs at a time and a
// motion always runs for its full duration.
//
// The status pin is low while a motion is running and high otherwise.
type Lift struct {
	Up     Pin
	Down   Pin
	Status Pin
	Clock  clock.Clock

	state int32
}

// NewLift creates a Lift on the real-time clock.
func NewLift(up, down, status Pin) *Lift {
	return &Lift{Up: up, Down: down, Status: status, Clock: clock.New()}
}

// State returns the current state.
func (l *Lift) State() State {
	return State(atomic.LoadInt32(&l.state))
}

// Move runs cmd to completion: it asserts the direction pin, waits for the
// command duration and returns all pins to rest. It returns ErrBusy if
// another motion is running. There is no way to abort a running motion.
func (l *Lift) Move(cmd command.Command) error {
	if !atomic.CompareAndSwapInt32(&l.state, int32(Idle), int32(Actuating)) {
		return ErrBusy
	}
	defer atomic.StoreInt32(&l.state, int32(Idle))

	pin, other := l.Up, l.Down
	if cmd.Direction() == command.Down {
		pin, other = l.Down, l.Up
	}

	// the duration is measured from before the pins change.
	var timer *clock.Timer
	if d := cmd.Duration(); d > 0 {
		timer = l.clock().Timer(d)
		defer timer.Stop()
	}

	glog.V(2).Infof("move %s", cmd)
	err := l.Status.Out(false)
	if err == nil {
		err = other.Out(false)
	}
	if err == nil {
		err = pin.Out(true)
	}
	if err != nil {
		var errs fx.AggregatedError
		errs.Add(fmt.Errorf("move %s: %w", cmd, err), l.rest())
		return errs.Aggregate()
	}
	if timer != nil {
		<-timer.C
	}
	return l.rest()
}

// Rest de-asserts both direction pins and turns the status pin high.
// It returns ErrBusy without touching the pins if a motion is running.
func (l *Lift) Rest() error {
	if !atomic.CompareAndSwapInt32(&l.state, int32(Idle), int32(Actuating)) {
		return ErrBusy
	}
	defer atomic.StoreInt32(&l.state, int32(Idle))
	return l.rest()
}

func (l *Lift) rest() error {
	var errs fx.AggregatedError
	errs.Add(l.Up.Out(false), l.Down.Out(false), l.Status.Out(true))
	return errs.Aggregate()
}

func (l *Lift) clock() clock.Clock {
	if l.Clock == nil {
		return clock.New()
	}
	return l.Clock
}
