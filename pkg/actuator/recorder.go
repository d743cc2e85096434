package actuator

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"
)

// Pin names used by Recorder and the configuration.
const (
	PinUp     = "up"
	PinDown   = "down"
	PinStatus = "status"
)

// Event is a recorded pin transition.
type Event struct {
	Time time.Time
	Pin  string
	High bool
}

// String implements fmt.Stringer.
func (e Event) String() string {
	level := "low"
	if e.High {
		level = "high"
	}
	return fmt.Sprintf("%s %s", e.Pin, level)
}

// Recorder creates Pins that record every transition instead of
// driving hardware.
type Recorder struct {
	Clock clock.Clock
	// Log logs every transition when set.
	Log bool
	// Discard stops keeping events in memory.
	Discard bool
	// Notify receives every event when not nil. Sends block, the channel
	// must be drained.
	Notify chan<- Event

	events []Event
	lock   sync.Mutex
}

// NewRecorder creates a Recorder.
func NewRecorder(clk clock.Clock) *Recorder {
	if clk == nil {
		clk = clock.New()
	}
	return &Recorder{Clock: clk}
}

// Pin returns a recording Pin with the given name.
func (r *Recorder) Pin(name string) Pin {
	return PinFunc(func(high bool) error {
		ev := Event{Time: r.Clock.Now(), Pin: name, High: high}
		if !r.Discard {
			r.lock.Lock()
			r.events = append(r.events, ev)
			r.lock.Unlock()
		}
		if r.Log {
			glog.Infof("pin %s", ev)
		}
		if r.Notify != nil {
			r.Notify <- ev
		}
		return nil
	})
}

// Lift creates a Lift on recording pins.
func (r *Recorder) Lift() *Lift {
	return &Lift{
		Up:     r.Pin(PinUp),
		Down:   r.Pin(PinDown),
		Status: r.Pin(PinStatus),
		Clock:  r.Clock,
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Event(nil), r.events...)
}

// Reset clears recorded events.
func (r *Recorder) Reset() {
	r.lock.Lock()
	r.events = nil
	r.lock.Unlock()
}
