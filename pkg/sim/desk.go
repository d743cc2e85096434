// Package sim simulates a desk lift behind the actuator pins, so the
// daemon runs without hardware.
package sim

import (
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/glog"

	"github.com/robotalks/desklift/pkg/actuator"
)

// Desk simulates a lift moving at a constant Speed between MinHeight and
// MaxHeight. Heights are in millimeters, speed in millimeters per second.
type Desk struct {
	Speed     float64
	MinHeight float64
	MaxHeight float64
	Clock     clock.Clock

	up, down, status bool
	state            *driveState
	height           float64
	lock             sync.Mutex
}

type driveState struct {
	startHeight float64
	startTime   time.Time
	speed       float64
}

func (s *driveState) estimate(now time.Time, min, max float64) float64 {
	h := s.startHeight + now.Sub(s.startTime).Seconds()*s.speed
	return math.Max(min, math.Min(max, h))
}

// NewDesk creates a Desk at rest at the given height.
func NewDesk(height float64) *Desk {
	return &Desk{
		Speed:     defaultConfig.Speed,
		MinHeight: defaultConfig.MinHeight,
		MaxHeight: defaultConfig.MaxHeight,
		Clock:     clock.New(),
		height:    height,
		status:    true,
	}
}

// Height estimates the current height.
func (d *Desk) Height() float64 {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.estimate(d.Clock.Now())
}

// Direction returns 1 when moving up, -1 when moving down, and 0 at rest.
func (d *Desk) Direction() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.direction()
}

// StatusLED tells the level of the status pin.
func (d *Desk) StatusLED() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.status
}

// UpPin returns the pin driving the desk up.
func (d *Desk) UpPin() actuator.Pin {
	return actuator.PinFunc(func(high bool) error {
		d.setPins(func() { d.up = high })
		return nil
	})
}

// DownPin returns the pin driving the desk down.
func (d *Desk) DownPin() actuator.Pin {
	return actuator.PinFunc(func(high bool) error {
		d.setPins(func() { d.down = high })
		return nil
	})
}

// StatusPin returns the status LED pin.
func (d *Desk) StatusPin() actuator.Pin {
	return actuator.PinFunc(func(high bool) error {
		d.lock.Lock()
		d.status = high
		d.lock.Unlock()
		return nil
	})
}

// Lift creates a Lift driving the desk.
func (d *Desk) Lift() *actuator.Lift {
	lift := actuator.NewLift(d.UpPin(), d.DownPin(), d.StatusPin())
	lift.Clock = d.Clock
	return lift
}

func (d *Desk) direction() int {
	switch {
	case d.up && d.down:
		return 0
	case d.up:
		return 1
	case d.down:
		return -1
	}
	return 0
}

func (d *Desk) estimate(now time.Time) float64 {
	if s := d.state; s != nil {
		return s.estimate(now, d.MinHeight, d.MaxHeight)
	}
	return d.height
}

func (d *Desk) setPins(fn func()) {
	d.lock.Lock()
	defer d.lock.Unlock()
	now := d.Clock.Now()
	d.height = d.estimate(now)
	wasMoving := d.state != nil
	fn()
	if d.up && d.down {
		glog.Warning("sim: both direction pins high")
	}
	d.state = nil
	if dir := d.direction(); dir != 0 {
		d.state = &driveState{
			startHeight: d.height,
			startTime:   now,
			speed:       float64(dir) * d.Speed,
		}
	} else if wasMoving {
		glog.V(1).Infof("sim: desk at %.1fmm", d.height)
	}
}
