package actuator

import (
	"fmt"
	"sync"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var (
	hostInitOnce sync.Once
	hostInitErr  error
)

func initHost() error {
	hostInitOnce.Do(func() {
		state, err := host.Init()
		if err != nil {
			hostInitErr = fmt.Errorf("periph host init: %w", err)
			return
		}
		for _, drv := range state.Loaded {
			glog.V(2).Infof("periph driver loaded: %s", drv)
		}
	})
	return hostInitErr
}

type gpioPin struct {
	pin gpio.PinIO
}

// Out implements Pin.
func (p gpioPin) Out(high bool) error {
	l := gpio.Low
	if high {
		l = gpio.High
	}
	return p.pin.Out(l)
}

// GPIOPinByName resolves a host GPIO pin, e.g. "GPIO17".
func GPIOPinByName(name string) (Pin, error) {
	if err := initHost(); err != nil {
		return nil, err
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no GPIO pin found for %q", name)
	}
	return gpioPin{pin: pin}, nil
}

// OpenGPIO creates a Lift driving host GPIO pins and puts it to rest.
func OpenGPIO(up, down, status string) (*Lift, error) {
	var pins [3]Pin
	for n, name := range []string{up, down, status} {
		pin, err := GPIOPinByName(name)
		if err != nil {
			return nil, err
		}
		pins[n] = pin
	}
	lift := NewLift(pins[0], pins[1], pins[2])
	if err := lift.Rest(); err != nil {
		return nil, fmt.Errorf("reset GPIO pins: %w", err)
	}
	glog.Infof("GPIO lift ready: up=%s down=%s status=%s", up, down, status)
	return lift, nil
}
