package actuator

import (
	"flag"
	"fmt"
)

// Backends.
const (
	BackendGPIO   = "gpio"
	BackendSim    = "sim"
	BackendDryRun = "dry-run"
)

// Config defines the actuator configuration.
type Config struct {
	Backend   string `yaml:"backend"`
	UpPin     string `yaml:"pin_up"`
	DownPin   string `yaml:"pin_down"`
	StatusPin string `yaml:"pin_status"`
}

var defaultConfig = Config{
	Backend:   BackendGPIO,
	UpPin:     "GPIO17",
	DownPin:   "GPIO27",
	StatusPin: "GPIO22",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Backend, "backend", defaultConfig.Backend, "Actuator backend: gpio, sim or dry-run.")
	flag.StringVar(&defaultConfig.UpPin, "pin-up", defaultConfig.UpPin, "GPIO pin driving the lift up.")
	flag.StringVar(&defaultConfig.DownPin, "pin-down", defaultConfig.DownPin, "GPIO pin driving the lift down.")
	flag.StringVar(&defaultConfig.StatusPin, "pin-status", defaultConfig.StatusPin, "GPIO pin of the status LED, low while moving.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewLift creates a Lift for the gpio or dry-run backend.
// The sim backend is provided by package sim.
func (c *Config) NewLift() (*Lift, error) {
	switch c.Backend {
	case BackendGPIO:
		return OpenGPIO(c.UpPin, c.DownPin, c.StatusPin)
	case BackendDryRun:
		rec := NewRecorder(nil)
		rec.Log, rec.Discard = true, true
		lift := rec.Lift()
		return lift, lift.Rest()
	}
	return nil, fmt.Errorf("unsupported actuator backend %q", c.Backend)
}
