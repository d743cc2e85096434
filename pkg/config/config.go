// Package config loads the daemon configuration file.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/robotalks/desklift/pkg/actuator"
	"github.com/robotalks/desklift/pkg/dispatch"
	"github.com/robotalks/desklift/pkg/link"
	"github.com/robotalks/desklift/pkg/metrics"
	"github.com/robotalks/desklift/pkg/sim"
)

// File is the layout of the configuration file.
//
//	serial:
//	  device: /dev/ttyACM0
//	  baud: 115200
//	  read_timeout: 100ms
//	  ack: false
//	lift:
//	  backend: gpio
//	  pin_up: GPIO17
//	  pin_down: GPIO27
//	  pin_status: GPIO22
//	queue:
//	  queue_size: 64
//	sim:
//	  speed: 38
//	metrics:
//	  addr: ":9090"
type File struct {
	Serial  link.Config     `yaml:"serial"`
	Lift    actuator.Config `yaml:"lift"`
	Queue   dispatch.Config `yaml:"queue"`
	Sim     sim.Config      `yaml:"sim"`
	Metrics metrics.Config  `yaml:"metrics"`
}

// Current captures the package defaults.
func Current() *File {
	return &File{
		Serial:  *link.Default(),
		Lift:    *actuator.Default(),
		Queue:   *dispatch.Default(),
		Sim:     *sim.Default(),
		Metrics: *metrics.Default(),
	}
}

// Apply makes f the package defaults.
func (f *File) Apply() {
	*link.Default() = f.Serial
	*actuator.Default() = f.Lift
	*dispatch.Default() = f.Queue
	*sim.Default() = f.Sim
	*metrics.Default() = f.Metrics
}

// Load reads the file at path on top of the package defaults.
// Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := Current()
	if err := yaml.UnmarshalStrict(data, f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// ApplyFile overlays the file at path onto the package defaults, keeping
// the values of flags set on the command line.
func ApplyFile(path string) error {
	return ApplyFileWith(flag.CommandLine, path)
}

// ApplyFileWith is ApplyFile with explicitly set flags taken from fs.
func ApplyFileWith(fs *flag.FlagSet, path string) error {
	f, err := Load(path)
	if err != nil {
		return err
	}
	set := make(map[string]string)
	fs.Visit(func(fl *flag.Flag) {
		set[fl.Name] = fl.Value.String()
	})
	f.Apply()
	for name, val := range set {
		if err := fs.Set(name, val); err != nil {
			return fmt.Errorf("restore flag -%s: %w", name, err)
		}
	}
	return nil
}
