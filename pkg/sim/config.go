package sim

import (
	"flag"
)

// Config defines the simulated desk.
type Config struct {
	Speed       float64 `yaml:"speed"`
	MinHeight   float64 `yaml:"min_height"`
	MaxHeight   float64 `yaml:"max_height"`
	StartHeight float64 `yaml:"start_height"`
}

var defaultConfig = Config{
	Speed:       38,
	MinHeight:   620,
	MaxHeight:   1270,
	StartHeight: 720,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Float64Var(&defaultConfig.Speed, "sim-speed", defaultConfig.Speed, "Simulated desk speed in mm/s.")
	flag.Float64Var(&defaultConfig.MinHeight, "sim-min", defaultConfig.MinHeight, "Simulated desk lowest height in mm.")
	flag.Float64Var(&defaultConfig.MaxHeight, "sim-max", defaultConfig.MaxHeight, "Simulated desk highest height in mm.")
	flag.Float64Var(&defaultConfig.StartHeight, "sim-start", defaultConfig.StartHeight, "Simulated desk initial height in mm.")
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

// NewDesk creates a Desk from the config.
func (c *Config) NewDesk() *Desk {
	d := NewDesk(c.StartHeight)
	d.Speed, d.MinHeight, d.MaxHeight = c.Speed, c.MinHeight, c.MaxHeight
	return d
}
