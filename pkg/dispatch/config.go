package dispatch

import (
	"flag"
)

// Config defines the dispatcher configuration.
type Config struct {
	QueueSize int `yaml:"queue_size"`
}

var defaultConfig = Config{
	QueueSize: DefaultQueueSize,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.QueueSize, "queue-size", defaultConfig.QueueSize, "Number of pending commands held before new ones are dropped.")
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

// NewDispatcher creates a Dispatcher from the config.
func (c *Config) NewDispatcher(act Actuator) *Dispatcher {
	size := c.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}
	return New(size, act)
}
