package link

import (
	"flag"
	"io"
	"os"
	"time"
)

// Config defines the serial link configuration.
type Config struct {
	Device      string        `yaml:"device"`
	Baud        int           `yaml:"baud"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	Ack         bool          `yaml:"ack"`
}

var defaultConfig = Config{
	Device:      "/dev/ttyACM0",
	Baud:        115200,
	ReadTimeout: 100 * time.Millisecond,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Serial device.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Serial read timeout, 0 blocks.")
	flag.BoolVar(&defaultConfig.Ack, "ack", defaultConfig.Ack, "Acknowledge every command with a status byte.")
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

// NewReceiver creates a Receiver over rw using the config.
func (c *Config) NewReceiver(rw io.ReadWriter, sink Sink) *Receiver {
	r := NewReceiver(rw, sink)
	r.Ack = c.Ack
	r.ReadTimeout = c.ReadTimeout > 0
	return r
}

func init() {
	if dev := os.Getenv("DESKLIFT_DEVICE"); dev != "" {
		defaultConfig.Device = dev
	}
}
