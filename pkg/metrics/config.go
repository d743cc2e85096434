package metrics

import (
	"flag"
	"os"
)

// Config defines the metrics configuration.
type Config struct {
	// Addr is the listen address. Metrics are not served when empty.
	Addr string `yaml:"addr"`
}

var defaultConfig Config

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Addr, "metrics-addr", defaultConfig.Addr, "Serve prometheus metrics on this address, e.g. :9090.")
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

// Enabled tells whether metrics are served.
func (c *Config) Enabled() bool {
	return c.Addr != ""
}

func init() {
	if addr := os.Getenv("DESKLIFT_METRICS_ADDR"); addr != "" {
		defaultConfig.Addr = addr
	}
}
