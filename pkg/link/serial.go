package link

import (
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/tarm/serial"
)

// Port is an opened serial port.
type Port interface {
	io.ReadWriteCloser
	Flush() error
}

// Open opens the serial port of the config.
func Open(conf *Config) (Port, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        conf.Device,
		Baud:        conf.Baud,
		ReadTimeout: conf.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Device, err)
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, fmt.Errorf("flush %s: %w", conf.Device, err)
	}
	glog.Infof("serial port %s opened at %d baud", conf.Device, conf.Baud)
	return port, nil
}
