package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/desklift/pkg/actuator"
	"github.com/robotalks/desklift/pkg/link"
)

const testConfig = `
serial:
  device: /dev/ttyUSB1
  baud: 9600
  read_timeout: 250ms
lift:
  backend: sim
queue:
  queue_size: 8
sim:
  start_height: 900
metrics:
  addr: 127.0.0.1:9090
`

func writeFile(t *testing.T, content string) string {
	fn := filepath.Join(t.TempDir(), "desklift.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(content), 0644))
	return fn
}

func TestLoad(t *testing.T) {
	f, err := Load(writeFile(t, testConfig))
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB1", f.Serial.Device)
	require.Equal(t, 9600, f.Serial.Baud)
	require.Equal(t, 250*time.Millisecond, f.Serial.ReadTimeout)
	require.Equal(t, actuator.BackendSim, f.Lift.Backend)
	require.Equal(t, actuator.Default().UpPin, f.Lift.UpPin)
	require.Equal(t, 8, f.Queue.QueueSize)
	require.Equal(t, 900.0, f.Sim.StartHeight)
	require.Equal(t, "127.0.0.1:9090", f.Metrics.Addr)
}

func TestLoadStrict(t *testing.T) {
	_, err := Load(writeFile(t, "serial:\n  speed: 9600\n"))
	require.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApplyFileKeepsFlags(t *testing.T) {
	saved := Current()
	defer saved.Apply()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	conf := link.Default()
	fs.StringVar(&conf.Device, "device", conf.Device, "")
	fs.IntVar(&conf.Baud, "baud", conf.Baud, "")
	require.NoError(t, fs.Parse([]string{"-device", "/dev/ttyS0"}))

	require.NoError(t, ApplyFileWith(fs, writeFile(t, testConfig)))
	require.Equal(t, "/dev/ttyS0", link.Default().Device)
	require.Equal(t, 9600, link.Default().Baud)
	require.Equal(t, actuator.BackendSim, actuator.Default().Backend)
}
