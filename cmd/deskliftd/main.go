package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/robotalks/desklift/pkg/actuator"
	"github.com/robotalks/desklift/pkg/config"
	"github.com/robotalks/desklift/pkg/dispatch"
	"github.com/robotalks/desklift/pkg/env"
	fx "github.com/robotalks/desklift/pkg/framework"
	"github.com/robotalks/desklift/pkg/link"
	"github.com/robotalks/desklift/pkg/metrics"
	"github.com/robotalks/desklift/pkg/sim"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", configFile, "YAML configuration file, overridden by flags.")
	link.SetupFlags()
	actuator.SetupFlags()
	dispatch.SetupFlags()
	sim.SetupFlags()
	metrics.SetupFlags()
}

func newLift() (*actuator.Lift, error) {
	conf := actuator.NewConfig()
	if conf.Backend == actuator.BackendSim {
		desk := sim.NewConfig().NewDesk()
		glog.Infof("simulated desk at %.1fmm", desk.Height())
		return desk.Lift(), nil
	}
	return conf.NewLift()
}

func run() error {
	if configFile != "" {
		if err := config.ApplyFile(configFile); err != nil {
			return err
		}
	}
	glog.Infof("desklift node %s starting", env.NodeID())

	lift, err := newLift()
	if err != nil {
		return err
	}
	defer func() {
		if err := lift.Rest(); err != nil {
			glog.Errorf("put lift to rest: %v", err)
		}
	}()

	linkConf := link.NewConfig()
	port, err := link.Open(linkConf)
	if err != nil {
		return err
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	d := dispatch.NewConfig().NewDispatcher(lift)
	d.Metrics = m
	recv := linkConf.NewReceiver(port, d)
	recv.Metrics = m
	loop := fx.NewLoop().Add(d)

	runner := fx.NewRunner().HandleSignals()
	runner.Go(
		fx.NamedRun("dispatcher", loop),
		fx.NamedRun("receiver", fx.RunnableFunc(func(ctx context.Context) error {
			return fx.RunWithContextCloser(ctx, port, func() error {
				return recv.Run(ctx)
			})
		})),
	)
	if conf := metrics.NewConfig(); conf.Enabled() {
		runner.Go(&metrics.Server{Addr: conf.Addr})
	}
	glog.Infof("accepting commands, queue size %d", d.Cap())
	return runner.Wait()
}

func main() {
	flag.Parse()
	err := run()
	if err != nil {
		glog.Errorf("desklift: %v", err)
	}
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
