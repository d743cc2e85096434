package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fx "github.com/robotalks/desklift/pkg/framework"
)

// Server serves the metrics of Gatherer on Addr at /metrics.
type Server struct {
	Addr     string
	Gatherer prometheus.Gatherer
}

// Name implements framework.Named.
func (s *Server) Name() string {
	return "metrics"
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	g := s.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// Run implements framework.Runnable.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	glog.Infof("metrics served on http://%s/metrics", ln.Addr())
	srv := &http.Server{Handler: s.Handler()}
	return fx.RunWithContextCancel(ctx, func() {
		srv.Close()
	}, func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}
