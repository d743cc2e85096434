// Package metrics exposes prometheus instrumentation of the command
// pipeline. All methods are safe on a nil *Metrics, which disables them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "desklift"

// Metrics holds the collectors of the command pipeline.
type Metrics struct {
	BytesReceived    prometheus.Counter
	CommandsQueued   prometheus.Counter
	CommandsDropped  prometheus.Counter
	CommandsExecuted *prometheus.CounterVec
	ActuationErrors  prometheus.Counter
	QueueDepthGauge  prometheus.Gauge
	ActuationSeconds prometheus.Histogram

	now func() time.Time
}

// New creates Metrics and registers the collectors with reg.
// A nil reg leaves the collectors unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_received_total",
			Help:      "Number of command bytes received from the serial link.",
		}),
		CommandsQueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_queued_total",
			Help:      "Number of commands accepted into the pending queue.",
		}),
		CommandsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_dropped_total",
			Help:      "Number of commands dropped because the queue was full.",
		}),
		CommandsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_executed_total",
			Help:      "Number of commands executed, by direction.",
		}, []string{"direction"}),
		ActuationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actuation_errors_total",
			Help:      "Number of commands failed by the actuator.",
		}),
		QueueDepthGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Number of commands waiting for execution.",
		}),
		ActuationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "actuation_seconds",
			Help:      "Wall time spent executing a command.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 1.3, 2},
		}),
		now: time.Now,
	}
	if reg != nil {
		reg.MustRegister(
			m.BytesReceived,
			m.CommandsQueued,
			m.CommandsDropped,
			m.CommandsExecuted,
			m.ActuationErrors,
			m.QueueDepthGauge,
			m.ActuationSeconds,
		)
	}
	return m
}

// ByteReceived counts a received byte.
func (m *Metrics) ByteReceived() {
	if m != nil {
		m.BytesReceived.Inc()
	}
}

// CommandQueued counts an accepted command and records the queue depth.
func (m *Metrics) CommandQueued(depth int) {
	if m != nil {
		m.CommandsQueued.Inc()
		m.QueueDepthGauge.Set(float64(depth))
	}
}

// CommandDropped counts a command dropped on a full queue.
func (m *Metrics) CommandDropped() {
	if m != nil {
		m.CommandsDropped.Inc()
	}
}

// QueueDepth records the number of pending commands.
func (m *Metrics) QueueDepth(depth int) {
	if m != nil {
		m.QueueDepthGauge.Set(float64(depth))
	}
}

// ActuationStarted marks the start of a command in the given direction.
// The returned func must be called with the result once it completes.
func (m *Metrics) ActuationStarted(direction string) func(error) {
	if m == nil {
		return func(error) {}
	}
	start := m.now()
	return func(err error) {
		m.ActuationSeconds.Observe(m.now().Sub(start).Seconds())
		if err != nil {
			m.ActuationErrors.Inc()
			return
		}
		m.CommandsExecuted.WithLabelValues(direction).Inc()
	}
}
