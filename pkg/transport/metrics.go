package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultDurationBuckets covers fast metadata calls up to long completions
var DefaultDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}

// Metrics tracks outbound API calls.
//
// Metrics:
//   - <namespace>_client_requests_total: requests by status code and method
//   - <namespace>_client_request_duration_seconds: time to response headers by method
//   - <namespace>_client_requests_in_flight: requests currently waiting for a response
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewMetrics creates the API client metrics and registers them with reg.
// Collectors that are already registered under the same name are reused, so
// several clients can share one registry.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of API requests by status code and method",
			},
			[]string{"code", "method"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "API request latency in seconds until response headers arrive",
				Buckets:   DefaultDurationBuckets,
			},
			[]string{"method"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "client",
				Name:      "requests_in_flight",
				Help:      "Number of API requests waiting for a response",
			},
		),
	}

	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.inFlight, err = register(reg, m.inFlight); err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("failed to register metric: %w", err)
	}
	return c, nil
}

// Middleware instruments the round tripper with the collected metrics
func (m *Metrics) Middleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return promhttp.InstrumentRoundTripperInFlight(m.inFlight,
			promhttp.InstrumentRoundTripperCounter(m.requests,
				promhttp.InstrumentRoundTripperDuration(m.duration, next),
			),
		)
	}
}

// Collectors returns the underlying collectors, mostly useful in tests
func (m *Metrics) Collectors() (*prometheus.CounterVec, *prometheus.HistogramVec, prometheus.Gauge) {
	return m.requests, m.duration, m.inFlight
}
