// SPDX-License-Identifier: MIT

package bench

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/katalvlaran/lvlu/matrix"
	"github.com/katalvlaran/lvlu/mmio"
	"github.com/prometheus/client_golang/prometheus"
)

// Failure reasons used as the "reason" label of lubench_failures_total.
const (
	ReasonRead      = "read"
	ReasonSingular  = "singular"
	ReasonDimension = "dimension"
	ReasonNonFinite = "non_finite"
	ReasonReference = "reference"
	ReasonCanceled  = "canceled"
	ReasonOther     = "other"
)

// Metrics holds the harness collectors on a private registry. A nil
// *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	FactorizationSeconds *prometheus.HistogramVec // per LUP call, label matrix
	RelativeError        *prometheus.GaugeVec     // label matrix
	Failures             *prometheus.CounterVec   // labels matrix, reason
}

// NewMetrics creates and registers the harness collectors.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.FactorizationSeconds = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lubench_factorization_seconds",
		Help:    "Wall-clock time of one LU factorization.",
		Buckets: prometheus.ExponentialBuckets(1e-5, 4, 12),
	}, []string{"matrix"})

	m.RelativeError = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lubench_relative_error",
		Help: "Relative 2-norm error of the LU solution against the reference solver.",
	}, []string{"matrix"})

	m.Failures = m.NewCounterVec(prometheus.CounterOpts{
		Name: "lubench_failures_total",
		Help: "Matrices that could not be benchmarked.",
	}, []string{"matrix", "reason"})

	return m
}

// NewCounterVec creates and registers a counter vector.
func (m *Metrics) NewCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(opts, labels)
	m.registry.MustRegister(cv)
	return cv
}

// NewGaugeVec creates and registers a gauge vector.
func (m *Metrics) NewGaugeVec(opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	gv := prometheus.NewGaugeVec(opts, labels)
	m.registry.MustRegister(gv)
	return gv
}

// NewHistogramVec creates and registers a histogram vector.
func (m *Metrics) NewHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	hv := prometheus.NewHistogramVec(opts, labels)
	m.registry.MustRegister(hv)
	return hv
}

// Registry exposes the private registry, e.g. for promhttp or Gather.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) observeRun(name string, d time.Duration) {
	if m == nil {
		return
	}
	m.FactorizationSeconds.WithLabelValues(name).Observe(d.Seconds())
}

func (m *Metrics) setRelativeError(name string, v float64) {
	if m == nil {
		return
	}
	m.RelativeError.WithLabelValues(name).Set(v)
}

func (m *Metrics) recordFailure(name, reason string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(name, reason).Inc()
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// FailureReason classifies err for the failures counter.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	case errors.Is(err, matrix.ErrSingular):
		return ReasonSingular
	case errors.Is(err, matrix.ErrDimensionMismatch):
		return ReasonDimension
	case errors.Is(err, matrix.ErrNaNInf):
		return ReasonNonFinite
	case errors.Is(err, ErrReference):
		return ReasonReference
	case isReadError(err):
		return ReasonRead
	default:
		return ReasonOther
	}
}

func isReadError(err error) bool {
	var pe *fs.PathError
	return errors.As(err, &pe) ||
		errors.Is(err, mmio.ErrBadHeader) ||
		errors.Is(err, mmio.ErrUnsupported) ||
		errors.Is(err, mmio.ErrBadSize) ||
		errors.Is(err, mmio.ErrBadEntry) ||
		errors.Is(err, mmio.ErrEntryCount)
}
