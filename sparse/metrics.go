// SPDX-License-Identifier: MIT

package sparse

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/sparsefem/kernel"
)

const (
	metricsNamespace = "sparsefem"
	metricsSubsystem = "matrix"
)

// Outcome labels of the insertions counter.
const (
	outcomePlaced  = "placed"  // a new slot was used
	outcomeUpdated = "updated" // an existing entry was overwritten or accumulated
)

// Metrics holds the Prometheus collectors shared by any number of matrices.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Insertions counts successful kernel insertions.
	// Labels: mode (overwrite, accumulate), outcome (placed, updated)
	Insertions *prometheus.CounterVec

	// Transitions counts mode changes.
	// Labels: to (empty, building, compressed)
	Transitions *prometheus.CounterVec

	// Errors counts failed public operations.
	// Labels: kind (capacity_exceeded, invalid_index, invalid_dimension, ...)
	Errors *prometheus.CounterVec

	// ZeroAddsSkipped counts Add calls short-circuited on a zero value.
	ZeroAddsSkipped prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg creates unregistered collectors. Registering twice on the same
// registry panics, as with promauto.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Insertions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "insertions_total",
			Help:      "Entries inserted through the kernel by mode and outcome",
		}, []string{"mode", "outcome"}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "transitions_total",
			Help:      "Storage mode changes by target state",
		}, []string{"to"}),
		Errors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "errors_total",
			Help:      "Failed matrix operations by error kind",
		}, []string{"kind"}),
		ZeroAddsSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "zero_adds_skipped_total",
			Help:      "Add calls ignored because the value was zero",
		}),
	}
}

func (m *Metrics) insertion(mode kernel.Mode, code kernel.Code) {
	if m == nil {
		return
	}
	outcome := outcomeUpdated
	if code.Placed() {
		outcome = outcomePlaced
	}
	m.Insertions.WithLabelValues(mode.String(), outcome).Inc()
}

func (m *Metrics) transition(to State) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(to.String()).Inc()
}

func (m *Metrics) failure(err error) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(errorKind(err)).Inc()
}

func (m *Metrics) zeroAdd() {
	if m == nil {
		return
	}
	m.ZeroAddsSkipped.Inc()
}
