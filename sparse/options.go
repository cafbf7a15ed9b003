// SPDX-License-Identifier: MIT

// Package sparse: functional configuration of a SparseMatrix.
//
// Design goals:
//   - No global state: every matrix carries its own kernel, logger and metrics.
//   - Defaults live in documented constants (single source of truth).
//   - WithX constructors panic only on nonsensical values (programmer error).
package sparse

import (
	"log/slog"

	"github.com/katalvlaran/sparsefem/kernel"
	"github.com/katalvlaran/sparsefem/kernel/itpack"
)

// ---------- Defaults ----------

const (
	// DefaultSearchThreshold is the row length above which Get switches from a
	// linear scan to a binary search over the sorted row.
	DefaultSearchThreshold = 16

	// DefaultDiagnosticLevel is the minimum severity the kernel reports through
	// the matrix logger. Informational kernel codes are logged at Debug.
	DefaultDiagnosticLevel = slog.LevelWarn
)

// ---------- Panic messages ----------

const (
	panicCapacityNegative  = "sparse: WithCapacity: capacity must be >= 0"
	panicKernelNil         = "sparse: WithKernel: kernel must not be nil"
	panicLoggerNil         = "sparse: WithLogger: logger must not be nil"
	panicThresholdNegative = "sparse: WithSearchThreshold: threshold must be >= 0"
)

// Option configures a SparseMatrix at construction.
type Option func(*options)

type options struct {
	capacity        int // 0 means not declared
	kernel          kernel.Kernel
	logger          *slog.Logger
	diagLevel       slog.Level
	searchThreshold int
	metrics         *Metrics // nil disables metrics
}

// WithCapacity declares the maximum number of stored entries (NZ).
// Zero leaves the capacity undeclared; Initialize then fails until SetCapacity.
// For Adopt, the capacity may be smaller than the adopted entry count; such a
// matrix is queryable but cannot return to builder form.
func WithCapacity(nz int) Option {
	if nz < 0 {
		panic(panicCapacityNegative)
	}

	return func(o *options) { o.capacity = nz }
}

// WithKernel replaces the default ITPACK-style kernel.
// Tests use it to inject sparsetest.Kernel.
func WithKernel(k kernel.Kernel) Option {
	if k == nil {
		panic(panicKernelNil)
	}

	return func(o *options) { o.kernel = k }
}

// WithLogger routes lifecycle logs and kernel diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

// WithDiagnosticLevel sets the minimum severity of kernel diagnostics.
func WithDiagnosticLevel(lvl slog.Level) Option {
	return func(o *options) { o.diagLevel = lvl }
}

// WithSearchThreshold sets the row length above which Get uses binary search.
// Zero makes every lookup a binary search.
func WithSearchThreshold(n int) Option {
	if n < 0 {
		panic(panicThresholdNegative)
	}

	return func(o *options) { o.searchThreshold = n }
}

// WithMetrics attaches a Prometheus collector set. Several matrices may share one.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// gatherOptions applies setters on top of the defaults, last writer wins.
func gatherOptions(user ...Option) options {
	o := options{
		kernel:          itpack.New(),
		logger:          slog.New(slog.DiscardHandler),
		diagLevel:       DefaultDiagnosticLevel,
		searchThreshold: DefaultSearchThreshold,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// diagnostics is the kernel view of the logging policy.
func (o options) diagnostics() kernel.Diagnostics {
	return kernel.Diagnostics{Logger: o.logger, Level: o.diagLevel}
}
