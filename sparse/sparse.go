// SPDX-License-Identifier: MIT

// Package sparse - SparseMatrix lifecycle & mode transitions.
//
// Purpose:
//   - Own the four storage buffers of a square sparse matrix with a declared
//     nonzero capacity.
//   - Drive the kernel between builder form and compressed-row form, either on
//     explicit request (Initialize/Finalize/UnFinalize) or lazily on demand.
//
// Complexity quicksheet:
//   - Initialize: O(N + NZ); Finalize: O(N + NZ + Σ r·log r); UnFinalize: O(N + nnz);
//     Clear/SetOrder/SetCapacity: O(1).
package sparse

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/sparsefem/kernel"
)

// ---------- error context tags ----------

const (
	ctxInitialize  = "Initialize"
	ctxFinalize    = "Finalize"
	ctxUnFinalize  = "UnFinalize"
	ctxSetOrder    = "SetOrder"
	ctxSetCapacity = "SetCapacity"
	ctxSet         = "Set"
	ctxAdd         = "Add"
	ctxGet         = "Get"
	ctxMulVec      = "MulVec"
	ctxMulMatrix   = "MulMatrix"
	ctxAdopt       = "Adopt"
)

// SparseMatrix is a square order-N matrix stored in compressed-row form with
// room for at most NZ entries.
//   - In StateBuilding entries may be set or accumulated in any order.
//   - In StateCompressed rows are sorted and packed for lookup and products.
//   - Operations move between the two modes as needed, so callers rarely call
//     Finalize or UnFinalize themselves.
//
// A SparseMatrix is not safe for concurrent use, including concurrent reads:
// Get and the products may finalize the matrix.
type SparseMatrix struct {
	order    int
	capacity int
	store    kernel.Storage
	state    State
	mode     kernel.Mode // last insertion mode handed to the kernel; logged on capacity failures
	stored   int         // entries held; reported in capacity diagnostics
	adopted  bool        // buffers were handed in through Adopt
	opts     options
}

var _ fmt.Stringer = (*SparseMatrix)(nil)

// New returns an empty matrix of the given order. Buffers are allocated on the
// first insertion or on Initialize; the capacity comes from WithCapacity or
// SetCapacity. Invalid dimensions are reported when initialization is needed.
func New(order int, opts ...Option) *SparseMatrix {
	o := gatherOptions(opts...)

	return &SparseMatrix{
		order:    order,
		capacity: o.capacity,
		mode:     kernel.ModeAccumulate,
		opts:     o,
	}
}

// NewWithCapacity is New with a declared capacity of nz entries.
func NewWithCapacity(order, nz int, opts ...Option) *SparseMatrix {
	m := New(order, opts...)
	m.capacity = nz

	return m
}

// Initialize allocates fresh zero-filled buffers and prepares an empty builder form.
//
// Implementation:
//   - Stage 1: require order>0 and capacity>0, else ErrInvalidDimension.
//   - Stage 2: allocate the new storage and let the kernel prepare it.
//   - Stage 3: swap it in; the previous buffers are dropped only now, so a failed
//     call leaves the matrix exactly as it was.
//
// Legal in every state; any stored entries are discarded.
// Complexity: O(N + NZ).
func (m *SparseMatrix) Initialize() error {
	if err := m.initialize(); err != nil {
		return m.fail(methodErrorf(ctxInitialize, err))
	}

	return nil
}

func (m *SparseMatrix) initialize() error {
	if err := checkDims(m.order, m.capacity); err != nil {
		return err
	}

	next := kernel.NewStorage(m.order, m.capacity)
	m.opts.kernel.PrepareForBuilding(next)

	m.store = next
	m.stored = 0
	m.adopted = false
	m.enter(StateBuilding)

	return nil
}

// Finalize compresses the builder form into sorted rows.
// Only legal in StateBuilding; otherwise ErrInvalidStateTransition.
func (m *SparseMatrix) Finalize() error {
	if err := checkTransition(m.state, StateCompressed); err != nil {
		return m.fail(methodErrorf(ctxFinalize, fmt.Errorf("from %s: %w", m.state, err)))
	}
	m.finalize()

	return nil
}

// finalize runs the compression; the caller guarantees StateBuilding.
func (m *SparseMatrix) finalize() {
	m.opts.kernel.CompressToRowForm(m.store)
	m.stored = m.store.Stored()
	m.enter(StateCompressed)
}

// UnFinalize expands the compressed rows back into builder form.
// Only legal in StateCompressed; otherwise ErrInvalidStateTransition.
// Fails with a *CapacityError when the declared capacity cannot hold the
// stored entries (an adopted matrix declared smaller than its contents); the
// matrix then stays compressed.
func (m *SparseMatrix) UnFinalize() error {
	if err := checkTransition(m.state, StateBuilding); err != nil {
		return m.fail(methodErrorf(ctxUnFinalize, fmt.Errorf("from %s: %w", m.state, err)))
	}
	if err := m.unfinalize(); err != nil {
		return m.fail(methodErrorf(ctxUnFinalize, err))
	}

	return nil
}

func (m *SparseMatrix) unfinalize() error {
	code := m.opts.kernel.ExpandToBuildingForm(m.store, m.opts.diagnostics())
	if code.Failed() {
		return m.kernelFailure(ctxUnFinalize, code)
	}
	m.enter(StateBuilding)

	return nil
}

// Clear releases the buffers and resets order, capacity and state.
// Idempotent; never fails. Use SetOrder and SetCapacity to reuse the matrix.
func (m *SparseMatrix) Clear() {
	if m.state != StateEmpty {
		m.enter(StateEmpty)
	}
	m.store = kernel.Storage{}
	m.order = 0
	m.capacity = 0
	m.stored = 0
	m.mode = kernel.ModeAccumulate
	m.adopted = false
}

// SetOrder declares the order of an empty matrix.
// A live matrix cannot be resized: ErrInvalidStateTransition outside StateEmpty.
func (m *SparseMatrix) SetOrder(n int) error {
	if m.state != StateEmpty {
		return m.fail(methodErrorf(ctxSetOrder, fmt.Errorf("in %s: %w", m.state, ErrInvalidStateTransition)))
	}
	m.order = n

	return nil
}

// SetCapacity declares the capacity of an empty matrix.
// ErrInvalidStateTransition outside StateEmpty.
func (m *SparseMatrix) SetCapacity(nz int) error {
	if m.state != StateEmpty {
		return m.fail(methodErrorf(ctxSetCapacity, fmt.Errorf("in %s: %w", m.state, ErrInvalidStateTransition)))
	}
	m.capacity = nz

	return nil
}

// Order returns N. Complexity: O(1).
func (m *SparseMatrix) Order() int { return m.order }

// Capacity returns the declared NZ. Complexity: O(1).
func (m *SparseMatrix) Capacity() int { return m.capacity }

// NonZeros returns the number of stored entries. Entries explicitly set to
// zero are stored and counted. Complexity: O(1).
func (m *SparseMatrix) NonZeros() int { return m.stored }

// State returns the current storage mode.
func (m *SparseMatrix) State() State { return m.state }

// Initialized reports whether buffers are allocated.
func (m *SparseMatrix) Initialized() bool { return m.state != StateEmpty }

// Finalized reports whether the matrix is in compressed-row form.
func (m *SparseMatrix) Finalized() bool { return m.state == StateCompressed }

// ensureBuilding moves the matrix into builder form, initializing or expanding as needed.
func (m *SparseMatrix) ensureBuilding() error {
	switch m.state {
	case StateEmpty:
		return m.initialize()
	case StateCompressed:
		return m.unfinalize()
	default:
		return nil
	}
}

// ensureCompressed finalizes a builder form; other states are left alone.
func (m *SparseMatrix) ensureCompressed() {
	if m.state == StateBuilding {
		m.finalize()
	}
}

// enter records a state change.
func (m *SparseMatrix) enter(to State) {
	m.opts.logger.Debug("sparse: state transition",
		slog.String("from", m.state.String()),
		slog.String("to", to.String()),
		slog.Int("order", m.order),
		slog.Int("capacity", m.capacity),
		slog.Int("stored", m.stored),
	)
	m.state = to
	m.opts.metrics.transition(to)
}

// kernelFailure converts a failing kernel code into an error.
func (m *SparseMatrix) kernelFailure(op string, code kernel.Code) error {
	switch code {
	case kernel.CodeNoRoom:
		return &CapacityError{Op: op, Code: code, Requested: m.stored + 1, Capacity: m.capacity, Stored: m.stored}
	case kernel.CodeCapacityTooSmall:
		return &CapacityError{Op: op, Code: code, Requested: m.stored, Capacity: m.capacity, Stored: m.stored}
	default:
		return &KernelError{Op: op, Code: code}
	}
}

// fail logs and counts err, then returns it unchanged.
func (m *SparseMatrix) fail(err error) error {
	m.opts.metrics.failure(err)

	if ce := asCapacityError(err); ce != nil {
		m.opts.logger.Warn("sparse: capacity exceeded",
			slog.String("op", ce.Op),
			slog.String("mode", m.mode.String()),
			slog.Int("order", m.order),
			slog.Int("capacity", ce.Capacity),
			slog.Int("stored", ce.Stored),
			slog.Int("requested", ce.Requested),
			slog.Int("code", int(ce.Code)),
		)
		return err
	}
	m.opts.logger.Debug("sparse: operation failed", slog.String("error", err.Error()))

	return err
}
