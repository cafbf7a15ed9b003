// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set and typed kernel errors.
// Every sentinel is prefixed with "sparse: " and is matched with errors.Is.
// Public methods wrap with call-site context ("SparseMatrix.Set(1,2): ...")
// but never hide the sentinel.

package sparse

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sparsefem/kernel"
)

var (
	// ErrInvalidDimension is returned when order or capacity is not positive where
	// initialization is required, or when operand sizes disagree.
	ErrInvalidDimension = errors.New("sparse: invalid dimension")

	// ErrInvalidStateTransition is returned when Finalize/UnFinalize (or a
	// dimension setter) is called in a state that does not allow it.
	ErrInvalidStateTransition = errors.New("sparse: invalid state transition")

	// ErrCapacityExceeded is returned when an insertion or an expansion to builder
	// form does not fit the declared nonzero capacity. Use errors.As with
	// *CapacityError to read the requested and available counts.
	ErrCapacityExceeded = errors.New("sparse: nonzero capacity exceeded")

	// ErrInvalidIndex is returned when a row or column is outside [0, order).
	ErrInvalidIndex = errors.New("sparse: index out of range")

	// ErrNilMatrix is returned when a nil *SparseMatrix operand is passed.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrAliasedResult is returned when the result of a product is also one of its operands.
	ErrAliasedResult = errors.New("sparse: result aliases an operand")

	// ErrMalformedStorage is returned by Adopt when the buffers do not form a
	// valid 1-based compressed-row matrix.
	ErrMalformedStorage = errors.New("sparse: malformed compressed-row storage")

	// ErrKernel marks a kernel failure code this package does not recognize.
	ErrKernel = errors.New("sparse: kernel failure")
)

// CapacityError carries the context of a capacity failure.
type CapacityError struct {
	Op        string      // operation that failed (Set, Add, UnFinalize)
	Code      kernel.Code // kernel code, 702 or 703
	Requested int         // entries the operation needed to hold
	Capacity  int         // declared capacity
	Stored    int         // entries held when the failure occurred
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: requested %d entries, capacity %d, stored %d (kernel code %d)",
		ErrCapacityExceeded, e.Requested, e.Capacity, e.Stored, int(e.Code))
}

// Unwrap lets errors.Is(err, ErrCapacityExceeded) match.
func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// KernelError reports a failing kernel code that is not a capacity failure.
type KernelError struct {
	Op   string
	Code kernel.Code
}

func (e *KernelError) Error() string {
	return fmt.Sprintf("%s: kernel code %d: %s", e.Unwrap(), int(e.Code), e.Code)
}

// Unwrap maps CodeBadIndex to ErrInvalidIndex and everything else to ErrKernel.
func (e *KernelError) Unwrap() error {
	if e.Code == kernel.CodeBadIndex {
		return ErrInvalidIndex
	}

	return ErrKernel
}

// sparseErrorf attaches method and coordinates to err.
func sparseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("SparseMatrix.%s(%d,%d): %w", method, row, col, err)
}

// methodErrorf attaches a method tag to err.
func methodErrorf(method string, err error) error {
	return fmt.Errorf("SparseMatrix.%s: %w", method, err)
}

// errorKind names the sentinel behind err for metrics labels.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrInvalidIndex):
		return "invalid_index"
	case errors.Is(err, ErrInvalidDimension):
		return "invalid_dimension"
	case errors.Is(err, ErrInvalidStateTransition):
		return "invalid_state_transition"
	case errors.Is(err, ErrMalformedStorage):
		return "malformed_storage"
	case errors.Is(err, ErrNilMatrix), errors.Is(err, ErrAliasedResult):
		return "invalid_operand"
	default:
		return "kernel"
	}
}

// asCapacityError returns the *CapacityError in err's chain, or nil.
func asCapacityError(err error) *CapacityError {
	var ce *CapacityError
	if errors.As(err, &ce) {
		return ce
	}

	return nil
}
