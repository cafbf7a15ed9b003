// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"

	"github.com/katalvlaran/sparsefem/kernel"
)

// Adopt wraps compressed-row buffers built elsewhere, without copying them.
//
// Implementation:
//   - Stage 1: require order > 0 and a positive capacity. The capacity defaults to
//     the usable buffer length min(len(columnIndex), len(values)); WithCapacity may
//     declare less, never more.
//   - Stage 2: allocate the kernel working array; the bundle must pass
//     kernel.Storage.Allocated (N+1 row pointers, at least capacity slots).
//   - Stage 3: validate the 1-based row form (see validateRowForm), then start in StateCompressed.
//
// Inputs:
//   - rowStart: N+1 1-based row pointers, rowStart[0] == 1.
//   - columnIndex, values: 1-based columns, sorted within each row, and their values.
//
// The matrix owns the buffers from now on; the caller must not keep writing to them.
// When the adopted entries outnumber the declared capacity the matrix can be
// queried and multiplied, but any mutation fails with ErrCapacityExceeded
// because the builder form cannot be rebuilt.
//
// Errors:
//   - ErrInvalidDimension, ErrMalformedStorage.
//
// Complexity: O(N + nnz) validation, O(NZ) for the working array.
func Adopt(order int, rowStart, columnIndex []int, values []float64, opts ...Option) (*SparseMatrix, error) {
	o := gatherOptions(opts...)

	slots := min(len(columnIndex), len(values))
	capacity := o.capacity
	if capacity == 0 {
		capacity = slots
	}
	if err := checkDims(order, capacity); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxAdopt, err)
	}
	store := kernel.Storage{
		Order:       order,
		Capacity:    capacity,
		RowStart:    rowStart,
		ColumnIndex: columnIndex,
		Values:      values,
		Work:        make([]int, capacity),
	}
	if !store.Allocated() {
		return nil, fmt.Errorf("%s: buffers (%d row pointers, %d slots) do not fit order %d capacity %d: %w",
			ctxAdopt, len(rowStart), slots, order, capacity, ErrMalformedStorage)
	}
	if err := validateRowForm(order, rowStart, columnIndex, slots); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxAdopt, err)
	}

	m := &SparseMatrix{
		order:    order,
		capacity: capacity,
		store:    store,
		mode:     kernel.ModeAccumulate,
		stored:   rowStart[order] - 1,
		adopted:  true,
		opts:     o,
	}
	m.enter(StateCompressed)

	return m, nil
}

// Adopted reports whether the buffers came from Adopt and have not been
// replaced by Initialize or Clear since.
func (m *SparseMatrix) Adopted() bool { return m.adopted }
