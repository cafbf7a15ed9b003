// SPDX-License-Identifier: MIT

package sparse

import "github.com/katalvlaran/sparsefem/kernel"

// Set stores value at (i, j), replacing any previous value.
//
// Implementation:
//   - Stage 1: an empty matrix needs declared order and capacity (ErrInvalidDimension).
//   - Stage 2: reject (i, j) outside [0, order) with ErrInvalidIndex.
//   - Stage 3: initialize or expand into builder form as needed.
//   - Stage 4: hand the 1-based entry to the kernel in overwrite mode.
//
// Errors:
//   - ErrInvalidDimension, ErrInvalidIndex, ErrCapacityExceeded (*CapacityError).
//
// The matrix is left in builder form. Writing an explicit zero stores an entry.
// Complexity: O(row length) plus any mode change.
func (m *SparseMatrix) Set(i, j int, value float64) error {
	if err := m.insert(ctxSet, i, j, value, kernel.ModeOverwrite); err != nil {
		return m.fail(sparseErrorf(ctxSet, i, j, err))
	}

	return nil
}

// Add accumulates value into (i, j).
// A zero value returns immediately without touching the matrix: no
// initialization, no mode change and no capacity use. Otherwise as Set.
func (m *SparseMatrix) Add(i, j int, value float64) error {
	if value == 0 {
		m.opts.metrics.zeroAdd()
		return nil
	}
	if err := m.insert(ctxAdd, i, j, value, kernel.ModeAccumulate); err != nil {
		return m.fail(sparseErrorf(ctxAdd, i, j, err))
	}

	return nil
}

func (m *SparseMatrix) insert(op string, i, j int, value float64, mode kernel.Mode) error {
	if m.state == StateEmpty {
		if err := checkDims(m.order, m.capacity); err != nil {
			return err
		}
	}
	if err := m.checkIndex(i, j); err != nil {
		return err
	}
	if err := m.ensureBuilding(); err != nil {
		return err
	}

	m.mode = mode
	code := m.opts.kernel.InsertEntry(m.store, i+1, j+1, value, mode, m.opts.diagnostics())
	if code.Failed() {
		return m.kernelFailure(op, code)
	}
	if code.Placed() {
		m.stored++
	}
	m.opts.metrics.insertion(mode, code)

	return nil
}
