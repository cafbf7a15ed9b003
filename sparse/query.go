// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// Get returns the value stored at (i, j), or 0 when no entry is stored.
//
// Implementation:
//   - Stage 1: an empty matrix answers 0 without allocating.
//   - Stage 2: bounds-check (i, j).
//   - Stage 3: finalize a builder form, then search row i's span: a linear scan
//     for short rows, a binary search above the search threshold.
//
// Errors:
//   - ErrInvalidIndex when (i, j) is outside [0, order) of an initialized matrix.
//
// Complexity: O(r) or O(log r) for a row of length r, plus a pending Finalize.
func (m *SparseMatrix) Get(i, j int) (float64, error) {
	if m.state == StateEmpty {
		return 0, nil
	}
	if err := m.checkIndex(i, j); err != nil {
		return 0, m.fail(sparseErrorf(ctxGet, i, j, err))
	}
	m.ensureCompressed()

	return m.lookup(i, j), nil
}

// lookup searches a compressed row; the caller guarantees StateCompressed and valid indices.
func (m *SparseMatrix) lookup(i, j int) float64 {
	ia, ja, a := m.store.RowStart, m.store.ColumnIndex, m.store.Values
	lo, hi := ia[i]-1, ia[i+1]-1
	col := j + 1

	if hi-lo > m.opts.searchThreshold {
		if k, found := slices.BinarySearch(ja[lo:hi], col); found {
			return a[lo+k]
		}
		return 0
	}
	for k := lo; k < hi; k++ {
		if ja[k] == col {
			return a[k]
		}
	}

	return 0
}

// RowPointers returns the live 1-based row pointer buffer (N+1 entries) of the
// compressed form, finalizing first if needed. Row i occupies positions
// RowPointers()[i]-1 .. RowPointers()[i+1]-2 of ColumnIndices and Values.
// Nil when the matrix holds no buffers. Writes go straight into the matrix.
func (m *SparseMatrix) RowPointers() []int {
	if m.state == StateEmpty {
		return nil
	}
	m.ensureCompressed()

	return m.store.RowStart
}

// ColumnIndices returns the live 1-based column buffer of the compressed form.
// Only the first NonZeros() entries are meaningful.
func (m *SparseMatrix) ColumnIndices() []int {
	if m.state == StateEmpty {
		return nil
	}
	m.ensureCompressed()

	return m.store.ColumnIndex
}

// Values returns the live value buffer of the compressed form, aligned with ColumnIndices.
func (m *SparseMatrix) Values() []float64 {
	if m.state == StateEmpty {
		return nil
	}
	m.ensureCompressed()

	return m.store.Values
}

// Do visits every stored entry in row-major, column-ascending order with
// 0-based indices and stops when f returns false. Finalizes first if needed.
// f must not mutate the matrix.
// Complexity: O(N + nnz).
func (m *SparseMatrix) Do(f func(i, j int, v float64) bool) {
	if m.state == StateEmpty {
		return
	}
	m.ensureCompressed()

	ia, ja, a := m.store.RowStart, m.store.ColumnIndex, m.store.Values
	for i := 0; i < m.order; i++ {
		for k := ia[i] - 1; k < ia[i+1]-1; k++ {
			if !f(i, ja[k]-1, a[k]) {
				return
			}
		}
	}
}

// String renders a header and, in compressed form, one line per row listing
// "column:value" pairs. It never changes the storage mode.
func (m *SparseMatrix) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SparseMatrix(order=%d, capacity=%d, state=%s, nonzeros=%d)\n",
		m.order, m.capacity, m.state, m.stored)
	if m.state != StateCompressed {
		return b.String()
	}

	ia, ja, a := m.store.RowStart, m.store.ColumnIndex, m.store.Values
	for i := 0; i < m.order; i++ {
		b.WriteString(_fmtRowOpen)
		for k := ia[i] - 1; k < ia[i+1]-1; k++ {
			fmt.Fprintf(&b, "%d:%g", ja[k]-1, a[k])
			if k+1 < ia[i+1]-1 {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
