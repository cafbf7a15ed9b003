// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Keep the guard logic of the public surface in one place.
//   - Return sentinels wrapped with the offending values; call sites add the method tag.

package sparse

import "fmt"

// checkDims requires a positive order and capacity.
func checkDims(order, capacity int) error {
	if order <= 0 || capacity <= 0 {
		return fmt.Errorf("order=%d capacity=%d: %w", order, capacity, ErrInvalidDimension)
	}

	return nil
}

// checkIndex requires 0 ≤ i, j < m.order.
func (m *SparseMatrix) checkIndex(i, j int) error {
	if i < 0 || i >= m.order || j < 0 || j >= m.order {
		return fmt.Errorf("order=%d: %w", m.order, ErrInvalidIndex)
	}

	return nil
}

// checkVecLen requires positive order and both vector lengths equal to it.
func (m *SparseMatrix) checkVecLen(dstLen, xLen int) error {
	if m.order <= 0 || dstLen != m.order || xLen != m.order {
		return fmt.Errorf("order=%d len(dst)=%d len(x)=%d: %w", m.order, dstLen, xLen, ErrInvalidDimension)
	}

	return nil
}

// overlaps reports whether two non-empty slices share any element.
// Two contiguous ranges overlap iff one starts inside the other.
// Complexity: O(len(a) + len(b)).
func overlaps(a, b []float64) bool {
	for i := range a {
		if &a[i] == &b[0] {
			return true
		}
	}
	for i := range b {
		if &b[i] == &a[0] {
			return true
		}
	}

	return false
}

// checkProductOperands validates a sparse-sparse product m·right → result.
// Order of checks: nil → aliasing → dimensions.
func (m *SparseMatrix) checkProductOperands(right, result *SparseMatrix) error {
	if right == nil || result == nil {
		return ErrNilMatrix
	}
	if result == m || result == right {
		return ErrAliasedResult
	}
	if m.order <= 0 || right.order != m.order || result.order != m.order {
		return fmt.Errorf("order %d × %d → %d: %w", m.order, right.order, result.order, ErrInvalidDimension)
	}

	return nil
}

// validateRowForm checks 1-based compressed-row buffers for Adopt.
//
// Implementation:
//   - Stage 1: RowStart has order+1 entries, starts at 1 and never decreases.
//   - Stage 2: the stored count fits the column and value buffers.
//   - Stage 3: columns lie in 1..order and strictly increase within each row.
//
// Complexity: O(order + stored).
func validateRowForm(order int, rowStart, columnIndex []int, slots int) error {
	if len(rowStart) != order+1 {
		return fmt.Errorf("len(rowStart)=%d want %d: %w", len(rowStart), order+1, ErrMalformedStorage)
	}
	if rowStart[0] != 1 {
		return fmt.Errorf("rowStart[0]=%d want 1: %w", rowStart[0], ErrMalformedStorage)
	}
	for i := 0; i < order; i++ {
		if rowStart[i+1] < rowStart[i] {
			return fmt.Errorf("rowStart decreases at row %d: %w", i, ErrMalformedStorage)
		}
	}

	stored := rowStart[order] - 1
	if stored > slots {
		return fmt.Errorf("%d entries exceed buffers of %d: %w", stored, slots, ErrMalformedStorage)
	}

	for i := 0; i < order; i++ {
		prev := 0
		for k := rowStart[i] - 1; k < rowStart[i+1]-1; k++ {
			col := columnIndex[k]
			if col < 1 || col > order || col <= prev {
				return fmt.Errorf("row %d: column %d out of order or range: %w", i, col, ErrMalformedStorage)
			}
			prev = col
		}
	}

	return nil
}
