// SPDX-License-Identifier: MIT

package sparse

// MulVec returns y = A·x in a new slice of length N.
// Complexity: O(N + nnz).
func (m *SparseMatrix) MulVec(x []float64) ([]float64, error) {
	if m.order <= 0 {
		return nil, m.fail(methodErrorf(ctxMulVec, m.checkVecLen(0, len(x))))
	}
	y := make([]float64, m.order)
	if err := m.MulVecTo(y, x); err != nil {
		return nil, err
	}

	return y, nil
}

// MulVecTo writes A·x into dst.
//
// Implementation:
//   - Stage 1: require len(dst) == len(x) == N and dst not overlapping x.
//   - Stage 2: finalize a builder form.
//   - Stage 3: for each row, sum values[k]·x[col[k]] over the row span into dst[i].
//
// dst is fully overwritten; nothing accumulates into its previous contents.
// A matrix without buffers yields the zero vector.
//
// Errors:
//   - ErrInvalidDimension on length mismatch; ErrAliasedResult when dst and x overlap,
//     including partial overlaps of one backing array.
//
// Complexity: O(N + nnz); the overlap check adds O(N).
func (m *SparseMatrix) MulVecTo(dst, x []float64) error {
	if err := m.checkVecLen(len(dst), len(x)); err != nil {
		return m.fail(methodErrorf(ctxMulVec, err))
	}
	if overlaps(dst, x) {
		return m.fail(methodErrorf(ctxMulVec, ErrAliasedResult))
	}
	if m.state == StateEmpty {
		clear(dst)
		return nil
	}
	m.ensureCompressed()

	ia, ja, a := m.store.RowStart, m.store.ColumnIndex, m.store.Values
	for i := 0; i < m.order; i++ {
		var sum float64
		for k := ia[i] - 1; k < ia[i+1]-1; k++ {
			sum += a[k] * x[ja[k]-1]
		}
		dst[i] = sum
	}

	return nil
}

// MulMatrix computes m·right and stores every nonzero product entry into result
// with result.Set. Entries of result that the product does not touch are left as they are.
//
// Implementation:
//   - Stage 1: validate operands (nil → aliasing → order mismatch).
//   - Stage 2: finalize m and right.
//   - Stage 3: for every row i of m and every column j, take the dot product of
//     row i with column j of right (looked up entry by entry) and Set it when nonzero.
//
// Errors:
//   - ErrNilMatrix, ErrAliasedResult, ErrInvalidDimension when the three orders differ.
//   - Any error of result.Set, e.g. ErrCapacityExceeded; entries written before it remain.
//
// Complexity: O(N² · r) for average row length r of m; meant for sparse products
// where the result stays small. Empty rows of m are skipped.
func (m *SparseMatrix) MulMatrix(right, result *SparseMatrix) error {
	if err := m.checkProductOperands(right, result); err != nil {
		return m.fail(methodErrorf(ctxMulMatrix, err))
	}
	if m.state == StateEmpty || right.state == StateEmpty {
		return nil // one factor is the zero matrix
	}
	m.ensureCompressed()
	right.ensureCompressed()

	n := m.order
	ia, ja, a := m.store.RowStart, m.store.ColumnIndex, m.store.Values
	for i := 0; i < n; i++ {
		lo, hi := ia[i]-1, ia[i+1]-1
		if lo == hi {
			continue
		}
		for j := 0; j < n; j++ {
			var sum float64
			for k := lo; k < hi; k++ {
				sum += a[k] * right.lookup(ja[k]-1, j)
			}
			if sum == 0 {
				continue
			}
			if err := result.Set(i, j, sum); err != nil {
				return methodErrorf(ctxMulMatrix, err) // already counted by result
			}
		}
	}

	return nil
}
