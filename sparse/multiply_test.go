// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparsefem/sparse"
)

// TestMulVecDiagonal checks diag(2,3,4)·[1,1,1] = [2,3,4].
func TestMulVecDiagonal(t *testing.T) {
	m := diag(t, []float64{2, 3, 4})

	y, err := m.MulVec([]float64{1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3, 4}, y)
	require.Equal(t, sparse.StateCompressed, m.State()) // product finalized
}

// TestMulVecGeneral checks a product with off-diagonal entries and an empty row.
func TestMulVecGeneral(t *testing.T) {
	m := fromRows(t, [][]float64{
		{1, 2, 0},
		{0, 0, 0},
		{-1, 0, 3},
	})

	y, err := m.MulVec([]float64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []float64{5, 0, 8}, y)
}

// TestMulVecToOverwrites checks that dst is replaced rather than accumulated into.
func TestMulVecToOverwrites(t *testing.T) {
	m := diag(t, []float64{1, 2})
	dst := []float64{9, 9}
	require.NoError(t, m.MulVecTo(dst, []float64{3, 4}))
	require.Equal(t, []float64{3, 8}, dst)

	empty := sparse.NewWithCapacity(2, 2)
	require.NoError(t, empty.MulVecTo(dst, []float64{3, 4}))
	require.Equal(t, []float64{0, 0}, dst)               // zero matrix
	require.Equal(t, sparse.StateEmpty, empty.State()) // still nothing allocated
}

// TestMulVecErrors checks the length and aliasing guards.
func TestMulVecErrors(t *testing.T) {
	m := diag(t, []float64{1, 2, 3})

	_, err := m.MulVec([]float64{1, 2})
	require.ErrorIs(t, err, sparse.ErrInvalidDimension) // short x

	require.ErrorIs(t, m.MulVecTo(make([]float64, 2), []float64{1, 2, 3}), sparse.ErrInvalidDimension) // short dst

	x := []float64{1, 2, 3}
	require.ErrorIs(t, m.MulVecTo(x, x), sparse.ErrAliasedResult)
	require.Equal(t, []float64{1, 2, 3}, x) // untouched

	_, err = sparse.New(0).MulVec(nil)
	require.ErrorIs(t, err, sparse.ErrInvalidDimension) // order 0
}

// TestMulMatrixIdentity checks I₂·diag(5,6) = diag(5,6) with exactly two stored entries.
func TestMulMatrixIdentity(t *testing.T) {
	id := diag(t, []float64{1, 1})
	d := diag(t, []float64{5, 6})
	result := sparse.NewWithCapacity(2, 4)

	require.NoError(t, id.MulMatrix(d, result))
	require.Equal(t, [][]float64{{5, 0}, {0, 6}}, dense(t, result))
	require.Equal(t, 2, result.NonZeros()) // zero products are not stored
}

// TestMulMatrixGeneral checks a product with fill-in and a square of one operand.
func TestMulMatrixGeneral(t *testing.T) {
	a := fromRows(t, [][]float64{{1, 2}, {0, 1}})
	b := fromRows(t, [][]float64{{1, 0}, {3, 1}})

	ab := sparse.NewWithCapacity(2, 4)
	require.NoError(t, a.MulMatrix(b, ab))
	require.Equal(t, [][]float64{{7, 2}, {3, 1}}, dense(t, ab))

	aa := sparse.NewWithCapacity(2, 4)
	require.NoError(t, a.MulMatrix(a, aa)) // left and right may be the same matrix
	require.Equal(t, [][]float64{{1, 4}, {0, 1}}, dense(t, aa))
}

// TestMulMatrixKeepsUntouchedResultEntries checks that the result is written, not cleared.
func TestMulMatrixKeepsUntouchedResultEntries(t *testing.T) {
	a := diag(t, []float64{2, 0})
	b := diag(t, []float64{3, 3})
	result := sparse.NewWithCapacity(2, 4)
	mustSet(t, result, 1, 0, 42)

	require.NoError(t, a.MulMatrix(b, result))
	require.Equal(t, [][]float64{{6, 0}, {42, 0}}, dense(t, result))
}

// TestMulMatrixEmptyFactor checks that a zero factor leaves the result alone.
func TestMulMatrixEmptyFactor(t *testing.T) {
	a := diag(t, []float64{1, 2})
	zero := sparse.NewWithCapacity(2, 2)
	result := sparse.NewWithCapacity(2, 2)

	require.NoError(t, a.MulMatrix(zero, result))
	require.NoError(t, zero.MulMatrix(a, result))
	require.Equal(t, sparse.StateEmpty, result.State())
}

// TestMulMatrixErrors checks the operand guards in their documented order.
func TestMulMatrixErrors(t *testing.T) {
	a := diag(t, []float64{1, 2})
	b := diag(t, []float64{3, 4})
	big := diag(t, []float64{1, 2, 3})
	result := sparse.NewWithCapacity(2, 4)

	require.ErrorIs(t, a.MulMatrix(nil, result), sparse.ErrNilMatrix)
	require.ErrorIs(t, a.MulMatrix(b, nil), sparse.ErrNilMatrix)
	require.ErrorIs(t, a.MulMatrix(b, a), sparse.ErrAliasedResult)
	require.ErrorIs(t, a.MulMatrix(b, b), sparse.ErrAliasedResult)
	require.ErrorIs(t, a.MulMatrix(big, result), sparse.ErrInvalidDimension)
	require.ErrorIs(t, a.MulMatrix(b, sparse.NewWithCapacity(3, 9)), sparse.ErrInvalidDimension)
	require.Equal(t, sparse.StateEmpty, result.State()) // nothing written on rejection
}

// TestMulMatrixResultCapacity checks that a result without room reports ErrCapacityExceeded.
func TestMulMatrixResultCapacity(t *testing.T) {
	a := fromRows(t, [][]float64{{1, 1}, {1, 1}})
	result := sparse.NewWithCapacity(2, 3)

	err := a.MulMatrix(a, result)
	require.ErrorIs(t, err, sparse.ErrCapacityExceeded)
	require.ErrorContains(t, err, "SparseMatrix.MulMatrix")
	require.Equal(t, 3, result.NonZeros()) // rows written before the failure remain
}

// TestMulVecToOverlap checks that partially overlapping views of one array are rejected.
func TestMulVecToOverlap(t *testing.T) {
	ones := fromRows(t, [][]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})

	buf := []float64{0, 1, 2, 3}
	require.ErrorIs(t, ones.MulVecTo(buf[0:3], buf[1:4]), sparse.ErrAliasedResult) // dst starts before x
	require.ErrorIs(t, ones.MulVecTo(buf[1:4], buf[0:3]), sparse.ErrAliasedResult) // x starts before dst
	require.Equal(t, []float64{0, 1, 2, 3}, buf)                                  // nothing written

	halves := []float64{0, 0, 0, 1, 2, 3}
	require.NoError(t, ones.MulVecTo(halves[:3], halves[3:])) // same array, disjoint ranges
	require.Equal(t, []float64{6, 6, 6, 1, 2, 3}, halves)
}
