// SPDX-License-Identifier: MIT
// Package sparse_test: SparseMatrix against an injected kernel.
//
// Purpose:
//   - Run the engine over the naive sparsetest.Kernel and compare it with the
//     default ITPACK-style kernel on the same operation sequence.
//   - Drive failure codes the default kernel cannot produce through the public API.

package sparse_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparsefem/kernel"
	"github.com/katalvlaran/sparsefem/sparse"
	"github.com/katalvlaran/sparsefem/sparse/sparsetest"
)

// TestKernelsAgree applies one random assembly sequence to both kernels,
// interleaving reads so that each matrix changes mode many times.
func TestKernelsAgree(t *testing.T) {
	const (
		n   = 8
		nz  = 40
		ops = 300
	)
	ref := sparse.NewWithCapacity(n, nz)
	naive := sparse.NewWithCapacity(n, nz, sparse.WithKernel(sparsetest.New()))

	rng := rand.New(rand.NewSource(7))
	for step := 0; step < ops; step++ {
		i, j := rng.Intn(n), rng.Intn(n)
		v := float64(rng.Intn(9) - 4)

		switch rng.Intn(4) {
		case 0:
			errRef, errNaive := ref.Set(i, j, v), naive.Set(i, j, v)
			require.Equal(t, errRef == nil, errNaive == nil, "step %d", step)
		case 1, 2:
			errRef, errNaive := ref.Add(i, j, v), naive.Add(i, j, v)
			require.Equal(t, errRef == nil, errNaive == nil, "step %d", step)
		default:
			require.Equal(t, mustGet(t, ref, i, j), mustGet(t, naive, i, j), "step %d", step)
		}
		require.Equal(t, ref.NonZeros(), naive.NonZeros(), "step %d", step)
	}

	nnz := ref.NonZeros()
	require.Equal(t, ref.RowPointers(), naive.RowPointers())
	require.Equal(t, ref.ColumnIndices()[:nnz], naive.ColumnIndices()[:nnz])
	require.Equal(t, ref.Values()[:nnz], naive.Values()[:nnz])
}

// TestKernelCallCounts checks that lazy transitions run each kernel step once.
func TestKernelCallCounts(t *testing.T) {
	k := sparsetest.New()
	m := sparse.NewWithCapacity(3, 3, sparse.WithKernel(k))

	require.NoError(t, m.Add(0, 0, 0))
	require.Equal(t, sparsetest.Calls{}, k.Calls) // zero Add never reaches the kernel

	mustSet(t, m, 0, 0, 1)
	mustSet(t, m, 1, 1, 2)
	require.Equal(t, sparsetest.Calls{Prepare: 1, Insert: 2}, k.Calls)

	mustGet(t, m, 0, 0)
	mustGet(t, m, 1, 1)
	_, err := m.MulVec([]float64{1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, 1, k.Calls.Compress) // compressed once, then reused

	mustSet(t, m, 2, 2, 3)
	require.Equal(t, 1, k.Calls.Expand)
	require.Equal(t, 3, k.Calls.Insert)

	_, err = m.Get(3, 0)
	require.ErrorIs(t, err, sparse.ErrInvalidIndex)
	require.Equal(t, 1, k.Calls.Compress) // rejected before finalizing
}

// TestKernelBadIndexCode checks that a kernel index rejection surfaces as ErrInvalidIndex.
func TestKernelBadIndexCode(t *testing.T) {
	k := sparsetest.New()
	m := sparse.NewWithCapacity(2, 2, sparse.WithKernel(k))
	k.FailInsert = kernel.CodeBadIndex

	err := m.Set(0, 0, 1)
	require.ErrorIs(t, err, sparse.ErrInvalidIndex)

	var ke *sparse.KernelError
	require.True(t, errors.As(err, &ke))
	require.Equal(t, kernel.CodeBadIndex, ke.Code)
	require.Equal(t, "Set", ke.Op)
	require.Zero(t, m.NonZeros())
}

// TestKernelUnknownCode checks that unrecognized failure codes map to ErrKernel.
func TestKernelUnknownCode(t *testing.T) {
	k := sparsetest.New()
	m := sparse.NewWithCapacity(2, 2, sparse.WithKernel(k))
	k.FailInsert = kernel.Code(799)

	err := m.Add(1, 1, 1)
	require.ErrorIs(t, err, sparse.ErrKernel)
	require.NotErrorIs(t, err, sparse.ErrInvalidIndex)
	require.ErrorContains(t, err, "kernel code 799")
}

// TestKernelNoRoomCode checks capacity reporting for an injected CodeNoRoom.
func TestKernelNoRoomCode(t *testing.T) {
	k := sparsetest.New()
	m := sparse.NewWithCapacity(4, 8, sparse.WithKernel(k))
	mustSet(t, m, 0, 0, 1)
	k.FailInsert = kernel.CodeNoRoom

	var ce *sparse.CapacityError
	require.True(t, errors.As(m.Add(1, 1, 1), &ce))
	require.Equal(t, 2, ce.Requested)
	require.Equal(t, 1, ce.Stored)
	require.Equal(t, 8, ce.Capacity)
}

// TestKernelExpandFailure checks that a failed expansion keeps the compressed form.
func TestKernelExpandFailure(t *testing.T) {
	k := sparsetest.New()
	m := diag(t, []float64{1, 2}, sparse.WithKernel(k))
	require.NoError(t, m.Finalize())

	k.FailExpand = kernel.CodeCapacityTooSmall
	require.ErrorIs(t, m.UnFinalize(), sparse.ErrCapacityExceeded)
	require.Equal(t, sparse.StateCompressed, m.State())
	require.Equal(t, 2.0, mustGet(t, m, 1, 1))

	k.FailExpand = kernel.Code(750)
	require.ErrorIs(t, m.Set(0, 1, 5), sparse.ErrKernel)

	k.Reset()
	mustSet(t, m, 0, 1, 5)
	require.Equal(t, [][]float64{{1, 5}, {0, 2}}, dense(t, m))
}

// TestInformationalCodeIsNotFailure checks that CodeEntryExists counts as success.
func TestInformationalCodeIsNotFailure(t *testing.T) {
	k := sparsetest.New()
	m := sparse.NewWithCapacity(2, 2, sparse.WithKernel(k))
	mustSet(t, m, 0, 0, 1)

	k.FailInsert = kernel.CodeEntryExists // the kernel claims an update happened
	require.NoError(t, m.Set(1, 1, 1))
	require.Equal(t, 1, m.NonZeros()) // no slot was consumed
}
