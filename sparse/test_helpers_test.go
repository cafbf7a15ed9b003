// SPDX-License-Identifier: MIT
// Package sparse_test contains test helpers
//
// Purpose:
//   - Small deterministic fixtures (diagonal and dense-pattern matrices).
//   - A captured slog logger for asserting on log output.

package sparse_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparsefem/sparse"
)

// mustSet stores v at (i, j) or fails the test.
func mustSet(tb testing.TB, m *sparse.SparseMatrix, i, j int, v float64) {
	tb.Helper()
	require.NoError(tb, m.Set(i, j, v))
}

// mustGet reads (i, j) or fails the test.
func mustGet(tb testing.TB, m *sparse.SparseMatrix, i, j int) float64 {
	tb.Helper()
	v, err := m.Get(i, j)
	require.NoError(tb, err)

	return v
}

// diag builds diag(values...) with room for every diagonal entry and one spare per row.
func diag(tb testing.TB, values []float64, opts ...sparse.Option) *sparse.SparseMatrix {
	tb.Helper()
	n := len(values)
	m := sparse.NewWithCapacity(n, 2*n, opts...)
	for i, v := range values {
		mustSet(tb, m, i, i, v)
	}

	return m
}

// fromRows builds an n×n matrix from a dense row slice, storing only nonzeros.
func fromRows(tb testing.TB, rows [][]float64, opts ...sparse.Option) *sparse.SparseMatrix {
	tb.Helper()
	n := len(rows)
	m := sparse.NewWithCapacity(n, n*n, opts...)
	for i, row := range rows {
		for j, v := range row {
			if v != 0 {
				mustSet(tb, m, i, j, v)
			}
		}
	}

	return m
}

// dense reads every entry of m into a row slice.
func dense(tb testing.TB, m *sparse.SparseMatrix) [][]float64 {
	tb.Helper()
	out := make([][]float64, m.Order())
	for i := range out {
		out[i] = make([]float64, m.Order())
		for j := range out[i] {
			out[i][j] = mustGet(tb, m, i, j)
		}
	}

	return out
}

// capturedLogger returns a Debug-level text logger writing into the returned buffer.
func capturedLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	return slog.New(h), &buf
}
