// SPDX-License-Identifier: MIT

// Package sparse stores square sparse matrices in compressed-row form for
// finite-element assembly.
//
// The sparse package provides:
//
//   - SparseMatrix, an order-N matrix with a declared nonzero capacity NZ,
//     backed by four buffers (row pointers, column indices, values and a kernel
//     working array) that are allocated once per Initialize.
//   - Set and Add for overwriting and accumulating entries in any order, Get for
//     lookups, MulVec/MulVecTo for y = A·x and MulMatrix for sparse products.
//   - Adopt for wrapping compressed-row buffers produced elsewhere.
//
// Storage modes:
//
//	Empty ──Set/Add/Initialize──▶ Building ──Finalize/Get/MulVec──▶ Compressed
//	                                  ▲                                  │
//	                                  └──────UnFinalize/Set/Add──────────┘
//
// Building accepts entries in any order; Compressed keeps each row's columns
// sorted. Operations switch modes on demand, so an assembly loop can interleave
// Add and Get at the price of a compression and an expansion per switch.
// Finalize and UnFinalize are only legal from the opposite mode and return
// ErrInvalidStateTransition otherwise. Clear returns to Empty from anywhere.
//
// Indices:
//
//	The public API is 0-based. The raw buffers returned by RowPointers,
//	ColumnIndices and Values use the kernel's 1-based layout: row i spans
//	positions RowPointers()[i]-1 .. RowPointers()[i+1]-2.
//
// Capacity:
//
//	Every distinct (i, j) costs one slot, including entries explicitly set to
//	zero. Add with a zero value is skipped entirely. Exceeding NZ fails with
//	ErrCapacityExceeded; errors.As with *CapacityError reports the requested
//	and declared counts. A failed insertion leaves earlier entries intact.
//
// Observability:
//
//	WithLogger routes state transitions (Debug), capacity failures (Warn) and
//	kernel diagnostics (filtered by WithDiagnosticLevel) to a *slog.Logger.
//	WithMetrics attaches Prometheus counters created by NewMetrics.
//
// A SparseMatrix is not safe for concurrent use.
package sparse
