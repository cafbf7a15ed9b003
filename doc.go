// Package sparsefem is sparse matrix storage for finite-element assembly:
// square matrices with a fixed nonzero budget, filled entry by entry in any
// order and then packed into sorted compressed rows for fast products.
//
// 🚀 What is in the box?
//
//	• SparseMatrix: Set, Add and Get with 0-based indices; y = A·x; A·B
//	• Lazy mode switching between an unordered builder form and sorted rows
//	• Adopt: wrap compressed-row buffers produced by a mesher or a file reader
//	• Typed capacity errors that say how many slots you asked for
//	• slog diagnostics and Prometheus counters, both opt-in
//
// ✨ Why sparsefem?
//
//   - Assembly friendly – Add accumulates, zero contributions cost nothing
//   - Predictable memory – four buffers sized once from order N and capacity NZ
//   - Swappable kernel – the storage scheme sits behind a four-method interface
//
// Packages:
//
//	kernel/             Storage buffers, result codes and the Kernel contract
//	kernel/itpack/      in-place ITPACK-style builder/row-form kernel (default)
//	sparse/             SparseMatrix engine, options, errors, metrics
//	sparse/sparsetest/  naive Kernel double with fault injection for tests
//	examples/           runnable scenarios: bar assembly, 2D Poisson with CG, Adopt
//
// Quick example (two bar elements, nodes 0–1–2):
//
//	K := sparse.NewWithCapacity(3, 9)
//	for _, e := range [][2]int{{0, 1}, {1, 2}} {
//	    K.Add(e[0], e[0], 1); K.Add(e[0], e[1], -1)
//	    K.Add(e[1], e[0], -1); K.Add(e[1], e[1], 1)
//	}
//	f, _ := K.MulVec([]float64{1, 2, 3}) // [-1 0 1]
//
//	go get github.com/katalvlaran/sparsefem/sparse
package sparsefem
