// SPDX-License-Identifier: MIT

// Package itpack implements kernel.Kernel with the builder/row-form storage
// scheme of the ITPACK sparse routines (SBINI, SBSIJ, SBEND, SBAGN).
//
// Builder form:
//   - RowStart[i] (i < N) is the 1-based slot of the first entry of row i, 0 if the row is empty.
//   - RowStart[N] is the 1-based slot the next new entry will take.
//   - Work[k] is the 1-based slot of the next entry in the same row, 0 at the end of a chain.
//   - ColumnIndex[k], Values[k] hold the entry in slot k.
//
// Row form:
//   - RowStart is the usual compressed-row pointer array, 1-based, RowStart[N] = stored+1.
//   - Entries of a row are contiguous and sorted by column. Work is all zero.
//
// Both transitions run in place over the caller's buffers; the only extra memory
// is the sort bookkeeping of a single row.
package itpack

import (
	"context"
	"log/slog"
	"sort"

	"github.com/katalvlaran/sparsefem/kernel"
)

// Kernel is the ITPACK-style implementation of kernel.Kernel. The zero value is ready to use.
type Kernel struct{}

var _ kernel.Kernel = Kernel{}

// New returns a ready Kernel.
func New() Kernel { return Kernel{} }

// PrepareForBuilding empties every row chain and resets the free slot to 1.
// Complexity: O(N + NZ).
func (Kernel) PrepareForBuilding(s kernel.Storage) {
	n := s.Order
	for i := 0; i < n; i++ {
		s.RowStart[i] = 0
	}
	s.RowStart[n] = 1
	clear(s.Work)
}

// InsertEntry stores value at the 1-based (row, col).
//
// Implementation:
//   - Stage 1: reject indices outside 1..N with CodeBadIndex.
//   - Stage 2: walk row's chain; on a column hit apply mode and return CodeEntryExists.
//   - Stage 3: take the next free slot and link it at the head of the chain,
//     or return CodeNoRoom when all Capacity slots are used.
//
// Updating an existing entry never needs a slot, so it succeeds on a full matrix.
// Complexity: O(length of row).
func (Kernel) InsertEntry(s kernel.Storage, row, col int, value float64, mode kernel.Mode, d kernel.Diagnostics) kernel.Code {
	n := s.Order
	if row < 1 || row > n || col < 1 || col > n {
		report(d, slog.LevelError, "itpack: insert rejected",
			slog.Int("code", int(kernel.CodeBadIndex)),
			slog.Int("row", row),
			slog.Int("col", col),
			slog.Int("order", n),
		)
		return kernel.CodeBadIndex
	}

	for k := s.RowStart[row-1]; k != 0; k = s.Work[k-1] {
		if s.ColumnIndex[k-1] != col {
			continue
		}
		if mode == kernel.ModeAccumulate {
			s.Values[k-1] += value
		} else {
			s.Values[k-1] = value
		}
		report(d, slog.LevelDebug, "itpack: entry already stored",
			slog.Int("code", int(kernel.CodeEntryExists)),
			slog.Int("row", row),
			slog.Int("col", col),
			slog.String("mode", mode.String()),
		)
		return kernel.CodeEntryExists
	}

	free := s.RowStart[n]
	if free > s.Capacity {
		report(d, slog.LevelError, "itpack: no room for new entry",
			slog.Int("code", int(kernel.CodeNoRoom)),
			slog.Int("row", row),
			slog.Int("col", col),
			slog.Int("capacity", s.Capacity),
		)
		return kernel.CodeNoRoom
	}

	s.ColumnIndex[free-1] = col
	s.Values[free-1] = value
	s.Work[free-1] = s.RowStart[row-1] // link in front of the current head
	s.RowStart[row-1] = free
	s.RowStart[n] = free + 1

	return kernel.CodeOK
}

// CompressToRowForm turns the builder chains into sorted compressed rows.
//
// Implementation:
//   - Stage 1: walk every chain and overwrite each link in Work with the owning row.
//   - Stage 2: count entries per row into RowStart and prefix-sum into 1-based starts.
//   - Stage 3: replace the row tag in Work by the destination slot; RowStart is
//     used as a running cursor and shifted back afterwards.
//   - Stage 4: apply the permutation by following cycles, swapping ColumnIndex,
//     Values and Work together.
//   - Stage 5: sort each row by column and clear Work.
//
// Complexity: O(N + NZ + Σ r·log r) over row lengths r.
func (Kernel) CompressToRowForm(s kernel.Storage) {
	n := s.Order
	ia, ja, a, iw := s.RowStart, s.ColumnIndex, s.Values, s.Work
	used := ia[n] - 1

	// Stage 1: row tags.
	for i := 0; i < n; i++ {
		for k := ia[i]; k != 0; {
			next := iw[k-1]
			iw[k-1] = i + 1
			k = next
		}
		ia[i] = 0
	}

	// Stage 2: counts -> starts.
	for k := 0; k < used; k++ {
		ia[iw[k]-1]++
	}
	next := 1
	for i := 0; i < n; i++ {
		cnt := ia[i]
		ia[i] = next
		next += cnt
	}

	// Stage 3: destinations. After the loop ia[i] is the start of row i+1.
	for k := 0; k < used; k++ {
		r := iw[k] - 1
		iw[k] = ia[r]
		ia[r]++
	}
	for i := n - 1; i > 0; i-- {
		ia[i] = ia[i-1]
	}
	ia[0] = 1

	// Stage 4: cycle permutation.
	for k := 0; k < used; k++ {
		for iw[k] != k+1 {
			dst := iw[k] - 1
			ja[k], ja[dst] = ja[dst], ja[k]
			a[k], a[dst] = a[dst], a[k]
			iw[k], iw[dst] = iw[dst], iw[k]
		}
	}

	// Stage 5: order columns within each row.
	for i := 0; i < n; i++ {
		lo, hi := ia[i]-1, ia[i+1]-1
		if hi-lo > 1 {
			sort.Sort(rowSpan{cols: ja[lo:hi], vals: a[lo:hi]})
		}
	}
	clear(iw)
}

// ExpandToBuildingForm rebuilds the row chains from compressed rows.
// Returns CodeCapacityTooSmall when the stored entries do not fit the declared
// capacity or any of the slot buffers.
// Complexity: O(N + stored).
func (Kernel) ExpandToBuildingForm(s kernel.Storage, d kernel.Diagnostics) kernel.Code {
	n := s.Order
	stored := s.RowStart[n] - 1
	if stored > s.Capacity || stored > len(s.Work) || stored > len(s.ColumnIndex) || stored > len(s.Values) {
		report(d, slog.LevelError, "itpack: capacity too small for builder form",
			slog.Int("code", int(kernel.CodeCapacityTooSmall)),
			slog.Int("stored", stored),
			slog.Int("capacity", s.Capacity),
		)
		return kernel.CodeCapacityTooSmall
	}

	// RowStart[i+1] is still the row-form pointer when row i is relinked.
	for i := 0; i < n; i++ {
		lo, hi := s.RowStart[i], s.RowStart[i+1]
		if lo == hi {
			s.RowStart[i] = 0
			continue
		}
		for k := lo; k < hi-1; k++ {
			s.Work[k-1] = k + 1
		}
		s.Work[hi-2] = 0
	}
	// RowStart[N] already equals stored+1, the next free slot.

	return kernel.CodeOK
}

// rowSpan sorts one compressed row by column, moving values alongside.
type rowSpan struct {
	cols []int
	vals []float64
}

func (r rowSpan) Len() int           { return len(r.cols) }
func (r rowSpan) Less(i, j int) bool { return r.cols[i] < r.cols[j] }
func (r rowSpan) Swap(i, j int) {
	r.cols[i], r.cols[j] = r.cols[j], r.cols[i]
	r.vals[i], r.vals[j] = r.vals[j], r.vals[i]
}

func report(d kernel.Diagnostics, lvl slog.Level, msg string, attrs ...slog.Attr) {
	if !d.Enabled(lvl) {
		return
	}
	d.Logger.LogAttrs(context.Background(), lvl, msg, attrs...)
}
