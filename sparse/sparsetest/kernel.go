// SPDX-License-Identifier: MIT

// Package sparsetest provides an in-memory test double of kernel.Kernel.
//
// Kernel keeps the builder form as an unordered triplet list inside the
// Storage buffers and compresses it with a plain sort. It is slow on purpose
// and shares no code with the production kernel, so the SparseMatrix state
// machine can be tested against an independent implementation of the contract.
// Failure codes can be injected and every call is counted.
package sparsetest

import (
	"golang.org/x/exp/slices"

	"github.com/katalvlaran/sparsefem/kernel"
)

// Calls counts kernel invocations per capability.
type Calls struct {
	Prepare  int
	Insert   int
	Compress int
	Expand   int
}

// Kernel is a naive kernel.Kernel. Use it through a pointer so that injected
// failures and call counts are shared with the matrix under test.
//
// Builder form: slot k (0-based) holds row Work[k], column ColumnIndex[k] and
// value Values[k]; RowStart[N] is the next free 1-based slot.
type Kernel struct {
	// FailInsert, when non-zero, is returned by InsertEntry without inserting.
	FailInsert kernel.Code
	// FailExpand, when non-zero, is returned by ExpandToBuildingForm without expanding.
	FailExpand kernel.Code

	Calls Calls
}

var _ kernel.Kernel = (*Kernel)(nil)

// New returns a Kernel with no injected failures.
func New() *Kernel { return &Kernel{} }

// Reset clears injected failures and counters.
func (k *Kernel) Reset() { *k = Kernel{} }

func (k *Kernel) PrepareForBuilding(s kernel.Storage) {
	k.Calls.Prepare++
	clear(s.RowStart)
	s.RowStart[s.Order] = 1
	clear(s.Work)
}

func (k *Kernel) InsertEntry(s kernel.Storage, row, col int, value float64, mode kernel.Mode, _ kernel.Diagnostics) kernel.Code {
	k.Calls.Insert++
	if k.FailInsert != 0 {
		return k.FailInsert
	}
	if row < 1 || row > s.Order || col < 1 || col > s.Order {
		return kernel.CodeBadIndex
	}

	used := s.RowStart[s.Order] - 1
	for slot := 0; slot < used; slot++ {
		if s.Work[slot] == row && s.ColumnIndex[slot] == col {
			if mode == kernel.ModeAccumulate {
				s.Values[slot] += value
			} else {
				s.Values[slot] = value
			}
			return kernel.CodeEntryExists
		}
	}
	if used >= s.Capacity {
		return kernel.CodeNoRoom
	}
	s.Work[used] = row
	s.ColumnIndex[used] = col
	s.Values[used] = value
	s.RowStart[s.Order] = used + 2

	return kernel.CodeOK
}

type triplet struct {
	row, col int
	v        float64
}

func (k *Kernel) CompressToRowForm(s kernel.Storage) {
	k.Calls.Compress++
	n := s.Order
	used := s.RowStart[n] - 1

	entries := make([]triplet, used)
	for slot := range entries {
		entries[slot] = triplet{row: s.Work[slot], col: s.ColumnIndex[slot], v: s.Values[slot]}
	}
	slices.SortFunc(entries, func(a, b triplet) int {
		if a.row != b.row {
			return a.row - b.row
		}
		return a.col - b.col
	})

	clear(s.RowStart)
	for slot, e := range entries {
		s.ColumnIndex[slot] = e.col
		s.Values[slot] = e.v
		s.RowStart[e.row]++ // count into the slot after the row, prefix-summed below
	}
	s.RowStart[0] = 1
	for i := 1; i <= n; i++ {
		s.RowStart[i] += s.RowStart[i-1]
	}
	clear(s.Work)
}

func (k *Kernel) ExpandToBuildingForm(s kernel.Storage, _ kernel.Diagnostics) kernel.Code {
	k.Calls.Expand++
	if k.FailExpand != 0 {
		return k.FailExpand
	}
	n := s.Order
	stored := s.RowStart[n] - 1
	if stored > s.Capacity || stored > len(s.Work) {
		return kernel.CodeCapacityTooSmall
	}

	for i := 0; i < n; i++ {
		for slot := s.RowStart[i] - 1; slot < s.RowStart[i+1]-1; slot++ {
			s.Work[slot] = i + 1
		}
	}
	free := s.RowStart[n]
	clear(s.RowStart)
	s.RowStart[n] = free

	return kernel.CodeOK
}
