// SPDX-License-Identifier: MIT

// Package kernel defines the narrow contract between the sparse storage engine
// and a sparse numerical kernel.
//
// Purpose:
//   - Name the four capabilities the engine consumes: prepare a builder form,
//     insert one entry, compress to row form, expand back to builder form.
//   - Fix the data exchanged across the boundary (Storage) and the result codes.
//
// Conventions:
//   - Row and column numbers handed to a Kernel are 1-based.
//   - Storage buffers are shared, not copied: a Kernel mutates them in place and
//     the caller observes the result through its own slice headers.
//   - In builder form the contents of RowStart and Work are private to the Kernel.
//   - In row form RowStart[i]..RowStart[i+1]-1 (1-based) delimits row i.
package kernel

import "log/slog"

// Mode selects how InsertEntry treats an entry that is already stored.
type Mode int

const (
	// ModeOverwrite replaces the stored value.
	ModeOverwrite Mode = 0
	// ModeAccumulate adds the new value to the stored one.
	ModeAccumulate Mode = 1
)

// String returns a short lower-case name, used as a metrics label.
func (m Mode) String() string {
	switch m {
	case ModeOverwrite:
		return "overwrite"
	case ModeAccumulate:
		return "accumulate"
	default:
		return "unknown"
	}
}

// Storage bundles the four buffers of a square sparse matrix.
//   - RowStart has Order+1 elements.
//   - ColumnIndex, Values and Work have Capacity elements.
type Storage struct {
	Order       int       // N
	Capacity    int       // NZ
	RowStart    []int     // IA
	ColumnIndex []int     // JA
	Values      []float64 // A
	Work        []int     // IWORK, kernel scratch
}

// NewStorage allocates zero-filled buffers for an order×order matrix holding at
// most capacity entries. The caller validates order and capacity.
func NewStorage(order, capacity int) Storage {
	return Storage{
		Order:       order,
		Capacity:    capacity,
		RowStart:    make([]int, order+1),
		ColumnIndex: make([]int, capacity),
		Values:      make([]float64, capacity),
		Work:        make([]int, capacity),
	}
}

// Allocated reports whether all four buffers are present with their declared sizes.
func (s Storage) Allocated() bool {
	return s.Order > 0 && s.Capacity > 0 &&
		len(s.RowStart) == s.Order+1 &&
		len(s.ColumnIndex) >= s.Capacity &&
		len(s.Values) >= s.Capacity &&
		len(s.Work) >= s.Capacity
}

// Stored returns the number of entries held in row form, read from the
// trailing row pointer. Only meaningful after CompressToRowForm.
func (s Storage) Stored() int {
	if len(s.RowStart) == 0 {
		return 0
	}

	return s.RowStart[s.Order] - 1
}

// Diagnostics tells a Kernel where and how verbosely to report.
// A nil Logger silences the kernel regardless of Level.
type Diagnostics struct {
	Logger *slog.Logger
	Level  slog.Level
}

// Enabled reports whether a message at lvl should be emitted.
func (d Diagnostics) Enabled(lvl slog.Level) bool {
	return d.Logger != nil && lvl >= d.Level
}

// Kernel is the sparse numerical kernel consumed by the storage engine.
//
// PrepareForBuilding and CompressToRowForm have no failure path given a valid
// prior state. InsertEntry and ExpandToBuildingForm report through a Code.
type Kernel interface {
	// PrepareForBuilding establishes an empty builder form in s.
	PrepareForBuilding(s Storage)

	// InsertEntry stores value at the 1-based (row, col) of a builder form.
	InsertEntry(s Storage, row, col int, value float64, mode Mode, d Diagnostics) Code

	// CompressToRowForm sorts and packs a builder form into row form in place.
	CompressToRowForm(s Storage)

	// ExpandToBuildingForm rebuilds a builder form from row form in place.
	ExpandToBuildingForm(s Storage, d Diagnostics) Code
}
