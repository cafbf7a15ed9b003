// SPDX-License-Identifier: MIT

package sparse

// State is the storage mode of a SparseMatrix.
type State uint8

const (
	// StateEmpty holds no buffers. Order and capacity may be declared.
	StateEmpty State = iota
	// StateBuilding accepts insertions in any order; its buffers are kernel-private.
	StateBuilding
	// StateCompressed holds sorted, packed rows ready for lookup and multiplication.
	StateCompressed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StateCompressed:
		return "compressed"
	default:
		return "unknown"
	}
}

// transitions lists the mode changes driven by the kernel. Initialize and Clear
// are resets that are legal from every state and do not go through this table.
var transitions = [...][3]bool{
	StateEmpty:      {},
	StateBuilding:   {StateCompressed: true},
	StateCompressed: {StateBuilding: true},
}

// checkTransition returns ErrInvalidStateTransition unless from→to is listed.
func checkTransition(from, to State) error {
	if int(from) >= len(transitions) || int(to) >= len(transitions[from]) || !transitions[from][to] {
		return ErrInvalidStateTransition
	}

	return nil
}
