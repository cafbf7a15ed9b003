// SPDX-License-Identifier: MIT

package kernel

import "fmt"

// Code is the result of a kernel operation that can fail.
// Codes up to 700 are success or informational; anything above is a failure.
type Code int

const (
	// CodeOK means the operation completed and, for InsertEntry, a new slot was used.
	CodeOK Code = 0

	// CodeEntryExists means InsertEntry found the entry already stored and
	// updated it according to the Mode. No slot was consumed.
	CodeEntryExists Code = 700

	// CodeBadIndex means InsertEntry received a row or column outside 1..Order.
	CodeBadIndex Code = 701

	// CodeNoRoom means InsertEntry needed a new slot but all Capacity slots are in use.
	CodeNoRoom Code = 702

	// CodeCapacityTooSmall means ExpandToBuildingForm cannot represent the stored
	// entries within Capacity.
	CodeCapacityTooSmall Code = 703
)

// failureThreshold separates informational codes from failures.
const failureThreshold = 700

// Failed reports whether c signals a failure.
func (c Code) Failed() bool { return c > failureThreshold }

// Placed reports whether an InsertEntry consumed a new slot.
func (c Code) Placed() bool { return c == CodeOK }

// String describes the code the way a diagnostics line would.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeEntryExists:
		return "entry already stored"
	case CodeBadIndex:
		return "improper index of matrix"
	case CodeNoRoom, CodeCapacityTooSmall:
		return "maximum number of nonzero values in matrix is too small"
	default:
		return fmt.Sprintf("unknown kernel code %d", int(c))
	}
}
