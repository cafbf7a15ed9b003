// SPDX-License-Identifier: MIT

package sparse

// White-box bridge for sparse_test: exposes the transition table and the
// row-form validator without widening the production API.

var (
	ExportedCheckTransition = checkTransition
	ExportedValidateRowForm = validateRowForm
	ExportedErrorKind       = errorKind
)
