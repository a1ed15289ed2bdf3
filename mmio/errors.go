// SPDX-License-Identifier: MIT

package mmio

import "errors"

// Sentinel errors. Read wraps them with the 1-based line number of the
// offending input line; match with errors.Is.
var (
	// ErrBadHeader marks a missing or malformed %%MatrixMarket banner.
	ErrBadHeader = errors.New("mmio: malformed header")

	// ErrUnsupported marks a well-formed banner this reader does not handle
	// (complex or hermitian fields, non-matrix objects).
	ErrUnsupported = errors.New("mmio: unsupported format")

	// ErrBadSize marks a missing or invalid size line.
	ErrBadSize = errors.New("mmio: invalid size line")

	// ErrBadEntry marks an entry line that cannot be parsed or whose indices
	// fall outside the declared shape.
	ErrBadEntry = errors.New("mmio: invalid entry")

	// ErrEntryCount marks a file with fewer or more entries than declared.
	ErrEntryCount = errors.New("mmio: entry count mismatch")
)
