// SPDX-License-Identifier: MIT

package bench

import "errors"

var (
	// ErrInvalidConfig wraps validator failures from LoadConfig.
	ErrInvalidConfig = errors.New("bench: invalid config")

	// ErrEmptyCatalog marks a matrix list with no entries.
	ErrEmptyCatalog = errors.New("bench: empty matrix list")

	// ErrBadCatalog marks a matrix list that is not a YAML sequence of
	// non-empty file names.
	ErrBadCatalog = errors.New("bench: malformed matrix list")

	// ErrReference marks a reference solve that gonum reports as singular.
	ErrReference = errors.New("bench: reference solver failed")
)
