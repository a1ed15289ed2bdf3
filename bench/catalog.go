// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadMatrixList reads a YAML sequence of Matrix Market file names:
//
//	- bcsstk01.mtx
//	- west0067.mtx
func LoadMatrixList(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bench: matrix list: %w", err)
	}

	return ParseMatrixList(raw)
}

// ParseMatrixList decodes the matrix list document in raw.
func ParseMatrixList(raw []byte) ([]string, error) {
	var names []string
	if err := yaml.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCatalog, err)
	}
	if len(names) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, fmt.Errorf("%w: entry %d is empty", ErrBadCatalog, i)
		}
	}

	return names, nil
}
