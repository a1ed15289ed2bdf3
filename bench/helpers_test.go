// SPDX-License-Identifier: MIT

package bench_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	mtxSwap = `%%MatrixMarket matrix coordinate real general
2 2 3
1 1 2
1 2 1
2 1 4
2 2 3
`
	mtxSingular = `%%MatrixMarket matrix array real general
2 2
1
2
2
4
`
	mtxSPD = `%%MatrixMarket matrix coordinate real symmetric
3 3 5
1 1 4
2 1 1
2 2 4
3 2 1
3 3 4
`
)

// writeFile creates dir/name with content, making parents as needed.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// newWorkspace lays out <dir>/matrices.yaml and <dir>/matrices/<name>.
func newWorkspace(t *testing.T, files map[string]string, order ...string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		writeFile(t, dir, filepath.Join("matrices", name), body)
	}
	var list strings.Builder
	for _, n := range order {
		list.WriteString("- " + n + "\n")
	}
	writeFile(t, dir, "matrices.yaml", list.String())

	return dir
}
