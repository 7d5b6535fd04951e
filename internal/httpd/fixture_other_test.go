//go:build !linux

package httpd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func rawDirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := []string{".", ".."}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
