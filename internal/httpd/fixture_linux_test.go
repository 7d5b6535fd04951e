//go:build linux

package httpd

import (
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// rawDirNames lists dir straight from getdents64, "." and ".." included.
func rawDirNames(t *testing.T, dir string) []string {
	t.Helper()
	f, err := os.Open(dir)
	require.NoError(t, err)
	defer f.Close()

	var names []string
	buf := make([]byte, 4096)
	for {
		n, err := unix.Getdents(int(f.Fd()), buf)
		require.NoError(t, err)
		if n <= 0 {
			return names
		}
		for off := 0; off < n; {
			d := (*unix.Dirent)(unsafe.Pointer(&buf[off]))
			var name []byte
			for _, c := range d.Name {
				if c == 0 {
					break
				}
				name = append(name, byte(c))
			}
			names = append(names, string(name))
			off += int(d.Reclen)
		}
	}
}
