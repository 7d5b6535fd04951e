//go:build linux

package scanner

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// Stat returns the metadata for path, following symbolic links.
func Stat(path string) (FileMeta, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return FileMeta{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	mode := uint32(st.Mode)
	sec, nsec := st.Mtim.Unix()
	return FileMeta{
		IsDir:     mode&unix.S_IFMT == unix.S_IFDIR,
		IsRegular: mode&unix.S_IFMT == unix.S_IFREG,
		Size:      st.Size,
		ModTime:   time.Unix(sec, nsec),
		OtherRead: mode&unix.S_IROTH != 0,
		OtherExec: mode&unix.S_IXOTH != 0,
	}, nil
}

// Exists reports whether path can be resolved at all.
func Exists(path string) bool {
	return unix.Access(path, unix.F_OK) == nil
}
