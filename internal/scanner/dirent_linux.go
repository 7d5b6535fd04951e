//go:build linux

package scanner

import (
	"bytes"
	"encoding/binary"
	"io"
	"io/fs"

	"golang.org/x/sys/unix"
)

const (
	direntBufSize = 8192
	// Offsets into struct linux_dirent64.
	direntReclenOff = 16
	direntNameOff   = 19
)

// dirReader enumerates raw getdents64 records, so "." and ".." come back
// wherever the filesystem places them.
type dirReader struct {
	path string
	fd   int
	buf  []byte
}

func openDir(path string) (*dirReader, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	return &dirReader{path: path, fd: fd, buf: make([]byte, direntBufSize)}, nil
}

// next returns the names from one getdents call, or io.EOF once the
// directory is exhausted.
func (d *dirReader) next() ([]string, error) {
	for {
		n, err := unix.Getdents(d.fd, d.buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, &fs.PathError{Op: "getdents", Path: d.path, Err: err}
		}
		if n <= 0 {
			return nil, io.EOF
		}
		if names := parseDirents(d.buf[:n]); len(names) > 0 {
			return names, nil
		}
	}
}

func (d *dirReader) close() error {
	return unix.Close(d.fd)
}

func parseDirents(buf []byte) []string {
	var names []string
	for len(buf) >= direntNameOff {
		reclen := int(binary.NativeEndian.Uint16(buf[direntReclenOff:]))
		if reclen < direntNameOff || reclen > len(buf) {
			break
		}
		name := buf[direntNameOff:reclen]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		names = append(names, string(name))
		buf = buf[reclen:]
	}
	return names
}
