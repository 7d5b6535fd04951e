//go:build !linux

package scanner

import (
	"io"
	"os"
)

const readBatch = 64

// dirReader falls back to os.File.ReadDir, which hides "." and "..". They
// are reported first instead.
type dirReader struct {
	f    *os.File
	dots bool
}

func openDir(path string) (*dirReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &dirReader{f: f}, nil
}

func (d *dirReader) next() ([]string, error) {
	if !d.dots {
		d.dots = true
		return []string{".", ".."}, nil
	}
	entries, err := d.f.ReadDir(readBatch)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	if err != nil && err != io.EOF {
		return names, err
	}
	if len(entries) == 0 {
		return nil, io.EOF
	}
	return names, nil
}

func (d *dirReader) close() error {
	return d.f.Close()
}
