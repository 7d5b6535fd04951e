package scanner

import (
	"errors"
	"io"
	"path/filepath"
)

// Entry is one name found while scanning a directory.
type Entry struct {
	Name string
	Meta FileMeta
}

// ScanFunc is called for every directory entry. statErr is non-nil when the
// entry's metadata could not be read; Meta is then the zero value. Returning
// a non-nil error stops the scan.
type ScanFunc func(e Entry, statErr error) error

// Scan reads dir in batches and calls fn for each entry in the order the
// filesystem returns them, "." and ".." included. Entries are neither sorted
// nor filtered.
func Scan(dir string, fn ScanFunc) error {
	d, err := openDir(dir)
	if err != nil {
		return err
	}
	defer d.close()

	for {
		batch, err := d.next()
		for _, name := range batch {
			meta, statErr := Stat(filepath.Join(dir, name))
			if cbErr := fn(Entry{Name: name, Meta: meta}, statErr); cbErr != nil {
				return cbErr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
