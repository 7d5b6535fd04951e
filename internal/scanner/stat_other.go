//go:build !linux

package scanner

import "os"

// Stat returns the metadata for path, following symbolic links.
func Stat(path string) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMeta{}, err
	}
	perm := info.Mode().Perm()
	return FileMeta{
		IsDir:     info.IsDir(),
		IsRegular: info.Mode().IsRegular(),
		Size:      info.Size(),
		ModTime:   info.ModTime(),
		OtherRead: perm&0o004 != 0,
		OtherExec: perm&0o001 != 0,
	}, nil
}

// Exists reports whether path can be resolved at all.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
