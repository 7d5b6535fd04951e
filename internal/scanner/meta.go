package scanner

import "time"

// FileMeta is a snapshot of the metadata the server needs for one path.
type FileMeta struct {
	IsDir     bool
	IsRegular bool
	Size      int64
	ModTime   time.Time
	// OtherRead and OtherExec report the POSIX permission bits for users that
	// are neither the owner nor in the owning group.
	OtherRead bool
	OtherExec bool
}
