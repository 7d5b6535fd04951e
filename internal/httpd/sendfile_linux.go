//go:build linux

package httpd

import (
	"io"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// trySendfile streams f to w with sendfile(2) when w is backed by a socket.
// used is false when the fast path is unavailable and nothing was sent.
func trySendfile(w io.Writer, f *os.File, size int64) (written int64, used bool, err error) {
	sc, ok := w.(syscall.Conn)
	if !ok || size <= 0 {
		return 0, false, nil
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return 0, false, nil
	}

	const maxChunk = 1 << 30
	var (
		offset   int64
		sendErr  error
		fallback bool
	)
	src := int(f.Fd())
	ctrlErr := rc.Write(func(fd uintptr) bool {
		for written < size {
			remaining := size - written
			if remaining > maxChunk {
				remaining = maxChunk
			}
			n, err := unix.Sendfile(int(fd), src, &offset, int(remaining))
			if n > 0 {
				written += int64(n)
			}
			switch err {
			case nil:
				if n == 0 {
					// File shrank since it was measured.
					return true
				}
			case unix.EAGAIN:
				return false
			case unix.EINTR:
			case unix.ENOSYS, unix.EINVAL, unix.EOPNOTSUPP:
				if written == 0 {
					fallback = true
				} else {
					sendErr = err
				}
				return true
			default:
				sendErr = err
				return true
			}
		}
		return true
	})
	if fallback {
		return 0, false, nil
	}
	if sendErr == nil {
		sendErr = ctrlErr
	}
	if sendErr == nil && written < size {
		sendErr = io.ErrShortWrite
	}
	return written, true, sendErr
}
