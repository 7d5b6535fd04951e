package httpd

import (
	"errors"
	"io"
	"os"
)

const streamBufSize = 32 * 1024

// streamFile copies size bytes of f to w. It returns how many bytes were read
// from the file and how many reached w; the two differ only when err is
// non-nil. Nothing is retried.
func streamFile(w io.Writer, f *os.File, size int64) (read, written int64, err error) {
	if n, used, err := trySendfile(w, f, size); used {
		return n, n, err
	}
	return copyCounted(w, f)
}

func copyCounted(dst io.Writer, src io.Reader) (read, written int64, err error) {
	buf := make([]byte, streamBufSize)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			read += int64(n)
			wn, writeErr := dst.Write(buf[:n])
			if wn > 0 {
				written += int64(wn)
			}
			if writeErr != nil {
				return read, written, writeErr
			}
			if wn != n {
				return read, written, io.ErrShortWrite
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return read, written, nil
			}
			return read, written, readErr
		}
	}
}
