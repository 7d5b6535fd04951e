package task

import (
	"net"
	"time"
)

// MaxRequestSize is the largest number of request bytes read from a
// connection.
const MaxRequestSize = 4000

// Task is one accepted connection waiting to be served. It is owned by the
// worker that runs it, which closes Conn when done.
type Task struct {
	// ID is a sequence number assigned by the acceptor.
	ID uint64
	// Conn is the client connection.
	Conn net.Conn
	// AcceptedAt records when the acceptor handed the connection off.
	AcceptedAt time.Time
}

// RemoteAddr returns the client address, or "-" when unknown.
func (t Task) RemoteAddr() string {
	if t.Conn == nil {
		return "-"
	}
	addr := t.Conn.RemoteAddr()
	if addr == nil {
		return "-"
	}
	return addr.String()
}
