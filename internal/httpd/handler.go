package httpd

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/astaxie/beego/logs"

	"github.com/syncopasoft/webserver/internal/scanner"
	"github.com/syncopasoft/webserver/internal/task"
	"github.com/syncopasoft/webserver/internal/worker"
)

// Options configures a Handler.
type Options struct {
	// Root is the document root. Empty means the working directory.
	Root string
	// ServerName is sent in the Server header. Empty means DefaultServerName.
	ServerName string
	// Log receives diagnostics. Nil means the beego default logger.
	Log *logs.BeeLogger
	// Report, when set, records the outcome of every served connection.
	Report *Report
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// Handler serves one static-file request per connection.
type Handler struct {
	root   string
	server string
	log    *logs.BeeLogger
	report *Report
	now    func() time.Time
}

// NewHandler returns a Handler for opts.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		root:   normalizeRoot(opts.Root),
		server: opts.ServerName,
		log:    opts.Log,
		report: opts.Report,
		now:    opts.Now,
	}
	if h.server == "" {
		h.server = DefaultServerName
	}
	if h.log == nil {
		h.log = logs.GetBeeLogger()
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

func normalizeRoot(root string) string {
	if root == "" {
		return "."
	}
	if root == "/" {
		return ""
	}
	return strings.TrimRight(root, "/")
}

// Job wraps t so it can be submitted to a worker pool.
func (h *Handler) Job(t task.Task) worker.Job {
	return worker.JobFunc(func() { h.Serve(t) })
}

// Serve reads a single request from t.Conn, writes the response and closes
// the connection. It never returns an error: failures are logged.
func (h *Handler) Serve(t task.Task) {
	start := h.now()
	defer func() {
		if err := t.Conn.Close(); err != nil {
			h.log.Error("conn %d: close: %v", t.ID, err)
		}
	}()

	buf := make([]byte, task.MaxRequestSize)
	n, err := t.Conn.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			h.log.Error("conn %d: read request from %s: %v", t.ID, t.RemoteAddr(), err)
		}
		return
	}

	date := FormatTime(start)
	d := Analyze(buf[:n], h.root)
	h.log.Debug("conn %d: %s %q -> %s %s", t.ID, t.RemoteAddr(), d.Target, d.Action, d.Path)

	var status int
	var sent int64
	switch d.Action {
	case ActionReturnFile:
		status, sent = h.sendFile(t, d.Path, date)
	case ActionListDirectory:
		status, sent = h.sendListing(t, d, date)
	case ActionRedirect:
		status, sent = 302, h.send(t, "redirect", redirectResponse(d.Target, h.server, date))
	default:
		status, sent = h.sendError(t, d.Err, date)
	}

	h.report.Record(RequestReport{
		ID:        t.ID,
		Remote:    t.RemoteAddr(),
		Target:    d.Target,
		Status:    status,
		Bytes:     sent,
		StartedAt: start,
		Duration:  h.now().Sub(start),
	})
}

// send writes a fully generated response and returns the bytes written.
func (h *Handler) send(t task.Task, kind string, r *response) int64 {
	n, err := writeAll(t.Conn, r.serialize())
	if err != nil {
		h.log.Error("conn %d: write %s response: %v (%d bytes written)", t.ID, kind, err, n)
	}
	return int64(n)
}

func (h *Handler) sendError(t task.Task, kind ErrorKind, date string) (int, int64) {
	if kind.Status() == 0 {
		kind = InternalError
	}
	return kind.Status(), h.send(t, "error", errorResponse(kind, h.server, date))
}

// sendFile streams the file at path. Failures before the head is written
// degrade to an internal error response; later failures are only logged.
func (h *Handler) sendFile(t task.Task, path, date string) (int, int64) {
	meta, err := scanner.Stat(path)
	if err != nil {
		h.log.Error("conn %d: %v", t.ID, err)
		return h.sendError(t, InternalError, date)
	}
	if !meta.IsRegular {
		h.log.Error("conn %d: %s is not a regular file", t.ID, path)
		return h.sendError(t, InternalError, date)
	}
	f, err := os.Open(path)
	if err != nil {
		h.log.Error("conn %d: %v", t.ID, err)
		return h.sendError(t, InternalError, date)
	}
	defer func() {
		if err := f.Close(); err != nil {
			h.log.Error("conn %d: close %s: %v", t.ID, path, err)
		}
	}()
	h.log.Debug("conn %d: %s last modified %s", t.ID, path, FormatTime(meta.ModTime))

	r := &response{
		status:        "200 OK",
		server:        h.server,
		date:          date,
		contentType:   ContentType(path),
		contentLength: meta.Size,
	}
	n, err := writeAll(t.Conn, r.head())
	if err != nil {
		h.log.Error("conn %d: write file headers: %v (%d bytes written)", t.ID, err, n)
		return 200, int64(n)
	}

	read, written, err := streamFile(t.Conn, f, meta.Size)
	if err != nil || read != written {
		h.log.Error("conn %d: stream %s: read %d bytes, wrote %d: %v", t.ID, path, read, written, err)
	}
	return 200, int64(n) + written
}

func (h *Handler) sendListing(t task.Task, d Decision, date string) (int, int64) {
	meta, err := scanner.Stat(d.Path)
	if err != nil {
		h.log.Error("conn %d: %v", t.ID, err)
		return h.sendError(t, InternalError, date)
	}
	body, err := renderListing(d.Path, d.Target, h.server, func(name string, err error) {
		h.log.Warn("conn %d: listing %s: skipping %s: %v", t.ID, d.Path, name, err)
	})
	if err != nil {
		h.log.Error("conn %d: list %s: %v", t.ID, d.Path, err)
		return h.sendError(t, InternalError, date)
	}

	r := &response{
		status:       "200 OK",
		server:       h.server,
		date:         date,
		lastModified: FormatTime(meta.ModTime),
	}
	return 200, h.send(t, "listing", r.withBody("text/html", body))
}
