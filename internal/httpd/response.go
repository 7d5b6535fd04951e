package httpd

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DefaultServerName is used for the Server header and listing footer.
const DefaultServerName = "webserver/1.0"

// timeFormat is RFC 1123 with a fixed GMT zone, as HTTP dates require.
const timeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

const (
	errorBody    = "<HTML><HEAD><TITLE>%s</TITLE></HEAD><BODY><H4>%s</H4>%s</BODY></HTML>"
	redirectBody = "<HTML><HEAD><TITLE>302 Found</TITLE></HEAD><BODY><H4>302 Found</H4>Directories must end with a slash.</BODY></HTML>"
)

// FormatTime renders t in the HTTP date format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// response holds one response head and, for generated pages, its body.
// Content-Length is taken from the body unless the body is streamed
// separately.
type response struct {
	status        string
	server        string
	date          string
	location      string
	contentType   string
	contentLength int64
	lastModified  string
	body          []byte
}

func (r *response) withBody(contentType string, body []byte) *response {
	r.contentType = contentType
	r.body = body
	r.contentLength = int64(len(body))
	return r
}

// head serializes the status line and headers in wire order.
func (r *response) head() []byte {
	var b bytes.Buffer
	b.WriteString("HTTP/1.1 " + r.status + crlf)
	writeHeader(&b, "Server", r.server)
	writeHeader(&b, "Date", r.date)
	if r.location != "" {
		writeHeader(&b, "Location", r.location)
	}
	writeHeader(&b, "Content-Type", r.contentType)
	writeHeader(&b, "Content-Length", strconv.FormatInt(r.contentLength, 10))
	if r.lastModified != "" {
		writeHeader(&b, "Last-Modified", r.lastModified)
	}
	writeHeader(&b, "Connection", "close")
	b.WriteString(crlf)
	return b.Bytes()
}

func writeHeader(b *bytes.Buffer, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString(crlf)
}

// serialize returns the full response: head followed by body.
func (r *response) serialize() []byte {
	return append(r.head(), r.body...)
}

func errorResponse(kind ErrorKind, server, date string) *response {
	text, ok := errorTexts[kind]
	if !ok {
		text = errorTexts[InternalError]
	}
	r := &response{status: text.line, server: server, date: date}
	return r.withBody("text/html", []byte(fmt.Sprintf(errorBody, text.line, text.line, text.message)))
}

// redirectResponse points the client at target with the leading separator
// removed and a trailing one added.
func redirectResponse(target, server, date string) *response {
	r := &response{
		status:   "302 Found",
		server:   server,
		date:     date,
		location: strings.TrimPrefix(target, "/") + "/",
	}
	return r.withBody("text/html", []byte(redirectBody))
}

// writeAll writes p once and reports a short write as an error.
func writeAll(w io.Writer, p []byte) (int, error) {
	n, err := w.Write(p)
	if err != nil {
		return n, err
	}
	if n != len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}
