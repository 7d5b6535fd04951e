package httpd

import (
	"bytes"
	"strings"

	"github.com/syncopasoft/webserver/internal/scanner"
)

const (
	crlf      = "\r\n"
	indexFile = "index.html"
)

// Analyze inspects the raw request bytes and decides how to answer them.
// root is the document root without a trailing separator.
//
// Error conditions are checked in a fixed order: missing line terminator,
// doubled separator, malformed request line, unsupported method, missing
// path, permission walk, final stat.
func Analyze(raw []byte, root string) Decision {
	end := bytes.Index(raw, []byte(crlf))
	if end < 0 {
		return errorDecision(BadRequest, "")
	}
	line := string(raw[:end])
	// Doubled separators are the only traversal guard at this layer.
	if strings.Contains(line, "//") {
		return errorDecision(BadRequest, "")
	}

	method, rest := nextToken(line)
	target, proto := nextToken(rest)
	if method == "" || target == "" || proto == "" {
		return errorDecision(BadRequest, target)
	}
	if !strings.HasPrefix(proto, "HTTP/1.1") && !strings.HasPrefix(proto, "HTTP/1.0") {
		return errorDecision(BadRequest, target)
	}
	if method != "GET" {
		return errorDecision(NotSupported, target)
	}
	if !strings.HasPrefix(target, "/") {
		return errorDecision(BadRequest, target)
	}

	path := root + target
	if !scanner.Exists(path) {
		return errorDecision(NotFound, target)
	}
	if kind := checkPermissions(root, target); kind != noError {
		return errorDecision(kind, target)
	}

	meta, err := scanner.Stat(path)
	if err != nil {
		return errorDecision(InternalError, target)
	}
	switch {
	case meta.IsRegular:
		return Decision{Action: ActionReturnFile, Path: path, Target: target}
	case meta.IsDir:
		if !strings.HasSuffix(path, "/") {
			return Decision{Action: ActionRedirect, Path: path, Target: target}
		}
		index := path + indexFile
		if !scanner.Exists(index) {
			return Decision{Action: ActionListDirectory, Path: path, Target: target}
		}
		if kind := checkPermissions(root, target+indexFile); kind != noError {
			return errorDecision(kind, target)
		}
		return Decision{Action: ActionReturnFile, Path: index, Target: target}
	default:
		return errorDecision(Forbidden, target)
	}
}

// nextToken skips leading spaces and splits s at the next space. rest is
// everything after that single space, untouched.
func nextToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " ")
	i := strings.IndexByte(s, ' ')
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

// checkPermissions walks target from the document root inward. Every
// directory on the way needs the other-execute bit; the first regular file
// reached needs the other-read bit and ends the walk.
func checkPermissions(root, target string) ErrorKind {
	for _, p := range walkPrefixes(root, target) {
		meta, err := scanner.Stat(p)
		if err != nil {
			return InternalError
		}
		if meta.IsDir && !meta.OtherExec {
			return Forbidden
		}
		if meta.IsRegular {
			if !meta.OtherRead {
				return Forbidden
			}
			return noError
		}
	}
	return noError
}

// walkPrefixes returns root+target cut after every separator, followed by the
// full path when it does not already end in one.
func walkPrefixes(root, target string) []string {
	full := root + target
	prefixes := make([]string, 0, strings.Count(target, "/")+1)
	for i := 0; i < len(target); i++ {
		if target[i] == '/' {
			prefixes = append(prefixes, root+target[:i+1])
		}
	}
	if !strings.HasSuffix(full, "/") {
		prefixes = append(prefixes, full)
	}
	return prefixes
}
