package httpd

import "fmt"

// Action is the kind of response chosen for a request.
type Action int

const (
	// ActionReturnFile streams the regular file at Decision.Path.
	ActionReturnFile Action = iota
	// ActionListDirectory renders an index of the directory at Decision.Path.
	ActionListDirectory
	// ActionRedirect asks the client to retry with a trailing slash.
	ActionRedirect
	// ActionError answers with the error response for Decision.Err.
	ActionError
)

func (a Action) String() string {
	switch a {
	case ActionReturnFile:
		return "file"
	case ActionListDirectory:
		return "listing"
	case ActionRedirect:
		return "redirect"
	case ActionError:
		return "error"
	default:
		return fmt.Sprintf("action_%d", int(a))
	}
}

// ErrorKind identifies one of the error responses.
type ErrorKind int

const (
	noError ErrorKind = iota
	BadRequest
	Forbidden
	NotFound
	InternalError
	NotSupported
)

type errorText struct {
	status  int
	line    string
	message string
}

var errorTexts = map[ErrorKind]errorText{
	BadRequest:    {400, "400 Bad Request", "Bad Request."},
	Forbidden:     {403, "403 Forbidden", "Access Denied."},
	NotFound:      {404, "404 Not Found", "File not found."},
	InternalError: {500, "500 Internal Server Error", "Some server side error."},
	NotSupported:  {501, "501 Not supported", "Method is not supported."},
}

// Status returns the numeric HTTP status code for k.
func (k ErrorKind) Status() int {
	return errorTexts[k].status
}

func (k ErrorKind) String() string {
	if t, ok := errorTexts[k]; ok {
		return t.line
	}
	return fmt.Sprintf("error_%d", int(k))
}

// Decision is the outcome of analysing a request.
type Decision struct {
	Action Action
	// Path is the resolved filesystem path (document root + request path).
	Path string
	// Target is the request path exactly as received.
	Target string
	// Err is set when Action is ActionError.
	Err ErrorKind
}

func errorDecision(kind ErrorKind, target string) Decision {
	return Decision{Action: ActionError, Err: kind, Target: target}
}
