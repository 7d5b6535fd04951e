package httpd

import "strings"

// DefaultContentType is sent for files whose extension has no known type.
const DefaultContentType = "application/octet-stream"

var mimeTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".png":  "image/png",
	".css":  "text/css",
	".au":   "audio/basic",
	".wav":  "audio/wav",
	".avi":  "video/x-msvideo",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".mp3":  "audio/mpeg",
}

// MimeType looks up the type for name by its last extension. Matching is
// case sensitive.
func MimeType(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", false
	}
	t, ok := mimeTypes[name[i:]]
	return t, ok
}

// ContentType is MimeType with DefaultContentType as the fallback.
func ContentType(name string) string {
	if t, ok := MimeType(name); ok {
		return t
	}
	return DefaultContentType
}
