package sensorcheck

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeInvalidType  = "invalid_type"
	CodeRequired     = "required"
	CodeUnknownKey   = "unknown_key"
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer of the offending property (for example: /location/gps/lon).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters such as {"expected": "number", "got": "string"}.
	Params map[string]any
}

// Field returns the last segment of the issue path, or "" for the root.
func (it Issue) Field() string {
	parts := splitPointer(it.Path)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// Parent returns the dotted path of the object holding the offending property.
func (it Issue) Parent() string {
	parts := splitPointer(it.Path)
	if len(parts) == 0 {
		return RootPath
	}
	return dotted(parts[:len(parts)-1])
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// RootPath is the dotted rendering of the document root.
const RootPath = "(root)"

// DottedPath renders a JSON Pointer as a dotted path: /location/gps becomes
// location.gps and the root becomes (root).
func DottedPath(pointer string) string { return dotted(splitPointer(pointer)) }

func dotted(parts []string) string {
	if len(parts) == 0 {
		return RootPath
	}
	return strings.Join(parts, ".")
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func splitPointer(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = pointerUnescaper.Replace(s)
	}
	return parts
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// JoinPointer appends one unescaped segment to a JSON Pointer.
func JoinPointer(base, name string) string {
	if base == "/" {
		base = ""
	}
	return base + "/" + pointerEscaper.Replace(name)
}
