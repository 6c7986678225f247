package userconfig

import (
	"errors"
	"fmt"
	"strings"

	eng "github.com/reoring/userconfig/internal/engine"
)

// Issue codes, in priority order of the categories they belong to.
const (
	CodeParseError   = eng.CodeParseError // malformed input, or MaxDepth exceeded
	CodeDuplicateKey = eng.CodeDuplicateKey
	CodeTruncated    = eng.CodeTruncated
	CodeInvalidShape = "invalid_shape"
	CodeRequired     = "required"
	CodeInvalidType  = "invalid_type"
	CodeInvalidEnum  = "invalid_enum"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /1/role).
	Code    string // One of the codes listed above.
	Message string // Human-readable text, also used as the Result error.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters such as {"field":"id"}.
	Params map[string]any
}

func (i Issue) String() string {
	if i.Path == "" || i.Path == "/" {
		return i.Message
	}
	return fmt.Sprintf("%s (at %s)", i.Message, i.Path)
}

// Issues is a collection of validation errors that implements error.
// The validators stop at the first violation, so in practice it holds one entry.
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
		b.WriteString(iss[i].Message)
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// First returns the first issue, if any.
func (iss Issues) First() (Issue, bool) {
	if len(iss) == 0 {
		return Issue{}, false
	}
	return iss[0], true
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
