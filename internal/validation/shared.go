package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error collects per-field validation messages.
type Error struct {
	Fields map[string]string
	kind   error
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the sentinel the failure belongs to, so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return e.kind
}

func newError(kind error, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields, kind: kind}
}
