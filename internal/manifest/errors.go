package manifest

import (
	"errors"
	"fmt"
)

// ErrNoDescriptor is returned when a plugin directory has no descriptor file.
var ErrNoDescriptor = errors.New("no plugin descriptor found")

// MalformedError reports a descriptor that could not be read, decoded, or
// did not pass schema validation.
type MalformedError struct {
	Path   string
	Reason string
	Issues []ValidationIssue
	Err    error
}

func (e *MalformedError) Error() string {
	msg := fmt.Sprintf("malformed descriptor %s: %s", e.Path, e.Reason)
	if len(e.Issues) > 0 {
		first := e.Issues[0]
		if first.Path != "" {
			msg += fmt.Sprintf(" (%s: %s)", first.Path, first.Message)
		} else {
			msg += fmt.Sprintf(" (%s)", first.Message)
		}
		if n := len(e.Issues) - 1; n > 0 {
			msg += fmt.Sprintf(" and %d more", n)
		}
	}
	return msg
}

func (e *MalformedError) Unwrap() error { return e.Err }

func malformed(path, reason string, err error) *MalformedError {
	return &MalformedError{Path: path, Reason: reason, Err: err}
}
