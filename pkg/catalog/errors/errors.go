package errors

import (
	"fmt"
)

var ErrUpstream = fmt.Errorf("upstream error")
var ErrResolution = fmt.Errorf("resolution error")
var ErrNotSortable = fmt.Errorf("not sortable")

var ErrCursorLoop = fmt.Errorf("cursor loop")
var ErrTooManyPages = fmt.Errorf("too many pages")

type myError struct {
	msg     string
	targets []error
}

func (m myError) Error() string { return m.msg }

func (m myError) Is(target error) bool {
	for _, t := range m.targets {
		if target == t {
			return true
		}
	}
	return false
}

func NewUpstreamError(msg string) error {
	return &myError{
		msg:     msg,
		targets: []error{ErrUpstream},
	}
}

// NewCursorLoopError reports a next cursor that has already been visited during
// the current walk. It is also an upstream error.
func NewCursorLoopError(cursor string) error {
	return &myError{
		msg:     fmt.Sprintf("next cursor %s has already been visited", cursor),
		targets: []error{ErrCursorLoop, ErrUpstream},
	}
}

// NewTooManyPagesError reports a walk that exceeded the configured page limit.
// It is also an upstream error.
func NewTooManyPagesError(limit int) error {
	return &myError{
		msg:     fmt.Sprintf("page limit of %d exceeded", limit),
		targets: []error{ErrTooManyPages, ErrUpstream},
	}
}

func NewResolutionError(msg string) error {
	return &myError{
		msg:     msg,
		targets: []error{ErrResolution},
	}
}

func NewNotSortableError(field string) error {
	return &myError{
		msg:     fmt.Sprintf("field \"%s\" is not sortable", field),
		targets: []error{ErrNotSortable},
	}
}
