package patch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConditionFailed is returned when a patch precondition is false.
	ErrConditionFailed = errors.New("condition failed")

	// ErrStrict wraps violations of strict RFC 6902 semantics.
	ErrStrict = errors.New("strict validation failed")
)

// ApplyError represents one or more errors that occurred while applying a
// patch.
type ApplyError struct {
	errors []error
}

func (e *ApplyError) Error() string {
	if len(e.errors) == 1 {
		return e.errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:", len(e.errors))
	for _, err := range e.errors {
		b.WriteString("\n- ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Errors returns the individual errors.
func (e *ApplyError) Errors() []error {
	return e.errors
}

func (e *ApplyError) Unwrap() []error {
	return e.errors
}
