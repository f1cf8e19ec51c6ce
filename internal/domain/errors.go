package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingPagination marks a paginated response without total_pages metadata.
// A single-page fallback would silently truncate the record set, so this is fatal.
var ErrMissingPagination = errors.New("pagination metadata missing")

// RetrievalError wraps a gateway failure. A run that hits one produces no roster
// and sends nothing.
type RetrievalError struct {
	Resource string
	Err      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s: %v", e.Resource, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// IdentityMatchError means a person's email resolved to zero or more than one
// directory identity. The run fails rather than dropping the person.
type IdentityMatchError struct {
	Email   string
	Matches int
}

func (e *IdentityMatchError) Error() string {
	return fmt.Sprintf("identity match for %s: want exactly 1, got %d", e.Email, e.Matches)
}

// SendFailure records one failed delivery within a batch.
type SendFailure struct {
	Target string
	Err    error
}

// DispatchError aggregates send failures after the whole batch has been attempted.
type DispatchError struct {
	Failures []SendFailure
}

func (e *DispatchError) Error() string {
	targets := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		targets = append(targets, f.Target)
	}
	return fmt.Sprintf("dispatch failed for %d recipient(s): %s", len(e.Failures), strings.Join(targets, ", "))
}
