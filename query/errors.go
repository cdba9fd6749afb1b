package query

import (
	"errors"
	"fmt"
	"strings"
)

// Common builder errors
var (
	// ErrExclusiveFilters indicates more than one mutually exclusive filter was set
	ErrExclusiveFilters = errors.New("mutually exclusive filters")
	// ErrMissingTeamScope indicates a transaction type that requires a team id was used without one
	ErrMissingTeamScope = errors.New("team id required for transaction type")
	// ErrUnexpectedResponse indicates the response lacked the requested resource
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// UsageError reports an invalid builder call. It is returned before any
// request is made.
type UsageError struct {
	Method string
	Args   []string
	Err    error
}

// Error implements the error interface
func (e *UsageError) Error() string {
	return fmt.Sprintf("%s(%s): %v", e.Method, strings.Join(e.Args, ", "), e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}
