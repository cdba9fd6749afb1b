package yahoo

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNoTokenSource indicates the client was created without credentials
	ErrNoTokenSource = errors.New("yahoo: token source is required")
	// ErrNoContent indicates a successful response without a fantasy_content payload
	ErrNoContent = errors.New("yahoo: response has no fantasy_content")
	// ErrTokenRefresh indicates the access token could not be refreshed
	ErrTokenRefresh = errors.New("yahoo: token refresh failed")
)

// APIError is returned for any response with a status other than 200.
type APIError struct {
	StatusCode int
	Body       string
	Path       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s: status %d: %s", e.Path, e.StatusCode, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if the service asked the client to slow down
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode == 999
}
