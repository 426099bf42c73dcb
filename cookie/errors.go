package cookie

import (
	"fmt"
	"net/http"
)

// kind is a sentinel error that can belong to a parent kind, so that
// errors.Is walks from the specific kind up to ErrCookie.
type kind struct {
	msg    string
	parent error
}

func (k *kind) Error() string {
	return k.msg
}

func (k *kind) Unwrap() error {
	return k.parent
}

// Error kinds returned by the Cookie client. Use errors.Is to test for them.
var (
	// ErrCookie is the base kind every client error matches
	ErrCookie error = &kind{msg: "cookie API error"}

	// ErrInvalidAPIKey indicates a missing key or one rejected by the API
	ErrInvalidAPIKey error = &kind{msg: "invalid API key", parent: ErrCookie}
	// ErrQuotaExceeded indicates the monthly usage cap of the key was reached
	ErrQuotaExceeded error = &kind{msg: "monthly quota exceeded", parent: ErrInvalidAPIKey}

	// ErrNoGuildAccess indicates the key is valid but has no access to the guild
	ErrNoGuildAccess error = &kind{msg: "you are not a member of this guild", parent: ErrCookie}

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound error = &kind{msg: "not found", parent: ErrCookie}
	// ErrUserNotFound indicates the user ID was not found
	ErrUserNotFound error = &kind{msg: "could not find the user ID", parent: ErrNotFound}
	// ErrGuildNotFound indicates the guild ID was not found
	ErrGuildNotFound error = &kind{msg: "could not find the guild ID", parent: ErrNotFound}
)

// APIError is returned for every non-200 response and for 200 responses
// whose body cannot be decoded.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
	Message    string

	kind error
}

func newAPIError(k error, resp *Response, message string) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		URL:        resp.URL,
		Body:       string(resp.Body),
		Message:    message,
		kind:       k,
	}
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.kind.Error()
	}
	if e.kind == ErrCookie {
		return fmt.Sprintf("cookie API error: status %d for %s: %s", e.StatusCode, e.URL, truncate(e.Body, 200))
	}
	return fmt.Sprintf("cookie API error: status %d: %s", e.StatusCode, msg)
}

// Unwrap returns the error kind, e.g. ErrUserNotFound
func (e *APIError) Unwrap() error {
	return e.kind
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication or
// authorization failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
