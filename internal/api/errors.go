package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// AuthRequiredError indicates a protected endpoint was invoked with no
// session token. The request is pre-empted client-side and never sent;
// callers resolve it by redirecting to login, not by retrying.
type AuthRequiredError struct {
	Endpoint string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("authentication required for %s", e.Endpoint)
}

// ValidationError reports malformed or missing input. It is raised
// locally before a request is sent, or built from the backend's
// field-level error payload on a 400 response. Never retried.
type ValidationError struct {
	// Fields maps field name to one or more messages, mirroring the
	// backend's registration error payload.
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], "; ")))
	}
	return strings.Join(parts, ", ")
}

// Message returns the first field message for display, e.g.
// "username: A user with that username already exists."
func (e *ValidationError) Message() string {
	return e.Error()
}

// fieldError builds a single-field ValidationError.
func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

// APIError reports a non-success status from the backend. The message is
// taken from the backend's {"error": "..."} payload when present.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Status)
}

// Retryable reports whether the failure is plausibly transient. Client
// errors other than rate limiting are not.
func (e *APIError) Retryable() bool {
	return e.Status == 429 || e.Status >= 500
}

// PayloadError indicates the backend returned a body that does not
// conform to the expected schema.
type PayloadError struct {
	Endpoint string
	Content  json.RawMessage
	Err      error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: malformed payload: %v", e.Endpoint, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }
