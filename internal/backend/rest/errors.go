package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"taskgenie/internal/service"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string // server-provided message, when the body carried one
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}

// IsNotFound reports a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports a 401 or 403.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Is maps status codes onto the service sentinels, so callers can write
// errors.Is(err, service.ErrNotFound).
func (e *APIError) Is(target error) bool {
	switch target {
	case service.ErrNotFound:
		return e.IsNotFound()
	case service.ErrUnauthorized:
		return e.IsUnauthorized()
	}
	return false
}

// newAPIError builds an APIError from a response body, pulling "message" or
// "error" out of a JSON payload when present.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: strings.TrimSpace(string(body))}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	}
	if apiErr.Message == "" && apiErr.Body != "" && !strings.HasPrefix(apiErr.Body, "{") {
		apiErr.Message = apiErr.Body
	}
	return apiErr
}
