package rest

import (
	"net/http"

	"github.com/google/uuid"
)

// headerTransport wraps an http.RoundTripper and injects the JSON and
// identification headers every backend call carries.
type headerTransport struct {
	Base      http.RoundTripper
	UserAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone request to avoid mutating the original
	clone := req.Clone(req.Context())

	clone.Header.Set("Content-Type", "application/json")
	clone.Header.Set("Accept", "application/json")
	if t.UserAgent != "" {
		clone.Header.Set("User-Agent", t.UserAgent)
	}
	if clone.Header.Get("X-Request-ID") == "" {
		clone.Header.Set("X-Request-ID", uuid.NewString())
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}
