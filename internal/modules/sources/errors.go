package sources

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Sentinel error kinds for provider failures. Adapters wrap these with
// %w so callers can classify without knowing provider internals.
var (
	// ErrRateLimited means the provider signaled throttling (HTTP 429).
	ErrRateLimited = errors.New("provider rate limited")
	// ErrAuth means the credential was rejected or missing (HTTP 401/403).
	ErrAuth = errors.New("provider authentication failed")
	// ErrUnavailable means the provider failed for a transient reason
	// (timeout, connection error, 5xx).
	ErrUnavailable = errors.New("provider unavailable")
)

// ClassifyStatus converts an HTTP status code into the matching
// sentinel error, wrapping the provider name and response detail.
func ClassifyStatus(provider string, status int, detail string) error {
	detail = strings.TrimSpace(detail)
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w: %s", provider, ErrRateLimited, detail)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s: %w: %s", provider, ErrAuth, detail)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w: status %d: %s", provider, ErrUnavailable, status, detail)
	default:
		return fmt.Errorf("%s: unexpected status %d: %s", provider, status, detail)
	}
}

// IsRateLimited reports whether err is a throttling failure.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsAuthError reports whether err is a credential failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuth)
}

// IsTransient reports whether a retry could plausibly succeed.
// Rate limiting, timeouts, connection failures and 5xx responses are
// transient; auth failures and everything else are not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAuth) {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
