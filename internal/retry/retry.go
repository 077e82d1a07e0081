// Package retry implements exponential backoff for transient HTTP failures.
package retry

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// Do executes fn until it succeeds, a non-retryable error occurs, the context
// is cancelled, or maxAttempts is exhausted. The backoff doubles after each
// failed attempt starting from initialBackoff; rate-limited attempts wait
// twice as long.
func Do(ctx context.Context, fn func() error, maxAttempts int, initialBackoff time.Duration) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) && !IsRateLimited(lastErr) {
			return lastErr
		}
		if attempt == maxAttempts {
			break
		}

		sleep := backoff
		if IsRateLimited(lastErr) {
			sleep = backoff * 2
		}
		select {
		case <-time.After(sleep):
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
	}

	return lastErr
}

// IsRetryable reports whether err is a transient failure worth another
// attempt: a network timeout, a connection-level error, or a 5xx response.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	msg := err.Error()
	for _, marker := range []string{
		"status 500", "status 502", "status 503", "status 504",
		"connection reset", "connection refused", "no such host", "i/o timeout",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsRateLimited reports whether err indicates HTTP 429.
func IsRateLimited(err error) bool {
	return err != nil && strings.Contains(err.Error(), "status 429")
}
