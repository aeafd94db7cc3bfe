package apiclient

import (
	"math"
	"net/http"
	"time"
)

// RetryPolicy describes when and how the client retries a request. It is an
// immutable configuration value consumed by the request-dispatch loop: a
// request is retried when a connection-level failure occurs (any method), or
// when the response status is in RetryableStatuses and the request method is
// in RetryableMethods. Anything else is surfaced to the caller as-is.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt, so a
	// request makes at most MaxRetries+1 attempts.
	MaxRetries int

	// BackoffFactor is the multiplier, in seconds, for the exponential
	// backoff between retries.
	BackoffFactor float64

	RetryableStatuses map[int]bool
	RetryableMethods  map[string]bool
}

// DefaultRetryPolicy returns the policy used when none is supplied: 3
// retries with a 0.3 backoff factor, retrying the usual transient statuses
// for all verbs the client supports.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    DefaultMaxRetries,
		BackoffFactor: DefaultBackoffFactor,
		RetryableStatuses: map[int]bool{
			http.StatusTooManyRequests:     true,
			http.StatusInternalServerError: true,
			http.StatusBadGateway:          true,
			http.StatusServiceUnavailable:  true,
			http.StatusGatewayTimeout:      true,
		},
		RetryableMethods: map[string]bool{
			http.MethodHead:    true,
			http.MethodGet:     true,
			http.MethodOptions: true,
			http.MethodPost:    true,
			http.MethodPut:     true,
			http.MethodDelete:  true,
		},
	}
}

// ShouldRetryStatus reports whether a received response warrants a retry
// under this policy.
func (p RetryPolicy) ShouldRetryStatus(method string, statusCode int) bool {
	return p.RetryableStatuses[statusCode] && p.RetryableMethods[method]
}

// BackoffFor returns the wait before the given retry. Retries are numbered
// from 1, so the first retry waits BackoffFactor seconds, the second twice
// that, and so on.
func (p RetryPolicy) BackoffFor(retry int) time.Duration {
	if retry < 1 {
		return 0
	}
	seconds := p.BackoffFactor * math.Pow(2, float64(retry-1))
	return time.Duration(seconds * float64(time.Second))
}
