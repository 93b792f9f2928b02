package assist

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoImage is returned when a generation response contained no usable
// image payload. This is a normal negative outcome, not a transport or
// provider failure.
var ErrNoImage = errors.New("no image returned")

// RateLimitError is returned when the provider reports a rate limit.
// Requests are never retried; the error exists so callers can word their
// messaging accordingly.
type RateLimitError struct {
	RetryAfter time.Duration
	Model      string
	Err        error // Underlying error from the provider
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: retry after %v", e.Model, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// IsRateLimitError checks if an error is a RateLimitError.
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}
