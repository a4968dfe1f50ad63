package enrichment

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RateLimitError indicates an enrichment source returned HTTP 429. The
// fallback chain opens that source's circuit for RetryAfter.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Source     string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Source, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(source string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Source:     source,
	}
}

// ParseRetryAfterHeader parses a Retry-After header, either delta-seconds or
// an HTTP date, into seconds from now. Returns 0 if the value is empty,
// malformed or already in the past.
func ParseRetryAfterHeader(val string, now time.Time) int {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return max(secs, 0)
	}
	at, err := http.ParseTime(val)
	if err != nil {
		return 0
	}
	return max(int(at.Sub(now).Seconds()), 0)
}
