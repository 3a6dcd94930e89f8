package ai

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ThrottleError reports that a provider rejected a call for exceeding its
// allowed rate. RetryAfter carries the server-suggested delay when the
// rejection payload named one, zero otherwise.
type ThrottleError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ThrottleError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ThrottleError) Unwrap() error {
	return e.Err
}

// AsThrottle extracts a *ThrottleError from an error chain.
func AsThrottle(err error) (*ThrottleError, bool) {
	var te *ThrottleError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// retryDelayPattern matches the retryDelay hint some providers embed in
// their 429 payloads, e.g. 'retryDelay': '24s'.
var retryDelayPattern = regexp.MustCompile(`'retryDelay': '(\d+)s'`)

// ParseRetryDelay extracts a server-suggested retry delay from an error
// message. Returns zero when no delay is present.
func ParseRetryDelay(msg string) time.Duration {
	match := retryDelayPattern.FindStringSubmatch(msg)
	if match == nil {
		return 0
	}
	seconds, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// WrapThrottle classifies a provider error: rate-limit rejections become
// *ThrottleError with any embedded delay hint parsed out, everything else
// passes through unchanged.
func WrapThrottle(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "429") && !strings.Contains(strings.ToLower(msg), "rate limit") {
		return err
	}
	return &ThrottleError{
		RetryAfter: ParseRetryDelay(msg),
		Err:        err,
	}
}
