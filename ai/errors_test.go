package ai

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRetryDelay(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want time.Duration
	}{
		{
			name: "delay present",
			msg:  "429 RESOURCE_EXHAUSTED: {'retryDelay': '24s'}",
			want: 24 * time.Second,
		},
		{
			name: "single digit",
			msg:  "error details 'retryDelay': '7s' end",
			want: 7 * time.Second,
		},
		{
			name: "no delay",
			msg:  "429 too many requests",
			want: 0,
		},
		{
			name: "empty message",
			msg:  "",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRetryDelay(tt.msg))
		})
	}
}

func TestWrapThrottle(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, WrapThrottle(nil))
	})

	t.Run("unrelated error passes through", func(t *testing.T) {
		cause := errors.New("connection refused")
		assert.Equal(t, cause, WrapThrottle(cause))
	})

	t.Run("429 becomes throttle error", func(t *testing.T) {
		cause := errors.New("API returned 429: {'retryDelay': '12s'}")
		err := WrapThrottle(cause)

		te, ok := AsThrottle(err)
		require.True(t, ok)
		assert.Equal(t, 12*time.Second, te.RetryAfter)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("rate limit wording becomes throttle error", func(t *testing.T) {
		err := WrapThrottle(errors.New("Rate limit exceeded, slow down"))

		te, ok := AsThrottle(err)
		require.True(t, ok)
		assert.Zero(t, te.RetryAfter)
	})

	t.Run("throttle survives wrapping", func(t *testing.T) {
		inner := WrapThrottle(errors.New("status 429"))
		wrapped := fmt.Errorf("lookup failed: %w", inner)

		_, ok := AsThrottle(wrapped)
		assert.True(t, ok)
	})
}
