package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPermanent = errors.New("permanent")

func TestWithBackoff_Success(t *testing.T) {
	config := Config{MaxRetries: 3, BaseDelay: time.Millisecond}
	attempts := 0

	err := WithBackoff(context.Background(), config, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithBackoff_FailureAfterMaxRetries(t *testing.T) {
	config := Config{MaxRetries: 2, BaseDelay: time.Millisecond}
	attempts := 0
	persistent := errors.New("persistent error")

	err := WithBackoff(context.Background(), config, func(ctx context.Context) error {
		attempts++
		return persistent
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts) // MaxRetries + 1
	assert.ErrorIs(t, err, persistent)
	assert.Contains(t, err.Error(), "operation failed after 3 attempts")
}

func TestWithBackoff_NonRetryableError(t *testing.T) {
	config := Config{
		MaxRetries:  3,
		BaseDelay:   time.Millisecond,
		ShouldRetry: func(err error) bool { return !errors.Is(err, errPermanent) },
	}
	attempts := 0

	err := WithBackoff(context.Background(), config, func(ctx context.Context) error {
		attempts++
		return errPermanent
	})

	assert.ErrorIs(t, err, errPermanent)
	assert.Equal(t, 1, attempts)
}

func TestWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	config := Config{MaxRetries: 5, BaseDelay: time.Second}
	attempts := 0

	err := WithBackoff(ctx, config, func(ctx context.Context) error {
		attempts++
		cancel()
		return errors.New("temporary error")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestHTTPStatusRetryable(t *testing.T) {
	cases := map[int]bool{
		http.StatusOK:                  false,
		http.StatusBadRequest:          false,
		http.StatusNotFound:            false,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
	}
	for status, want := range cases {
		assert.Equal(t, want, HTTPStatusRetryable(status), "status %d", status)
	}
}
