package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewUserError("Unable to save file", cause)

	assert.Equal(t, "Unable to save file: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Unable to save file", UserMessage(err))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Equal(t, "only message", NewUserError("only message", nil).Error())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, "info", "json"))

	slog.Debug("hidden")
	LogDebug("also hidden", Fields{"n": 1})
	LogInfo("saved", Fields{"path": "/tmp/x.json"})
	LogError(errors.New("boom"), "failed", Fields{"step": "write"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"saved"`)
	assert.Contains(t, out, `"path":"/tmp/x.json"`)
	assert.Contains(t, out, `"error":"boom"`)

	buf.Reset()
	require.NoError(t, SetupLogger(&buf, "debug", "console"))
	LogDebug("activity", Fields{"event": "Cleared all transactions"})
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `event="Cleared all transactions"`)

	assert.Error(t, SetupLogger(&buf, "info", "xml"))
	assert.Error(t, SetupLogger(&buf, "nope", "json"))
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()
	opts := RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return errors.New("always")
		}, opts)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return &RetryableError{Err: errors.New("bad request"), Retryable: false}
		}, opts)
		assert.EqualError(t, err, "bad request")
		assert.Equal(t, 1, calls)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := WithRetry(cancelled, func() error {
			return errors.New("transient")
		}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("x")))
}
