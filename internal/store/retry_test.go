package store

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = retryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}

func TestWithRetry_SucceedsAfterTransient(t *testing.T) {
	calls := 0
	v, err := withRetry(context.Background(), fastRetry, "test", func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, eris.Wrap(syscall.ECONNREFUSED, "postgres: ping")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), fastRetry, "test", func(context.Context) (int, error) {
		calls++
		return 0, errors.New("password authentication failed")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), fastRetry, "test", func(context.Context) (int, error) {
		calls++
		return 0, errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	})
	require.Error(t, err)
	assert.Equal(t, fastRetry.MaxAttempts, calls)
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := withRetry(ctx, fastRetry, "test", func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, syscall.ECONNRESET
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestBackoff(t *testing.T) {
	p := retryPolicy{InitialBackoff: 100 * time.Millisecond, MaxBackoff: 300 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, backoff(0, p))
	assert.Equal(t, 200*time.Millisecond, backoff(1, p))
	assert.Equal(t, 300*time.Millisecond, backoff(5, p))

	p.JitterFraction = 0.5
	for range 20 {
		d := backoff(0, p)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{syscall.ECONNREFUSED, true},
		{fmt.Errorf("ping: %w", syscall.ECONNRESET), true},
		{errors.New("FATAL: the database system is starting up (SQLSTATE 57P03)"), true},
		{errors.New("read tcp: i/o timeout"), true},
		{errors.New("database \"samplesize\" does not exist"), false},
		{ErrNotFound, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isTransient(tt.err), "%v", tt.err)
	}
}
