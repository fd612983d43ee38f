package store

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// retryPolicy controls how Open retries a backend that is not yet reachable.
type retryPolicy struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int

	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration

	// MaxBackoff caps the delay.
	MaxBackoff time.Duration

	// JitterFraction randomizes each delay by ±fraction.
	JitterFraction float64
}

// connectRetry is the policy used for Postgres. A database container that is
// still starting refuses connections for a few seconds.
var connectRetry = retryPolicy{
	MaxAttempts:    4,
	InitialBackoff: 250 * time.Millisecond,
	MaxBackoff:     4 * time.Second,
	JitterFraction: 0.25,
}

// withRetry calls fn until it succeeds, returns a non-transient error, the
// attempts run out, or ctx is done.
func withRetry[T any](ctx context.Context, p retryPolicy, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := max(p.MaxAttempts, 1)

	var lastErr error
	for attempt := range attempts {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if ctx.Err() != nil || !isTransient(err) || attempt == attempts-1 {
			return zero, lastErr
		}

		zap.L().Warn("store: retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff(attempt, p))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}
	return zero, lastErr
}

func backoff(attempt int, p retryPolicy) time.Duration {
	delay := float64(p.InitialBackoff) * math.Pow(2, float64(attempt))
	if p.MaxBackoff > 0 && delay > float64(p.MaxBackoff) {
		delay = float64(p.MaxBackoff)
	}
	if p.JitterFraction > 0 {
		delay += (rand.Float64()*2 - 1) * delay * p.JitterFraction
	}
	return time.Duration(max(delay, 0))
}

// isTransient reports whether err looks like a backend that is temporarily
// unreachable rather than misconfigured.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection refused",
		"connection reset by peer",
		"the database system is starting up",
		"temporary failure in name resolution",
		"i/o timeout",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
