package printclient

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"zplforge/internal/trace"
)

// RetryPolicy configures exponential backoff with jitter for transient
// failures. A zero value means "never retry" (MaxAttempts 0).
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy makes up to three attempts on transient errors, with
// backoff doubling from 200ms up to 5 seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Multiplier:  2,
	}
}

// backoff returns the delay before retry attempt n (1-based), with up to
// 20% jitter applied to avoid synchronized retries against the same
// printer.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	mult := p.Multiplier
	if mult <= 1 {
		mult = 2
	}
	d := float64(p.BaseDelay)
	for i := 1; i < attempt; i++ {
		d *= mult
	}
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	jitter := 1 + (rand.Float64()*0.4 - 0.2) //nolint:gosec // timing jitter, not a security boundary
	return time.Duration(d * jitter)
}

// SendWithRetry sends data, retrying transient failures under policy.
// A permanent error or a cancelled context returns immediately.
func SendWithRetry(ctx context.Context, client *Client, data []byte, policy RetryPolicy) error {
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	var lastErr error
	attempts := policy.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return wrap(ErrCancelled, "send_with_retry", err)
		}

		attemptSpan := trace.Begin(tr, trace.ScopeStage, "retry_attempt", parent).
			WithExtra("attempt", strconv.Itoa(attempt))
		attemptCtx := trace.WithSpanContext(ctx, trace.SpanContext{SpanID: attemptSpan.ID()})
		err := client.Send(attemptCtx, data)
		if err == nil {
			attemptSpan.End("ok")
			return nil
		}
		attemptSpan.End(err.Error())
		lastErr = err

		var pcErr *Error
		if !errors.As(err, &pcErr) || !pcErr.Transient() {
			return err
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return wrap(ErrCancelled, "send_with_retry", ctx.Err())
		case <-time.After(policy.backoff(attempt)):
		}
	}
	return wrap(ErrRetriesExhausted, "send_with_retry", lastErr)
}
