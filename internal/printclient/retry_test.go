package printclient

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func TestSendWithRetryRetriesTransientFailures(t *testing.T) {
	addr := echoServer(t, func(conn net.Conn) {
		buf := make([]byte, 1024)
		conn.Read(buf)
	})

	c := NewClient(addr)
	c.WriteTimeout = time.Millisecond // tight write deadline that may fire on some attempts
	policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2}

	// A write timeout is transient; retrying against the same live server
	// should eventually succeed once the deadline stops firing, or exhaust
	// attempts and report ErrRetriesExhausted -- either way it must not
	// surface the raw write-timeout error untouched.
	err := SendWithRetry(context.Background(), c, []byte("^XA^XZ"), policy)
	if err == nil {
		return
	}
	var pcErr *Error
	if !errors.As(err, &pcErr) {
		t.Fatalf("expected a *printclient.Error, got %T: %v", err, err)
	}
	if pcErr.Kind != ErrRetriesExhausted {
		t.Errorf("Kind = %v, want ErrRetriesExhausted after exhausting transient retries", pcErr.Kind)
	}
}

// TestSendWithRetryDoesNotRetryConnectionRefused pins the requirement that a
// refused connection propagates after exactly one attempt: it is a
// permanent classification, not a transient one, so SendWithRetry must
// return ErrConnectionRefused directly instead of burning the whole retry
// budget and reporting ErrRetriesExhausted.
func TestSendWithRetryDoesNotRetryConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close() // nothing is listening now

	c := NewClient(addr)
	c.DialTimeout = time.Second

	policy := RetryPolicy{MaxAttempts: 5, BaseDelay: 50 * time.Millisecond, MaxDelay: 200 * time.Millisecond, Multiplier: 2}

	start := time.Now()
	sendErr := SendWithRetry(context.Background(), c, []byte("^XA^XZ"), policy)
	elapsed := time.Since(start)

	if sendErr == nil {
		t.Fatalf("expected an error")
	}
	var pcErr *Error
	if !errors.As(sendErr, &pcErr) {
		t.Fatalf("expected a *printclient.Error, got %T: %v", sendErr, sendErr)
	}
	if pcErr.Kind != ErrConnectionRefused {
		t.Fatalf("Kind = %v, want ErrConnectionRefused (not RetriesExhausted)", pcErr.Kind)
	}
	if pcErr.Transient() {
		t.Errorf("ErrConnectionRefused must classify as permanent, not transient")
	}
	// With 5 attempts of backoff starting at 50ms, a retried send would take
	// well over 100ms; a single attempt returns almost immediately.
	if elapsed > 100*time.Millisecond {
		t.Errorf("SendWithRetry took %s, looks like it retried a permanent error", elapsed)
	}
}
