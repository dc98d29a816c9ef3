package printclient

import (
	"context"
	"net"
	"testing"

	"zplforge/internal/trace"
)

func TestSendEmitsDialAndWriteSpans(t *testing.T) {
	addr := echoServer(t, func(conn net.Conn) {
		buf := make([]byte, 1024)
		conn.Read(buf)
	})

	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)

	c := NewClient(addr)
	if err := c.Send(ctx, []byte("^XA^XZ")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	names := make(map[string]bool)
	for _, ev := range ring.Snapshot() {
		names[ev.Name] = true
	}
	for _, want := range []string{"dial", "write"} {
		if !names[want] {
			t.Errorf("expected a %q span, got events %+v", want, ring.Snapshot())
		}
	}
}

func TestSendWithRetryEmitsRetryAttemptSpans(t *testing.T) {
	addr := echoServer(t, func(conn net.Conn) {
		buf := make([]byte, 1024)
		conn.Read(buf)
	})

	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	batchSpan := trace.Begin(ring, trace.ScopeDriver, "send_batch", 0)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: batchSpan.ID()})

	c := NewClient(addr)
	policy := RetryPolicy{MaxAttempts: 1, BaseDelay: 0, MaxDelay: 0, Multiplier: 2}
	if err := SendWithRetry(ctx, c, []byte("^XA^XZ"), policy); err != nil {
		t.Fatalf("SendWithRetry: %v", err)
	}
	batchSpan.End("")

	found := false
	for _, ev := range ring.Snapshot() {
		if ev.Name == "retry_attempt" {
			found = true
			if ev.ParentID != batchSpan.ID() {
				t.Errorf("retry_attempt span parent = %d, want %d (send_batch)", ev.ParentID, batchSpan.ID())
			}
		}
	}
	if !found {
		t.Fatalf("expected a retry_attempt span, got events %+v", ring.Snapshot())
	}
}
