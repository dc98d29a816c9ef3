// Package printclient sends ZPL II data to a printer over a raw TCP socket
// (port 9100 by convention) and, for commands that provoke one, reads back a
// framed status response.
package printclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"zplforge/internal/trace"
)

const (
	stx byte = 0x02
	etx byte = 0x03

	// defaultMaxFrame bounds a single STX...ETX status response; real
	// printers never approach this, it exists to cap a misbehaving or
	// malicious peer.
	defaultMaxFrame = 64 * 1024
)

// Client holds connection parameters for a single printer endpoint. It does
// not keep a persistent connection: each Send dials fresh, matching how a
// print spooler treats a printer as unreliable and possibly shared.
type Client struct {
	Addr string // host:port, e.g. "192.168.1.50:9100"; a bare host dials port 9100

	DialTimeout  time.Duration
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	MaxFrame     int
}

// NewClient returns a Client with conservative default timeouts.
func NewClient(addr string) *Client {
	return &Client{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  3 * time.Second,
		MaxFrame:     defaultMaxFrame,
	}
}

// Send writes data to the printer and returns without waiting for a
// response. Use SendExpectResponse for commands like ~HS/~HI that provoke a
// framed status reply.
func (c *Client) Send(ctx context.Context, data []byte) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return c.write(ctx, conn, data)
}

// SendExpectResponse writes data, then reads one STX...ETX framed response.
func (c *Client) SendExpectResponse(ctx context.Context, data []byte) ([]byte, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := c.write(ctx, conn, data); err != nil {
		return nil, err
	}
	return c.readFrame(ctx, conn)
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	span := trace.Begin(tr, trace.ScopeStage, "dial", parent)
	defer func() { span.End(c.Addr) }()

	if c.Addr == "" {
		return nil, wrap(ErrInvalidAddress, "dial", errors.New("empty address"))
	}
	timeout := c.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	addr := c.Addr
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(strings.Trim(addr, "[]"), "9100")
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, wrap(ErrCancelled, "dial", ctx.Err())
		}
		return nil, classifyDialErr(err)
	}
	return conn, nil
}

func classifyDialErr(err error) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return wrap(ErrConnectionTimeout, "dial", err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return wrap(ErrNoAddressFound, "dial", err)
	}
	var addrErr *net.AddrError
	if errors.As(err, &addrErr) {
		return wrap(ErrInvalidAddress, "dial", err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		if isConnRefused(opErr) {
			return wrap(ErrConnectionRefused, "dial", err)
		}
	}
	return wrap(ErrConnectionFailed, "dial", err)
}

func (c *Client) write(ctx context.Context, conn net.Conn, data []byte) error {
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	span := trace.Begin(tr, trace.ScopeStage, "write", parent)
	defer func() { span.End(fmt.Sprintf("%d bytes", len(data))) }()

	timeout := c.WriteTimeout
	if timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return wrap(ErrWriteFailed, "set_write_deadline", err)
		}
	}
	if _, err := conn.Write(data); err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return wrap(ErrWriteFailed, "write", err)
		}
		return wrap(ErrWriteFailed, "write", err)
	}
	return nil
}

func (c *Client) readFrame(ctx context.Context, conn net.Conn) ([]byte, error) {
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	span := trace.Begin(tr, trace.ScopeStage, "read_frame", parent)
	defer func() { span.End("") }()

	timeout := c.ReadTimeout
	if timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, wrap(ErrReadTimeout, "set_read_deadline", err)
		}
	}
	maxFrame := c.MaxFrame
	if maxFrame <= 0 {
		maxFrame = defaultMaxFrame
	}

	r := bufio.NewReader(conn)
	if _, err := r.ReadBytes(stx); err != nil {
		return nil, classifyReadErr(err)
	}

	var frame []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return nil, classifyReadErr(err)
		}
		if b == etx {
			return frame, nil
		}
		frame = append(frame, b)
		if len(frame) > maxFrame {
			return nil, wrap(ErrFrameTooLarge, "read_frame", nil)
		}
	}
}

func classifyReadErr(err error) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return wrap(ErrReadTimeout, "read", err)
	}
	if errors.Is(err, net.ErrClosed) {
		return wrap(ErrConnectionClosed, "read", err)
	}
	return wrap(ErrMalformedFrame, "read", err)
}

func isConnRefused(opErr *net.OpError) bool {
	return opErr.Err != nil && (strings.Contains(opErr.Err.Error(), "connection refused") ||
		strings.Contains(opErr.Err.Error(), "actively refused"))
}
