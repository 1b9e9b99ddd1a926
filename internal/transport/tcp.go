package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

// TCPConfig configures a length-prefixed TCP transport (RFC 7766).
type TCPConfig struct {
	Endpoint     string // literal "host:port"/"ip:port", or "" for the OS resolver list
	IPPreference IPPreference
	Timeout      time.Duration
}

// TCPTransport sends a 2-byte-length-prefixed message and reads one framed
// reply. Used directly for TCP queries, and by the exchange driver to
// retry a UDP response that came back with TC=1 (spec §4.7).
type TCPTransport struct {
	mu         sync.Mutex
	candidates []Candidate
	peer       string
	timeout    time.Duration
}

// NewTCPTransport builds a TCP transport from cfg.
func NewTCPTransport(cfg TCPConfig) (*TCPTransport, error) {
	candidates, err := ResolveCandidates(context.Background(), cfg.Endpoint, 53, cfg.IPPreference)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &TCPTransport{candidates: candidates, timeout: timeout}, nil
}

func (t *TCPTransport) Mode() Mode             { return ModeTCP }
func (t *TCPTransport) UsesLeadingLength() bool { return true }

func (t *TCPTransport) Peer() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.peer != "" {
		return t.peer
	}
	if len(t.candidates) > 0 {
		return t.candidates[0].String()
	}
	return ""
}

func (t *TCPTransport) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	t.mu.Lock()
	candidates, timeout := t.candidates, t.timeout
	t.mu.Unlock()

	dialer := &net.Dialer{Timeout: timeout}
	conn, used, err := dialFirst(ctx, candidates, func(ctx context.Context, c Candidate) (net.Conn, error) {
		return dialer.DialContext(ctx, "tcp", c.String())
	})
	if err != nil {
		return nil, fmt.Errorf("dial tcp: %w", err)
	}
	defer conn.Close()

	t.mu.Lock()
	t.peer = used.String()
	t.mu.Unlock()

	if err := conn.SetDeadline(deadlineFor(ctx, timeout)); err != nil {
		return nil, err
	}

	return exchangeFramed(conn, query)
}

// exchangeFramed writes query with a 2-byte big-endian length prefix and
// reads one length-prefixed reply, the framing RFC 7766 (TCP) and RFC 7858
// (DoT) both use.
func exchangeFramed(conn net.Conn, query []byte) ([]byte, error) {
	if len(query) > maxUDPMessageSize {
		return nil, dnserrors.ErrBadEndpoint
	}
	frame := make([]byte, 2+len(query))
	frame[0] = byte(len(query) >> 8)
	frame[1] = byte(len(query))
	copy(frame[2:], query)

	if _, err := conn.Write(frame); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	var lengthBuf [2]byte
	if _, err := io.ReadFull(conn, lengthBuf[:]); err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("read length: %w", dnserrors.ErrTimedOut)
		}
		return nil, fmt.Errorf("read length: %w", dnserrors.ErrConnectionClosed)
	}
	replyLen := int(lengthBuf[0])<<8 | int(lengthBuf[1])

	reply := make([]byte, replyLen)
	if _, err := io.ReadFull(conn, reply); err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("read message: %w", dnserrors.ErrTimedOut)
		}
		return nil, fmt.Errorf("read message: %w", dnserrors.ErrConnectionClosed)
	}
	return reply, nil
}
