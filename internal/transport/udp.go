package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

// UDPConfig configures a plain-UDP transport (RFC 1035 §4.2.1).
type UDPConfig struct {
	Endpoint     string // literal "host:port"/"ip:port", or "" for the OS resolver list
	IPPreference IPPreference
	Timeout      time.Duration // per-exchange deadline
}

// UDPTransport sends one datagram and reads one reply. It carries no
// connection across calls: each Exchange dials, writes, reads, and closes.
type UDPTransport struct {
	mu         sync.Mutex
	candidates []Candidate
	peer       string // last candidate actually used, for diagnostics
	timeout    time.Duration
}

// NewUDPTransport builds a UDP transport from cfg, resolving cfg.Endpoint
// into its candidate list up front the same way the teacher's listener
// configs default their Address fields at construction time.
func NewUDPTransport(cfg UDPConfig) (*UDPTransport, error) {
	candidates, err := ResolveCandidates(context.Background(), cfg.Endpoint, 53, cfg.IPPreference)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &UDPTransport{candidates: candidates, timeout: timeout}, nil
}

func (t *UDPTransport) Mode() Mode             { return ModeUDP }
func (t *UDPTransport) UsesLeadingLength() bool { return false }

func (t *UDPTransport) Peer() string {
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

func (t *UDPTransport) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	t.mu.Lock()
	candidates, timeout := t.candidates, t.timeout
	t.mu.Unlock()

	dialer := &net.Dialer{Timeout: timeout}
	conn, used, err := dialFirst(ctx, candidates, func(ctx context.Context, c Candidate) (net.Conn, error) {
		return dialer.DialContext(ctx, "udp", c.String())
	})
	if err != nil {
		return nil, fmt.Errorf("dial udp: %w", err)
	}
	defer conn.Close()

	t.mu.Lock()
	t.peer = used.String()
	t.mu.Unlock()

	deadline := deadlineFor(ctx, timeout)
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	if _, err := conn.Write(query); err != nil {
		return nil, fmt.Errorf("write to %s: %w", used, err)
	}

	buf := make([]byte, maxUDPMessageSize)
	n, err := conn.Read(buf)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("read from %s: %w", used, dnserrors.ErrTimedOut)
		}
		return nil, fmt.Errorf("read from %s: %w", used, err)
	}
	return buf[:n], nil
}
