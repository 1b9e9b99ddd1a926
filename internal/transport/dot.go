package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

// DoTConfig configures a DNS-over-TLS transport (RFC 7858). Mirrors the
// TLS-config-or-defaults pattern the teacher's listener configs use,
// inverted for a client: if TLSConfig is nil, one is built from
// ServerName with a conservative minimum version.
type DoTConfig struct {
	Endpoint string // literal "host:853"/"ip:853", or "" for the OS resolver list
	// ServerName overrides the TLS SNI/certificate-verification name.
	// Left empty, it is derived from Endpoint's host and suppressed
	// entirely when that host is a literal IP (no hostname identity to
	// assert against a bare address).
	ServerName   string
	TLSConfig    *tls.Config // overrides ServerName-derived default when set
	IPPreference IPPreference
	Timeout      time.Duration
}

// DoTTransport dials a fresh TLS connection per exchange and frames
// messages the same way TCPTransport does (RFC 7858 §3.3 reuses the
// RFC 7766 TCP framing).
type DoTTransport struct {
	mu         sync.Mutex
	candidates []Candidate
	peer       string
	tlsConfig  *tls.Config
	timeout    time.Duration
}

// NewDoTTransport builds a DoT transport from cfg.
func NewDoTTransport(cfg DoTConfig) (*DoTTransport, error) {
	candidates, err := ResolveCandidates(context.Background(), cfg.Endpoint, 853, cfg.IPPreference)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	tlsConfig := cfg.TLSConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{
			ServerName: serverNameFor(cfg),
			MinVersion: tls.VersionTLS12,
		}
	} else {
		tlsConfig = tlsConfig.Clone()
	}

	return &DoTTransport{candidates: candidates, tlsConfig: tlsConfig, timeout: timeout}, nil
}

// serverNameFor derives the TLS SNI name: an explicit cfg.ServerName wins,
// otherwise it's the endpoint's host with the port stripped, suppressed
// (left empty) entirely when that host is a literal IP.
func serverNameFor(cfg DoTConfig) string {
	if cfg.ServerName != "" {
		return cfg.ServerName
	}
	if cfg.Endpoint == "" {
		return ""
	}
	host, _, err := splitEndpoint(cfg.Endpoint, 853)
	if err != nil || IsLiteralIP(host) {
		return ""
	}
	return host
}

func (t *DoTTransport) Mode() Mode             { return ModeDoT }
func (t *DoTTransport) UsesLeadingLength() bool { return true }

func (t *DoTTransport) Peer() string {
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

func (t *DoTTransport) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	t.mu.Lock()
	candidates, tlsConfig, timeout := t.candidates, t.tlsConfig, t.timeout
	t.mu.Unlock()

	dialer := &tls.Dialer{NetDialer: &net.Dialer{Timeout: timeout}, Config: tlsConfig}
	conn, used, err := dialFirst(ctx, candidates, func(ctx context.Context, c Candidate) (net.Conn, error) {
		return dialer.DialContext(ctx, "tcp", c.String())
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dnserrors.ErrTLSHandshake, err)
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
