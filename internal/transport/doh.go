package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

const dnsMessageContentType = "application/dns-message"

// DoHConfig configures a DNS-over-HTTPS transport (RFC 8484), POST mode
// only (spec's domain stack has no GET-query-parameter path to exercise).
type DoHConfig struct {
	URL       string // full request URL, e.g. "https://dns.example/dns-query"
	TLSConfig *tls.Config
	Timeout   time.Duration
}

// DoHTransport issues one HTTP POST per exchange carrying the DNS message
// as an opaque body, treating net/http and crypto/tls as the opaque
// transport layer the spec calls for (spec Non-goals: "TLS/HTTPS libraries
// themselves").
type DoHTransport struct {
	mu     sync.Mutex
	url    string
	client *http.Client
}

// NewDoHTransport builds a DoH transport from cfg.
func NewDoHTransport(cfg DoHConfig) (*DoHTransport, error) {
	if cfg.URL == "" {
		return nil, dnserrors.ErrBadEndpoint
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{TLSClientConfig: cfg.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: timeout}

	return &DoHTransport{url: cfg.URL, client: client}, nil
}

func (t *DoHTransport) Mode() Mode             { return ModeDoH }
func (t *DoHTransport) UsesLeadingLength() bool { return false }
func (t *DoHTransport) Peer() string            { return t.url }

func (t *DoHTransport) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	t.mu.Lock()
	url, client := t.url, t.client
	t.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", dnsMessageContentType)
	req.Header.Set("Accept", dnsMessageContentType)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("https post %s: %w", url, dnserrors.ErrConnect)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("https post %s: %w", url, &dnserrors.HTTPStatus{Code: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUDPMessageSize))
	if err != nil {
		return nil, fmt.Errorf("read https body: %w", err)
	}
	return body, nil
}
