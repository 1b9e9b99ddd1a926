package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

func TestResolveCandidatesLiteralIP(t *testing.T) {
	candidates, err := ResolveCandidates(context.Background(), "192.0.2.1:53", 53, PreferAny)
	if err != nil {
		t.Fatalf("ResolveCandidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].String() != "192.0.2.1:53" {
		t.Fatalf("candidates = %+v, want one literal candidate", candidates)
	}
}

func TestResolveCandidatesDefaultsPort(t *testing.T) {
	candidates, err := ResolveCandidates(context.Background(), "192.0.2.1", 53, PreferAny)
	if err != nil {
		t.Fatalf("ResolveCandidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Port != 53 {
		t.Fatalf("candidates = %+v, want default port 53", candidates)
	}
}

func TestResolveCandidatesBareIPv6Literal(t *testing.T) {
	candidates, err := ResolveCandidates(context.Background(), "::1", 853, PreferAny)
	if err != nil {
		t.Fatalf("ResolveCandidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].IP.String() != "::1" || candidates[0].Port != 853 {
		t.Fatalf("candidates = %+v, want [::1]:853", candidates)
	}
}

func TestResolveCandidatesRejectsBadPort(t *testing.T) {
	if _, err := ResolveCandidates(context.Background(), "192.0.2.1:not-a-port", 53, PreferAny); err == nil {
		t.Fatal("expected error for malformed port")
	}
}

func TestOrderByPreference(t *testing.T) {
	ips := []net.IP{net.ParseIP("2001:db8::1"), net.ParseIP("192.0.2.1")}
	v4First := orderByPreference(ips, 53, PreferV4)
	if v4First[0].IP.To4() == nil {
		t.Fatalf("PreferV4 did not put an IPv4 candidate first: %+v", v4First)
	}
	v6First := orderByPreference(ips, 53, PreferV6)
	if v6First[0].IP.To4() != nil {
		t.Fatalf("PreferV6 did not put an IPv6 candidate first: %+v", v6First)
	}
}

func TestIsLiteralIP(t *testing.T) {
	if !IsLiteralIP("192.0.2.1") || !IsLiteralIP("::1") {
		t.Fatal("expected literal IPs to be recognized")
	}
	if IsLiteralIP("dns.example.") {
		t.Fatal("expected hostname to not be recognized as a literal IP")
	}
}

func TestDialFirstFallsThroughToNextCandidate(t *testing.T) {
	candidates := []Candidate{
		{IP: net.ParseIP("192.0.2.1"), Port: 53},
		{IP: net.ParseIP("192.0.2.2"), Port: 53},
	}
	var attempted []string
	conn, used, err := dialFirst(context.Background(), candidates, func(_ context.Context, c Candidate) (net.Conn, error) {
		attempted = append(attempted, c.String())
		if c.IP.String() == "192.0.2.1" {
			return nil, fmt.Errorf("simulated connect failure")
		}
		return &net.TCPConn{}, nil
	})
	if err != nil {
		t.Fatalf("dialFirst: %v", err)
	}
	if used.IP.String() != "192.0.2.2" {
		t.Fatalf("used = %+v, want second candidate", used)
	}
	if len(attempted) != 2 {
		t.Fatalf("attempted = %v, want both candidates tried", attempted)
	}
	_ = conn
}

func TestDialFirstExhaustsAllCandidates(t *testing.T) {
	candidates := []Candidate{{IP: net.ParseIP("192.0.2.1"), Port: 53}}
	_, _, err := dialFirst(context.Background(), candidates, func(_ context.Context, c Candidate) (net.Conn, error) {
		return nil, fmt.Errorf("simulated connect failure")
	})
	if err == nil {
		t.Fatal("expected error when every candidate fails")
	}
}

func TestDialFirstNoCandidates(t *testing.T) {
	_, _, err := dialFirst(context.Background(), nil, func(_ context.Context, c Candidate) (net.Conn, error) {
		return nil, nil
	})
	if !errors.Is(err, dnserrors.ErrNoResolverAvailable) {
		t.Fatalf("expected ErrNoResolverAvailable, got %v", err)
	}
}
