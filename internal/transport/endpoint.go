// Package transport implements the four client transports a resolver can
// be queried over (spec §5): plain UDP, length-prefixed TCP, DNS-over-TLS
// (RFC 7858), and DNS-over-HTTPS (RFC 8484). Every transport is a single
// blocking dial-send-receive round trip; none runs a background worker.
package transport

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

// Mode identifies which wire transport a Transport value implements.
type Mode int

const (
	ModeUDP Mode = iota
	ModeTCP
	ModeDoT
	ModeDoH
)

func (m Mode) String() string {
	switch m {
	case ModeUDP:
		return "udp"
	case ModeTCP:
		return "tcp"
	case ModeDoT:
		return "tls"
	case ModeDoH:
		return "https"
	default:
		return "unknown"
	}
}

// Transport sends one encoded DNS message and returns the raw reply bytes.
// Implementations dial fresh per Exchange call; none pool or background a
// connection (spec §5).
type Transport interface {
	// Exchange sends query and returns the reply's raw wire bytes.
	Exchange(ctx context.Context, query []byte) ([]byte, error)
	// Mode reports which wire transport this value implements.
	Mode() Mode
	// UsesLeadingLength reports whether the wire framing for this
	// transport prepends a 2-byte length (true for TCP and DoT).
	UsesLeadingLength() bool
	// Peer returns the address or URL this transport targets, for
	// diagnostics and the exchange driver's result reporting.
	Peer() string
}

// Defaults shared across transports, matching the 5-second default the
// teacher's listener configs used for accept/request timeouts.
const DefaultTimeout = 5 * time.Second

const maxUDPMessageSize = 65535

// IPPreference selects which address family endpoint resolution prefers
// when a hostname (or the OS resolver list) yields both A and AAAA
// candidates.
type IPPreference int

const (
	PreferAny IPPreference = iota
	PreferV4
	PreferV6
)

// Candidate is one resolved address a transport may attempt to dial, in
// the order endpoint resolution produced it.
type Candidate struct {
	IP   net.IP
	Port int
}

func (c Candidate) String() string {
	return net.JoinHostPort(c.IP.String(), strconv.Itoa(c.Port))
}

// IsLiteralIP reports whether host is an IP literal rather than a hostname
// needing resolution. DoT uses this to suppress SNI: there is no hostname
// identity to assert against a bare IP address.
func IsLiteralIP(host string) bool { return net.ParseIP(host) != nil }

// splitEndpoint separates endpoint into host and port, applying
// defaultPort when none was supplied. A bare IPv6 literal or a bare
// hostname both land here, since net.SplitHostPort rejects them (too many
// colons, or no colon at all) rather than treating them as portless.
func splitEndpoint(endpoint string, defaultPort int) (string, int, error) {
	if endpoint == "" {
		return "", 0, dnserrors.ErrBadEndpoint
	}
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return endpoint, defaultPort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, dnserrors.ErrBadEndpoint
	}
	return host, port, nil
}

// ResolveCandidates expands endpoint into an ordered list of dialable
// candidates, per spec.md's endpoint-resolution requirement: "accepts
// either a literal host:port or ip:port, or a list of IP addresses
// obtained from the OS; each candidate is tried in list order until one
// connects or all are exhausted." A literal IP endpoint resolves to
// itself; a hostname resolves through the OS resolver via
// net.DefaultResolver; an empty endpoint falls back to the OS resolver
// list (UDP/TCP/DoT's "no @resolver given" case). Callers are responsible
// for the connect-and-fall-through iteration; this only orders the list.
func ResolveCandidates(ctx context.Context, endpoint string, defaultPort int, pref IPPreference) ([]Candidate, error) {
	if endpoint == "" {
		return systemResolverCandidates(defaultPort, pref)
	}

	host, port, err := splitEndpoint(endpoint, defaultPort)
	if err != nil {
		return nil, err
	}

	if ip := net.ParseIP(host); ip != nil {
		return []Candidate{{IP: ip, Port: port}}, nil
	}

	ips, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", host, err)
	}
	if len(ips) == 0 {
		return nil, dnserrors.ErrNoResolverAvailable
	}
	return orderByPreference(ips, port, pref), nil
}

func orderByPreference(ips []net.IP, port int, pref IPPreference) []Candidate {
	var v4, v6 []Candidate
	for _, ip := range ips {
		c := Candidate{IP: ip, Port: port}
		if ip.To4() != nil {
			v4 = append(v4, c)
		} else {
			v6 = append(v6, c)
		}
	}
	switch pref {
	case PreferV4:
		return append(v4, v6...)
	case PreferV6:
		return append(v6, v4...)
	default:
		all := make([]Candidate, 0, len(v4)+len(v6))
		for _, ip := range ips {
			all = append(all, Candidate{IP: ip, Port: port})
		}
		return all
	}
}

// systemResolverCandidates reads nameserver entries out of
// /etc/resolv.conf, the OS resolver list a plain lookup would otherwise
// use, for when the caller supplies no explicit endpoint.
func systemResolverCandidates(defaultPort int, pref IPPreference) ([]Candidate, error) {
	f, err := os.Open("/etc/resolv.conf")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dnserrors.ErrNoResolverAvailable, err)
	}
	defer f.Close()

	var ips []net.IP
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "nameserver" {
			if ip := net.ParseIP(fields[1]); ip != nil {
				ips = append(ips, ip)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ips) == 0 {
		return nil, dnserrors.ErrNoResolverAvailable
	}
	return orderByPreference(ips, defaultPort, pref), nil
}
