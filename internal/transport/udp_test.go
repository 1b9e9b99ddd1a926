package transport

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

func errorsIsNoResolverAvailable(err error) bool {
	return errors.Is(err, dnserrors.ErrNoResolverAvailable)
}

func TestUDPTransportExchange(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	defer conn.Close()

	go func() {
		buf := make([]byte, 512)
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		reply := append([]byte{}, buf[:n]...)
		reply[2] |= 0x80 // set QR bit
		conn.WriteToUDP(reply, addr)
	}()

	tr, err := NewUDPTransport(UDPConfig{Endpoint: conn.LocalAddr().String(), Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewUDPTransport: %v", err)
	}
	if tr.Mode() != ModeUDP || tr.UsesLeadingLength() {
		t.Fatalf("unexpected transport shape: mode=%v leadingLength=%v", tr.Mode(), tr.UsesLeadingLength())
	}

	query := []byte{0x00, 0x01, 0x01, 0x00, 0, 1, 0, 0, 0, 0, 0, 0}
	reply, err := tr.Exchange(context.Background(), query)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if reply[2]&0x80 == 0 {
		t.Fatal("expected QR bit set in reply")
	}
}

func TestUDPTransportBadEndpoint(t *testing.T) {
	if _, err := NewUDPTransport(UDPConfig{Endpoint: "resolver.invalid:not-a-port"}); err == nil {
		t.Fatal("expected error for malformed port")
	}
}

func TestUDPTransportEmptyEndpointUsesSystemResolvers(t *testing.T) {
	// An empty Endpoint falls back to the OS resolver list rather than
	// erroring; whether construction succeeds depends on /etc/resolv.conf
	// being present in the test environment, so only assert it doesn't
	// panic and that a failure (if any) is ErrNoResolverAvailable-shaped,
	// not a bad-endpoint error.
	_, err := NewUDPTransport(UDPConfig{})
	if err != nil && !errorsIsNoResolverAvailable(err) {
		t.Fatalf("unexpected error for empty endpoint: %v", err)
	}
}
