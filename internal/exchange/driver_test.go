package exchange

import (
	"context"
	"testing"

	"github.com/dnsscience/dnsquery/internal/dnsmsg"
	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/rdata"
	"github.com/dnsscience/dnsquery/internal/transport"
)

// fakeTransport answers whatever handle says, ignoring the network.
type fakeTransport struct {
	mode   transport.Mode
	handle func(query []byte) ([]byte, error)
}

func (f *fakeTransport) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	return f.handle(query)
}
func (f *fakeTransport) Mode() transport.Mode          { return f.mode }
func (f *fakeTransport) UsesLeadingLength() bool        { return f.mode != transport.ModeUDP }
func (f *fakeTransport) Peer() string                   { return "fake" }

func echoAsResponse(t *testing.T, mutate func(*dnsmsg.Message)) func([]byte) ([]byte, error) {
	return func(query []byte) ([]byte, error) {
		msg, err := dnsmsg.Decode(query)
		if err != nil {
			t.Fatalf("decode query in fake transport: %v", err)
		}
		msg.Header.QR = true
		if mutate != nil {
			mutate(msg)
		}
		return msg.Encode(), nil
	}
}

func TestRunSuccessfulExchange(t *testing.T) {
	qname, _ := name.FromString("example.com.")
	query, err := BuildQuery(qname, rdata.TypeA, dnsmsg.ClassIN, Config{RecursionDesired: true})
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}

	ft := &fakeTransport{mode: transport.ModeUDP, handle: echoAsResponse(t, nil)}
	result, err := Run(context.Background(), ft, query, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Response.Header.ID != query.Header.ID {
		t.Fatalf("response ID mismatch")
	}
	if result.Retried {
		t.Fatal("should not have retried")
	}
}

func TestRunRejectsIDMismatch(t *testing.T) {
	qname, _ := name.FromString("example.com.")
	query, err := BuildQuery(qname, rdata.TypeA, dnsmsg.ClassIN, Config{})
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}

	ft := &fakeTransport{mode: transport.ModeUDP, handle: echoAsResponse(t, func(m *dnsmsg.Message) {
		m.Header.ID ^= 0xFFFF
	})}
	if _, err := Run(context.Background(), ft, query, nil); err == nil {
		t.Fatal("expected response mismatch error")
	}
}

func TestRunRetriesOverTCPOnTruncation(t *testing.T) {
	qname, _ := name.FromString("example.com.")
	query, err := BuildQuery(qname, rdata.TypeA, dnsmsg.ClassIN, Config{})
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}

	udp := &fakeTransport{mode: transport.ModeUDP, handle: echoAsResponse(t, func(m *dnsmsg.Message) {
		m.Header.TC = true
	})}
	tcp := &fakeTransport{mode: transport.ModeTCP, handle: echoAsResponse(t, nil)}

	result, err := Run(context.Background(), udp, query, tcp)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Retried {
		t.Fatal("expected Retried to be true")
	}
	if result.Transport != transport.ModeTCP {
		t.Fatalf("Transport = %v, want ModeTCP", result.Transport)
	}
}

func TestBuildQueryAttachesOPTForDNSSEC(t *testing.T) {
	qname, _ := name.FromString("example.com.")
	query, err := BuildQuery(qname, rdata.TypeA, dnsmsg.ClassIN, Config{DNSSEC: true})
	if err != nil {
		t.Fatalf("BuildQuery: %v", err)
	}
	if query.OPT == nil {
		t.Fatal("expected Message.OPT to be set")
	}
	if len(query.Additionals) != 0 {
		t.Fatalf("expected OPT to stay out of Additionals, got %+v", query.Additionals)
	}
	if !query.OPT.TTLFields().DO {
		t.Fatal("expected DO bit set")
	}
}
