package dnsmsg

import (
	"errors"
	"net"
	"testing"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
	"github.com/dnsscience/dnsquery/internal/edns"
	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/rdata"
)

func TestQueryRoundTrip(t *testing.T) {
	qname, err := name.FromString("example.com.")
	if err != nil {
		t.Fatalf("name: %v", err)
	}
	msg := &Message{
		Header: Header{ID: 0x1234, RD: true, Opcode: OpcodeQuery},
		Questions: []Question{
			{Name: qname, Type: rdata.TypeA, Class: ClassIN},
		},
	}
	encoded := msg.Encode()

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Header.ID != 0x1234 {
		t.Fatalf("ID = %x, want 0x1234", decoded.Header.ID)
	}
	if !decoded.Header.RD {
		t.Fatal("RD flag lost in round trip")
	}
	if len(decoded.Questions) != 1 || !decoded.Questions[0].Name.Equal(qname) {
		t.Fatalf("question mismatch: %+v", decoded.Questions)
	}
}

func TestResponseWithAnswerRoundTrip(t *testing.T) {
	qname, _ := name.FromString("example.com.")
	msg := &Message{
		Header: Header{ID: 7, QR: true, RA: true, Rcode: RcodeNoError},
		Questions: []Question{
			{Name: qname, Type: rdata.TypeA, Class: ClassIN},
		},
		Answers: []ResourceRecord{
			{Name: qname, Type: rdata.TypeA, Class: ClassIN, TTL: 300, RData: &rdata.A{Addr: net.ParseIP("192.0.2.1")}},
		},
	}
	encoded := msg.Encode()

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Answers) != 1 {
		t.Fatalf("got %d answers, want 1", len(decoded.Answers))
	}
	a, ok := decoded.Answers[0].RData.(*rdata.A)
	if !ok {
		t.Fatalf("answer rdata is %T, want *rdata.A", decoded.Answers[0].RData)
	}
	if a.Addr.String() != "192.0.2.1" {
		t.Fatalf("Addr = %s, want 192.0.2.1", a.Addr.String())
	}
}

func TestDecodeRejectsTrailingGarbage(t *testing.T) {
	qname, _ := name.FromString("example.com.")
	msg := &Message{
		Header:    Header{ID: 1},
		Questions: []Question{{Name: qname, Type: rdata.TypeA, Class: ClassIN}},
	}
	encoded := append(msg.Encode(), 0xFF, 0xFF)

	_, err := Decode(encoded)
	if !errors.Is(err, dnserrors.ErrTrailingGarbage) {
		t.Fatalf("expected ErrTrailingGarbage, got %v", err)
	}
}

func TestOPTPseudoRecordFields(t *testing.T) {
	msg := &Message{
		Header: Header{ID: 2},
		OPT: &ResourceRecord{
			Name:  name.Root,
			Type:  rdata.TypeOPT,
			Class: 4096, // advertised UDP payload size
			TTL:   edns.TTLFields{DO: true, Version: 0}.EncodeTTL(),
			RData: &rdata.OPT{Options: []edns.Option{&edns.Padding{Length: 4}}},
		},
	}
	encoded := msg.Encode()

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Additionals) != 0 {
		t.Fatalf("got %d additionals, want 0 (OPT must not stay in Additionals)", len(decoded.Additionals))
	}
	if decoded.OPT == nil {
		t.Fatal("expected decoded.OPT to be set")
	}
	opt := *decoded.OPT
	if !opt.IsOPT() {
		t.Fatal("expected IsOPT() true")
	}
	if opt.UDPSize() != 4096 {
		t.Fatalf("UDPSize() = %d, want 4096", opt.UDPSize())
	}
	if !opt.TTLFields().DO {
		t.Fatal("expected DO bit set")
	}
}

func TestDecodeRejectsMultipleOPT(t *testing.T) {
	msg := &Message{
		Header: Header{ID: 3},
		Additionals: []ResourceRecord{
			{Name: name.Root, Type: rdata.TypeOPT, Class: 512, RData: &rdata.OPT{}},
			{Name: name.Root, Type: rdata.TypeOPT, Class: 512, RData: &rdata.OPT{}},
		},
	}
	encoded := msg.Encode()

	if _, err := Decode(encoded); !errors.Is(err, dnserrors.ErrMultipleOPT) {
		t.Fatalf("expected ErrMultipleOPT, got %v", err)
	}
}
