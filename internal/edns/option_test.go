package edns

import (
	"errors"
	"net"
	"testing"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
	"github.com/dnsscience/dnsquery/internal/wire"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	opts := []Option{
		&ClientSubnet{Family: 1, SourcePrefixLen: 24, ScopePrefixLen: 0, Address: net.ParseIP("192.0.2.0")},
		&Cookie{Client: [8]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, 0x11, 0x22}},
		&Padding{Length: 8},
	}
	encoded := Encode(opts)

	cur := wire.NewCursor(encoded)
	decoded, err := Decode(cur, len(encoded))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("got %d options, want 3", len(decoded))
	}

	cs, ok := decoded[0].(*ClientSubnet)
	if !ok {
		t.Fatalf("option 0 is %T, want *ClientSubnet", decoded[0])
	}
	if cs.SourcePrefixLen != 24 {
		t.Fatalf("SourcePrefixLen = %d, want 24", cs.SourcePrefixLen)
	}

	ck, ok := decoded[1].(*Cookie)
	if !ok {
		t.Fatalf("option 1 is %T, want *Cookie", decoded[1])
	}
	if ck.Client != [8]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, 0x11, 0x22} {
		t.Fatalf("client cookie mismatch: %x", ck.Client)
	}

	pad, ok := decoded[2].(*Padding)
	if !ok {
		t.Fatalf("option 2 is %T, want *Padding", decoded[2])
	}
	if pad.Length != 8 {
		t.Fatalf("Length = %d, want 8", pad.Length)
	}
}

func TestDecodeTruncatedOption(t *testing.T) {
	// declares a 10-byte option but only supplies 2 data bytes.
	w := wire.NewWriter()
	w.WriteUint16(CodeNSID)
	w.WriteUint16(10)
	w.WriteBytes([]byte{0x01, 0x02})
	buf := w.Bytes()

	cur := wire.NewCursor(buf)
	_, err := Decode(cur, len(buf))
	if err == nil {
		t.Fatal("expected error for truncated option")
	}
	if !errors.Is(err, dnserrors.ErrTruncatedOpt) {
		t.Fatalf("expected ErrTruncatedOpt, got %v", err)
	}
}

func TestUnknownOptionFallback(t *testing.T) {
	const madeUpCode = 4000
	w := wire.NewWriter()
	w.WriteUint16(madeUpCode)
	w.WriteUint16(2)
	w.WriteBytes([]byte{0xAB, 0xCD})
	buf := w.Bytes()

	cur := wire.NewCursor(buf)
	opts, err := Decode(cur, len(buf))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(opts) != 1 {
		t.Fatalf("got %d options, want 1", len(opts))
	}
	if opts[0].Code() != madeUpCode {
		t.Fatalf("Code() = %d, want %d", opts[0].Code(), madeUpCode)
	}
	if _, ok := opts[0].(*UnknownOption); !ok {
		t.Fatalf("got %T, want *UnknownOption", opts[0])
	}
}
