package rdata

import (
	"testing"

	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/wire"
)

func TestCAARoundTrip(t *testing.T) {
	rr := &CAA{Flags: 0, Tag: "issue", Value: "letsencrypt.org"}
	encoded := rr.Encode()
	cur := wire.NewCursor(encoded)
	decoded, err := decodeCAA(cur, len(encoded))
	if err != nil {
		t.Fatalf("decodeCAA: %v", err)
	}
	got := decoded.(*CAA)
	if got.Flags != rr.Flags || got.Tag != rr.Tag || got.Value != rr.Value {
		t.Fatalf("got %+v, want %+v", got, rr)
	}
}

func TestURIRoundTrip(t *testing.T) {
	rr := &URI{Priority: 10, Weight: 1, Target: "https://example.com/"}
	encoded := rr.Encode()
	cur := wire.NewCursor(encoded)
	decoded, err := decodeURI(cur, len(encoded))
	if err != nil {
		t.Fatalf("decodeURI: %v", err)
	}
	got := decoded.(*URI)
	if got.Priority != rr.Priority || got.Weight != rr.Weight || got.Target != rr.Target {
		t.Fatalf("got %+v, want %+v", got, rr)
	}
}

func TestTSIGTimeSigned48Bit(t *testing.T) {
	alg, err := name.FromString("hmac-sha256.")
	if err != nil {
		t.Fatalf("name: %v", err)
	}
	rr := &TSIG{
		Algorithm:  alg,
		TimeSigned: 0xFFFFFFFFFFFF, // max 48-bit value
		Fudge:      300,
		MAC:        wire.Buffer{0x01, 0x02},
		OriginalID: 42,
		Error:      0,
		Other:      wire.Buffer{},
	}
	encoded := rr.Encode()
	cur := wire.NewCursor(encoded)
	decoded, err := decodeTSIG(cur, len(encoded))
	if err != nil {
		t.Fatalf("decodeTSIG: %v", err)
	}
	got := decoded.(*TSIG)
	if got.TimeSigned != rr.TimeSigned {
		t.Fatalf("TimeSigned = %d, want %d", got.TimeSigned, rr.TimeSigned)
	}
	if got.Fudge != rr.Fudge || got.OriginalID != rr.OriginalID {
		t.Fatalf("got %+v, want %+v", got, rr)
	}
}
