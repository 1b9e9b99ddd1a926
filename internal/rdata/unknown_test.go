package rdata

import (
	"testing"

	"github.com/dnsscience/dnsquery/internal/wire"
)

func TestUnknownFallback(t *testing.T) {
	const madeUpType = 65280 // outside the catalogue
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	cur := wire.NewCursor(data)
	rd, err := Decode(madeUpType, cur, len(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	u, ok := rd.(*Unknown)
	if !ok {
		t.Fatalf("got %T, want *Unknown", rd)
	}
	if u.Type() != madeUpType {
		t.Fatalf("Type() = %d, want %d", u.Type(), madeUpType)
	}
	if got, want := u.String(), `\# 4 DEADBEEF`; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestUnknownRoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	rd := &Unknown{RType: 9999, Data: wire.Buffer(data)}
	if string(rd.Encode()) != string(data) {
		t.Fatalf("Encode mismatch")
	}
}
