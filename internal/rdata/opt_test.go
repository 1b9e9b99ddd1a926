package rdata

import (
	"testing"

	"github.com/dnsscience/dnsquery/internal/edns"
	"github.com/dnsscience/dnsquery/internal/wire"
)

func TestOPTRoundTrip(t *testing.T) {
	opt := &OPT{Options: []edns.Option{
		&edns.NSID{Data: []byte("resolver-1")},
		&edns.Cookie{Client: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}},
	}}
	encoded := opt.Encode()
	cur := wire.NewCursor(encoded)
	decoded, err := decodeOPT(cur, len(encoded))
	if err != nil {
		t.Fatalf("decodeOPT: %v", err)
	}
	got := decoded.(*OPT)
	if len(got.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(got.Options))
	}
	if got.Options[0].Code() != edns.CodeNSID {
		t.Fatalf("option 0 code = %d, want NSID", got.Options[0].Code())
	}
	if got.Options[1].Code() != edns.CodeCookie {
		t.Fatalf("option 1 code = %d, want COOKIE", got.Options[1].Code())
	}
}

func TestOPTViaDispatch(t *testing.T) {
	opt := &OPT{Options: nil}
	encoded := opt.Encode()
	cur := wire.NewCursor(encoded)
	rd, err := Decode(TypeOPT, cur, len(encoded))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := rd.(*OPT); !ok {
		t.Fatalf("got %T, want *OPT", rd)
	}
}
