package name

import (
	"errors"
	"testing"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

func TestRoundTrip(t *testing.T) {
	n, err := FromString("www.Example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wire := n.Encode()
	decoded, next, err := Decode(wire, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != len(wire) {
		t.Fatalf("next = %d, want %d", next, len(wire))
	}
	if !decoded.Equal(n) {
		t.Fatalf("decoded %v != encoded %v", decoded, n)
	}
	if got, want := decoded.String(), "www.Example.com."; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRootName(t *testing.T) {
	n, err := FromString(".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := n.Encode(), []byte{0}; string(got) != string(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got, want := n.String(), "."; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeWithPointer(t *testing.T) {
	// "a.example.com." at offset 0, then "b" pointing back at "example.com."
	msg := []byte{
		1, 'a', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0,
		1, 'b', 0xC0, 0x02, // pointer to offset 2 ("example.com.")
	}
	decoded, next, err := Decode(msg, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != len(msg) {
		t.Fatalf("next = %d, want %d", next, len(msg))
	}
	if got, want := decoded.String(), "b.example.com."; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeRejectsForwardPointer(t *testing.T) {
	msg := []byte{0xC0, 0x02, 0, 0}
	if _, _, err := Decode(msg, 0); err == nil {
		t.Fatal("expected bad pointer error")
	} else if !errors.Is(err, dnserrors.ErrBadPointer) {
		t.Fatalf("got %v, want ErrBadPointer", err)
	}
}

func TestDecodeRejectsPointerLoop(t *testing.T) {
	// Two labels pointing at each other, neither terminating — but since a
	// pointer must point strictly backwards, a same-length mutual loop is
	// impossible to construct; instead verify a long backward chain that
	// exceeds maxPointerHops is rejected.
	msg := make([]byte, 0, 600)
	// offset 0: root
	msg = append(msg, 0)
	// chain of 300 pointers, each one pointing to the previous 2-byte pointer
	prev := 0
	for i := 0; i < 300; i++ {
		next := len(msg)
		hi := byte(0xC0 | (prev >> 8))
		lo := byte(prev & 0xFF)
		msg = append(msg, hi, lo)
		prev = next
	}
	if _, _, err := Decode(msg, prev); err == nil {
		t.Fatal("expected pointer loop error")
	} else if !errors.Is(err, dnserrors.ErrPointerLoop) {
		t.Fatalf("got %v, want ErrPointerLoop", err)
	}
}

func TestFromStringRejectsLongLabel(t *testing.T) {
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := FromString(string(long) + ".com"); !errors.Is(err, dnserrors.ErrLabelTooLong) {
		t.Fatalf("got %v, want ErrLabelTooLong", err)
	}
}

func TestEqualCaseInsensitive(t *testing.T) {
	a, _ := FromString("Example.COM")
	b, _ := FromString("example.com")
	if !a.Equal(b) {
		t.Fatal("expected case-insensitive equality")
	}
}
