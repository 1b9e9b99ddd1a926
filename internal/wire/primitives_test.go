package wire

import (
	"errors"
	"testing"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

func TestCursorReadUint16(t *testing.T) {
	c := NewCursor([]byte{0x12, 0x34})
	v, err := c.ReadUint16()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x1234 {
		t.Fatalf("got %#x, want 0x1234", v)
	}
	if c.Offset() != 2 {
		t.Fatalf("offset = %d, want 2", c.Offset())
	}
}

func TestCursorShortRead(t *testing.T) {
	c := NewCursor([]byte{0x01})
	if _, err := c.ReadUint32(); err == nil {
		t.Fatal("expected short read error")
	} else if !errors.Is(err, dnserrors.ErrShortRead) {
		t.Fatalf("got %v, want ErrShortRead", err)
	}
}

func TestBufferRoundTrip(t *testing.T) {
	c := NewCursor([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	buf, err := c.ReadBuffer(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "DEADBEEF" {
		t.Fatalf("got %s, want DEADBEEF", buf.String())
	}
}

func TestTimestampPresentation(t *testing.T) {
	ts := NewTimestamp(1893456000) // 2030-01-01T00:00:00Z
	if got, want := ts.String(), "20300101000000"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestWriterPatchUint16At(t *testing.T) {
	w := NewWriter()
	offset := w.Len()
	w.WriteUint16(0)
	w.WriteBytes([]byte{1, 2, 3})
	w.PatchUint16At(offset, 3)
	if got, want := w.Bytes(), []byte{0x00, 0x03, 1, 2, 3}; string(got) != string(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
