// Package wire implements the byte-order-aware fixed-width primitives that
// every other codec package builds on: big-endian integers, a
// length-delimited opaque Buffer, and an epoch-seconds Timestamp.
//
// Every decode method advances the cursor past the bytes it consumed (so
// the change in Offset is the consumed count) and fails with
// dnserrors.ErrShortRead when the input is exhausted before the schema is
// satisfied, matching the contract in spec §4.1.
package wire

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

// Cursor is a read-only view over a DNS message, tracking the current
// decode offset. Multiple cursors can share the same backing buffer. The
// name codec follows compression pointers on the raw slice from Bytes()
// and the caller then Seeks past the name.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor wraps buf for decoding starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Bytes returns the full backing buffer (used for compression-pointer
// resolution, which must be able to address the whole message).
func (c *Cursor) Bytes() []byte { return c.buf }

// Offset returns the current decode position.
func (c *Cursor) Offset() int { return c.off }

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(off int) { c.off = off }

// Remaining reports how many bytes are left to decode.
func (c *Cursor) Remaining() int { return len(c.buf) - c.off }

func (c *Cursor) need(n int) error {
	if c.off+n > len(c.buf) {
		return dnserrors.At(dnserrors.ErrShortRead, c.off, fmt.Sprintf("need %d bytes, have %d", n, c.Remaining()))
	}
	return nil
}

// ReadUint8 decodes a single byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.off]
	c.off++
	return v, nil
}

// ReadUint16 decodes a big-endian 16-bit integer.
func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.off : c.off+2])
	c.off += 2
	return v, nil
}

// ReadUint32 decodes a big-endian 32-bit integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.off : c.off+4])
	c.off += 4
	return v, nil
}

// ReadUint64 decodes a big-endian 64-bit integer.
func (c *Cursor) ReadUint64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(c.buf[c.off : c.off+8])
	c.off += 8
	return v, nil
}

// ReadBytes reads n raw bytes, returning an owned copy.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, dnserrors.At(dnserrors.ErrShortRead, c.off, "negative length")
	}
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.off:c.off+n])
	c.off += n
	return out, nil
}

// ReadBuffer reads a length-delimited opaque Buffer, per spec §4.1: the
// length is supplied externally (the surrounding RDATA's rd_length or an
// option's length), not self-encoded.
func (c *Cursor) ReadBuffer(n int) (Buffer, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return Buffer(b), nil
}

// ReadTimestamp decodes a u32 seconds-since-epoch value.
func (c *Cursor) ReadTimestamp() (Timestamp, error) {
	v, err := c.ReadUint32()
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{seconds: v}, nil
}

// Buffer is an owning opaque byte sequence whose length is always supplied
// by the caller rather than self-encoded.
type Buffer []byte

// String renders the buffer as uppercase hex, matching the presentation
// style RFC 3597 uses for unknown RDATA.
func (b Buffer) String() string {
	const hexDigits = "0123456789ABCDEF"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0F]
	}
	return string(out)
}

// Timestamp decodes a u32 as seconds since the Unix epoch and renders as
// YYYYMMDDHHMMSS UTC, matching the presentation format RRSIG/SIG use.
type Timestamp struct {
	seconds uint32
}

// NewTimestamp wraps a raw epoch-seconds value.
func NewTimestamp(seconds uint32) Timestamp { return Timestamp{seconds: seconds} }

// Seconds returns the raw epoch-seconds value.
func (t Timestamp) Seconds() uint32 { return t.seconds }

// Time returns the UTC time.Time equivalent.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t.seconds), 0).UTC()
}

func (t Timestamp) String() string {
	return t.Time().Format("20060102150405")
}

// Writer accumulates a DNS message being serialized. Unlike Cursor it has
// no concept of compression — spec §9 notes compression is a decode-only
// concern for this codec, since outbound queries carry a single QNAME.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated wire bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) { w.buf = append(w.buf, v) }

// WriteUint16 appends a big-endian 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteUint32 appends a big-endian 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteUint64 appends a big-endian 64-bit integer.
func (w *Writer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteBytes appends raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) { w.buf = append(w.buf, b...) }

// PatchUint16At overwrites a previously-written 16-bit field, used to
// back-patch rd_length once an RDATA's encoded size is known.
func (w *Writer) PatchUint16At(offset int, v uint16) {
	binary.BigEndian.PutUint16(w.buf[offset:offset+2], v)
}
