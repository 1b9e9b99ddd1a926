// Bitmap-encoded RDATA (spec §4.3): NSEC and NSEC3 carry a sequence of
// (window:u8, bitmap-length:u8 in 1..=32, bitmap bytes) triples. The
// decoded type list is the set of RR type codes c such that bit (c & 0xFF)
// is set in window (c >> 8).
package rdata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/wire"
)

func decodeTypeBitmap(cur *wire.Cursor, length int) ([]uint16, error) {
	if length < 0 {
		return nil, dnserrors.At(dnserrors.ErrRdLengthMismatch, cur.Offset(), "type bitmap length")
	}
	end := cur.Offset() + length
	var types []uint16
	for cur.Offset() < end {
		window, err := cur.ReadUint8()
		if err != nil {
			return nil, err
		}
		bitmapLen, err := cur.ReadUint8()
		if err != nil {
			return nil, err
		}
		if bitmapLen < 1 || bitmapLen > 32 {
			return nil, dnserrors.At(dnserrors.ErrRdLengthMismatch, cur.Offset(), "nsec bitmap window length")
		}
		bitmap, err := cur.ReadBytes(int(bitmapLen))
		if err != nil {
			return nil, err
		}
		for i, b := range bitmap {
			for bit := 0; bit < 8; bit++ {
				if b&(0x80>>uint(bit)) != 0 {
					code := uint16(window)<<8 | uint16(i*8+bit)
					types = append(types, code)
				}
			}
		}
	}
	return types, nil
}

func encodeTypeBitmap(types []uint16) []byte {
	if len(types) == 0 {
		return nil
	}
	sorted := append([]uint16(nil), types...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	windows := map[uint8][]byte{}
	for _, t := range sorted {
		window := uint8(t >> 8)
		idx := uint8(t & 0xFF)
		buf := windows[window]
		needed := int(idx/8) + 1
		for len(buf) < needed {
			buf = append(buf, 0)
		}
		buf[idx/8] |= 0x80 >> (idx % 8)
		windows[window] = buf
	}

	var windowKeys []uint8
	for w := range windows {
		windowKeys = append(windowKeys, w)
	}
	sort.Slice(windowKeys, func(i, j int) bool { return windowKeys[i] < windowKeys[j] })

	w := wire.NewWriter()
	for _, win := range windowKeys {
		bitmap := windows[win]
		w.WriteUint8(win)
		w.WriteUint8(uint8(len(bitmap)))
		w.WriteBytes(bitmap)
	}
	return w.Bytes()
}

func typeListString(types []uint16) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = TypeName(t)
	}
	return strings.Join(names, " ")
}

// NSEC is an authenticated-denial-of-existence record (RFC 4034 §4).
type NSEC struct {
	NextDomain name.Name
	Types      []uint16
}

func (r *NSEC) Type() uint16 { return TypeNSEC }
func (r *NSEC) String() string {
	return fmt.Sprintf("%s %s", r.NextDomain.String(), typeListString(r.Types))
}
func (r *NSEC) Encode() []byte {
	w := wire.NewWriter()
	w.WriteBytes(r.NextDomain.Encode())
	w.WriteBytes(encodeTypeBitmap(r.Types))
	return w.Bytes()
}

func decodeNSEC(cur *wire.Cursor, rdLength int) (RData, error) {
	start := cur.Offset()
	next, err := readName(cur)
	if err != nil {
		return nil, err
	}
	types, err := decodeTypeBitmap(cur, rdLength-(cur.Offset()-start))
	if err != nil {
		return nil, err
	}
	return &NSEC{NextDomain: next, Types: types}, nil
}

// NSEC3 is a hashed authenticated-denial-of-existence record (RFC 5155 §3).
type NSEC3 struct {
	HashAlgorithm uint8
	Flags         uint8
	Iterations    uint16
	Salt          wire.Buffer
	NextHashed    wire.Buffer
	Types         []uint16
}

func (r *NSEC3) Type() uint16 { return TypeNSEC3 }
func (r *NSEC3) String() string {
	return fmt.Sprintf("%d %d %d %s %s %s", r.HashAlgorithm, r.Flags, r.Iterations,
		r.Salt.String(), r.NextHashed.String(), typeListString(r.Types))
}
func (r *NSEC3) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint8(r.HashAlgorithm)
	w.WriteUint8(r.Flags)
	w.WriteUint16(r.Iterations)
	w.WriteUint8(uint8(len(r.Salt)))
	w.WriteBytes(r.Salt)
	w.WriteUint8(uint8(len(r.NextHashed)))
	w.WriteBytes(r.NextHashed)
	w.WriteBytes(encodeTypeBitmap(r.Types))
	return w.Bytes()
}

func decodeNSEC3(cur *wire.Cursor, rdLength int) (RData, error) {
	start := cur.Offset()
	alg, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	flags, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	iterations, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	saltLen, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	salt, err := cur.ReadBuffer(int(saltLen))
	if err != nil {
		return nil, err
	}
	hashLen, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	nextHashed, err := cur.ReadBuffer(int(hashLen))
	if err != nil {
		return nil, err
	}
	types, err := decodeTypeBitmap(cur, rdLength-(cur.Offset()-start))
	if err != nil {
		return nil, err
	}
	return &NSEC3{HashAlgorithm: alg, Flags: flags, Iterations: iterations, Salt: salt,
		NextHashed: nextHashed, Types: types}, nil
}

// NSEC3PARAM conveys the NSEC3 hashing parameters for a zone (RFC 5155 §4).
type NSEC3PARAM struct {
	HashAlgorithm uint8
	Flags         uint8
	Iterations    uint16
	Salt          wire.Buffer
}

func (r *NSEC3PARAM) Type() uint16 { return TypeNSEC3PARAM }
func (r *NSEC3PARAM) String() string {
	return fmt.Sprintf("%d %d %d %s", r.HashAlgorithm, r.Flags, r.Iterations, r.Salt.String())
}
func (r *NSEC3PARAM) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint8(r.HashAlgorithm)
	w.WriteUint8(r.Flags)
	w.WriteUint16(r.Iterations)
	w.WriteUint8(uint8(len(r.Salt)))
	w.WriteBytes(r.Salt)
	return w.Bytes()
}

func decodeNSEC3PARAM(cur *wire.Cursor, rdLength int) (RData, error) {
	alg, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	flags, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	iterations, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	saltLen, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	salt, err := cur.ReadBuffer(int(saltLen))
	if err != nil {
		return nil, err
	}
	return &NSEC3PARAM{HashAlgorithm: alg, Flags: flags, Iterations: iterations, Salt: salt}, nil
}
