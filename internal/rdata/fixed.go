// Fixed-schema RDATA (spec §4.3 "fixed schema" category): the decoder reads
// a known sequence of fields and rd_length is validated to equal the bytes
// actually consumed (enforced centrally by rdata.Decode).
package rdata

import (
	"fmt"
	"net"

	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// A is an IPv4 address record (RFC 1035 §3.4.1).
type A struct{ Addr net.IP }

func (r *A) Type() uint16    { return TypeA }
func (r *A) String() string  { return r.Addr.String() }
func (r *A) Encode() []byte  { return r.Addr.To4() }

func decodeA(cur *wire.Cursor, rdLength int) (RData, error) {
	b, err := cur.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	return &A{Addr: net.IP(b)}, nil
}

// AAAA is an IPv6 address record (RFC 3596).
type AAAA struct{ Addr net.IP }

func (r *AAAA) Type() uint16   { return TypeAAAA }
func (r *AAAA) String() string { return r.Addr.String() }
func (r *AAAA) Encode() []byte { return r.Addr.To16() }

func decodeAAAA(cur *wire.Cursor, rdLength int) (RData, error) {
	b, err := cur.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	return &AAAA{Addr: net.IP(b)}, nil
}

// MX is a mail-exchange record (RFC 1035 §3.3.9).
type MX struct {
	Preference uint16
	Exchange   name.Name
}

func (r *MX) Type() uint16 { return TypeMX }
func (r *MX) String() string {
	return fmt.Sprintf("%d %s", r.Preference, r.Exchange.String())
}
func (r *MX) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.Preference)
	w.WriteBytes(r.Exchange.Encode())
	return w.Bytes()
}

func decodeMX(cur *wire.Cursor, rdLength int) (RData, error) {
	pref, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	ex, err := readName(cur)
	if err != nil {
		return nil, err
	}
	return &MX{Preference: pref, Exchange: ex}, nil
}

// SOA is the zone start-of-authority record (RFC 1035 §3.3.13).
type SOA struct {
	MName   name.Name
	RName   name.Name
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (r *SOA) Type() uint16 { return TypeSOA }
func (r *SOA) String() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d", r.MName.String(), r.RName.String(),
		r.Serial, r.Refresh, r.Retry, r.Expire, r.Minimum)
}
func (r *SOA) Encode() []byte {
	w := wire.NewWriter()
	w.WriteBytes(r.MName.Encode())
	w.WriteBytes(r.RName.Encode())
	w.WriteUint32(r.Serial)
	w.WriteUint32(r.Refresh)
	w.WriteUint32(r.Retry)
	w.WriteUint32(r.Expire)
	w.WriteUint32(r.Minimum)
	return w.Bytes()
}

// SerialGreaterThan compares SOA serials per RFC 1982 (mod-2^32 sequence
// space) rather than a plain unsigned comparison.
func SerialGreaterThan(a, b uint32) bool {
	diff := int32(a - b)
	return diff > 0
}

func decodeSOA(cur *wire.Cursor, rdLength int) (RData, error) {
	mname, err := readName(cur)
	if err != nil {
		return nil, err
	}
	rname, err := readName(cur)
	if err != nil {
		return nil, err
	}
	serial, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	refresh, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	retry, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	expire, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	minimum, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &SOA{MName: mname, RName: rname, Serial: serial, Refresh: refresh,
		Retry: retry, Expire: expire, Minimum: minimum}, nil
}

// HINFO is a host-information record (RFC 1035 §3.3.2): two
// length-prefixed character-strings.
type HINFO struct {
	CPU string
	OS  string
}

func (r *HINFO) Type() uint16   { return TypeHINFO }
func (r *HINFO) String() string { return fmt.Sprintf("%q %q", r.CPU, r.OS) }
func (r *HINFO) Encode() []byte {
	w := wire.NewWriter()
	writeCharString(w, r.CPU)
	writeCharString(w, r.OS)
	return w.Bytes()
}

func decodeHINFO(cur *wire.Cursor, rdLength int) (RData, error) {
	cpu, err := readCharString(cur)
	if err != nil {
		return nil, err
	}
	os, err := readCharString(cur)
	if err != nil {
		return nil, err
	}
	return &HINFO{CPU: cpu, OS: os}, nil
}

// LOC is a geographical location record (RFC 1876).
type LOC struct {
	Version    uint8
	Size       uint8
	HorizPre   uint8
	VertPre    uint8
	Latitude   uint32
	Longitude  uint32
	Altitude   uint32
}

func (r *LOC) Type() uint16 { return TypeLOC }

func (r *LOC) String() string {
	latDeg, latMin, latSec, latHemi := decodeLOCAngle(r.Latitude, true)
	lonDeg, lonMin, lonSec, lonHemi := decodeLOCAngle(r.Longitude, false)
	altMeters := (float64(r.Altitude) - 10000000) / 100.0
	return fmt.Sprintf("%d %d %.3f %s %d %d %.3f %s %.2fm %sm %sm %sm",
		latDeg, latMin, latSec, latHemi, lonDeg, lonMin, lonSec, lonHemi, altMeters,
		locPrecision(r.Size), locPrecision(r.HorizPre), locPrecision(r.VertPre))
}

func (r *LOC) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint8(r.Version)
	w.WriteUint8(r.Size)
	w.WriteUint8(r.HorizPre)
	w.WriteUint8(r.VertPre)
	w.WriteUint32(r.Latitude)
	w.WriteUint32(r.Longitude)
	w.WriteUint32(r.Altitude)
	return w.Bytes()
}

func decodeLOC(cur *wire.Cursor, rdLength int) (RData, error) {
	version, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	size, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	horiz, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	vert, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	lat, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	lon, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	alt, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &LOC{Version: version, Size: size, HorizPre: horiz, VertPre: vert,
		Latitude: lat, Longitude: lon, Altitude: alt}, nil
}

func decodeLOCAngle(v uint32, isLat bool) (deg, min int, sec float64, hemi string) {
	const equator = 1 << 31
	offset := int64(v) - equator
	positive := offset >= 0
	if offset < 0 {
		offset = -offset
	}
	totalMilliSec := offset
	deg = int(totalMilliSec / (3600 * 1000))
	rem := totalMilliSec % (3600 * 1000)
	min = int(rem / (60 * 1000))
	rem = rem % (60 * 1000)
	sec = float64(rem) / 1000.0
	if isLat {
		if positive {
			hemi = "N"
		} else {
			hemi = "S"
		}
	} else {
		if positive {
			hemi = "E"
		} else {
			hemi = "W"
		}
	}
	return
}

func locPrecision(exp uint8) string {
	base := exp >> 4
	power := exp & 0x0F
	val := float64(base)
	for i := uint8(0); i < power; i++ {
		val *= 10
	}
	return fmt.Sprintf("%.2f", val/100.0)
}

// EUI48 is a 48-bit extended unique identifier (RFC 7043).
type EUI48 struct{ Addr [6]byte }

func (r *EUI48) Type() uint16 { return TypeEUI48 }
func (r *EUI48) String() string {
	return fmt.Sprintf("%02x-%02x-%02x-%02x-%02x-%02x",
		r.Addr[0], r.Addr[1], r.Addr[2], r.Addr[3], r.Addr[4], r.Addr[5])
}
func (r *EUI48) Encode() []byte { return r.Addr[:] }

func decodeEUI48(cur *wire.Cursor, rdLength int) (RData, error) {
	b, err := cur.ReadBytes(6)
	if err != nil {
		return nil, err
	}
	var r EUI48
	copy(r.Addr[:], b)
	return &r, nil
}

// EUI64 is a 64-bit extended unique identifier (RFC 7043).
type EUI64 struct{ Addr [8]byte }

func (r *EUI64) Type() uint16 { return TypeEUI64 }
func (r *EUI64) String() string {
	return fmt.Sprintf("%02x-%02x-%02x-%02x-%02x-%02x-%02x-%02x",
		r.Addr[0], r.Addr[1], r.Addr[2], r.Addr[3], r.Addr[4], r.Addr[5], r.Addr[6], r.Addr[7])
}
func (r *EUI64) Encode() []byte { return r.Addr[:] }

func decodeEUI64(cur *wire.Cursor, rdLength int) (RData, error) {
	b, err := cur.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	var r EUI64
	copy(r.Addr[:], b)
	return &r, nil
}

func writeCharString(w *wire.Writer, s string) {
	w.WriteUint8(uint8(len(s)))
	w.WriteBytes([]byte(s))
}

func readCharString(cur *wire.Cursor) (string, error) {
	n, err := cur.ReadUint8()
	if err != nil {
		return "", err
	}
	b, err := cur.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
