package rdata

import (
	"fmt"

	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// CAA is a certification-authority-authorization record (RFC 8659).
type CAA struct {
	Flags uint8
	Tag   string
	Value string
}

func (r *CAA) Type() uint16 { return TypeCAA }
func (r *CAA) String() string {
	return fmt.Sprintf("%d %s %q", r.Flags, r.Tag, r.Value)
}
func (r *CAA) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint8(r.Flags)
	writeCharString(w, r.Tag)
	w.WriteBytes([]byte(r.Value))
	return w.Bytes()
}

func decodeCAA(cur *wire.Cursor, rdLength int) (RData, error) {
	start := cur.Offset()
	flags, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	tag, err := readCharString(cur)
	if err != nil {
		return nil, err
	}
	value, err := readRemainder(cur, rdLength, cur.Offset()-start)
	if err != nil {
		return nil, err
	}
	return &CAA{Flags: flags, Tag: tag, Value: string(value)}, nil
}

// URI carries a priority-weighted target URI (RFC 7553).
type URI struct {
	Priority uint16
	Weight   uint16
	Target   string
}

func (r *URI) Type() uint16 { return TypeURI }
func (r *URI) String() string {
	return fmt.Sprintf("%d %d %q", r.Priority, r.Weight, r.Target)
}
func (r *URI) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.Priority)
	w.WriteUint16(r.Weight)
	w.WriteBytes([]byte(r.Target))
	return w.Bytes()
}

func decodeURI(cur *wire.Cursor, rdLength int) (RData, error) {
	priority, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	weight, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	target, err := readRemainder(cur, rdLength, 4)
	if err != nil {
		return nil, err
	}
	return &URI{Priority: priority, Weight: weight, Target: string(target)}, nil
}

// TKEY is a transaction-key record (RFC 2930).
type TKEY struct {
	Algorithm  name.Name
	Inception  wire.Timestamp
	Expiration wire.Timestamp
	Mode       uint16
	Error      uint16
	Key        wire.Buffer
	Other      wire.Buffer
}

func (r *TKEY) Type() uint16 { return TypeTKEY }
func (r *TKEY) String() string {
	return fmt.Sprintf("%s %s %s %d %d %s %s", r.Algorithm.String(), r.Inception.String(),
		r.Expiration.String(), r.Mode, r.Error, r.Key.String(), r.Other.String())
}
func (r *TKEY) Encode() []byte {
	w := wire.NewWriter()
	w.WriteBytes(r.Algorithm.Encode())
	w.WriteUint32(r.Inception.Seconds())
	w.WriteUint32(r.Expiration.Seconds())
	w.WriteUint16(r.Mode)
	w.WriteUint16(r.Error)
	w.WriteUint16(uint16(len(r.Key)))
	w.WriteBytes(r.Key)
	w.WriteUint16(uint16(len(r.Other)))
	w.WriteBytes(r.Other)
	return w.Bytes()
}

func decodeTKEY(cur *wire.Cursor, rdLength int) (RData, error) {
	alg, err := readName(cur)
	if err != nil {
		return nil, err
	}
	inception, err := cur.ReadTimestamp()
	if err != nil {
		return nil, err
	}
	expiration, err := cur.ReadTimestamp()
	if err != nil {
		return nil, err
	}
	mode, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	errCode, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	keySize, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	key, err := cur.ReadBuffer(int(keySize))
	if err != nil {
		return nil, err
	}
	otherLen, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	other, err := cur.ReadBuffer(int(otherLen))
	if err != nil {
		return nil, err
	}
	return &TKEY{Algorithm: alg, Inception: inception, Expiration: expiration, Mode: mode,
		Error: errCode, Key: key, Other: other}, nil
}

// TSIG is a transaction-signature record (RFC 8945).
type TSIG struct {
	Algorithm  name.Name
	TimeSigned uint64 // 48-bit
	Fudge      uint16
	MAC        wire.Buffer
	OriginalID uint16
	Error      uint16
	Other      wire.Buffer
}

func (r *TSIG) Type() uint16 { return TypeTSIG }
func (r *TSIG) String() string {
	return fmt.Sprintf("%s %d %d %s %d %d %s", r.Algorithm.String(), r.TimeSigned, r.Fudge,
		r.MAC.String(), r.OriginalID, r.Error, r.Other.String())
}
func (r *TSIG) Encode() []byte {
	w := wire.NewWriter()
	w.WriteBytes(r.Algorithm.Encode())
	var tsBuf [6]byte
	tsBuf[0] = byte(r.TimeSigned >> 40)
	tsBuf[1] = byte(r.TimeSigned >> 32)
	tsBuf[2] = byte(r.TimeSigned >> 24)
	tsBuf[3] = byte(r.TimeSigned >> 16)
	tsBuf[4] = byte(r.TimeSigned >> 8)
	tsBuf[5] = byte(r.TimeSigned)
	w.WriteBytes(tsBuf[:])
	w.WriteUint16(r.Fudge)
	w.WriteUint16(uint16(len(r.MAC)))
	w.WriteBytes(r.MAC)
	w.WriteUint16(r.OriginalID)
	w.WriteUint16(r.Error)
	w.WriteUint16(uint16(len(r.Other)))
	w.WriteBytes(r.Other)
	return w.Bytes()
}

func decodeTSIG(cur *wire.Cursor, rdLength int) (RData, error) {
	alg, err := readName(cur)
	if err != nil {
		return nil, err
	}
	tsBytes, err := cur.ReadBytes(6)
	if err != nil {
		return nil, err
	}
	var timeSigned uint64
	for _, b := range tsBytes {
		timeSigned = timeSigned<<8 | uint64(b)
	}
	fudge, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	macSize, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	mac, err := cur.ReadBuffer(int(macSize))
	if err != nil {
		return nil, err
	}
	origID, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	errCode, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	otherLen, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	other, err := cur.ReadBuffer(int(otherLen))
	if err != nil {
		return nil, err
	}
	if other == nil {
		other = wire.Buffer{}
	}
	return &TSIG{Algorithm: alg, TimeSigned: timeSigned, Fudge: fudge, MAC: mac,
		OriginalID: origID, Error: errCode, Other: other}, nil
}
