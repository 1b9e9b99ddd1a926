// Domain-name-bearing RDATA (spec §4.3 "domain name bearing" category):
// rd_length must exactly cover all fields including the embedded name(s).
package rdata

import (
	"fmt"

	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/wire"
)

type nameOnly struct {
	rtype uint16
	Name  name.Name
}

func (r *nameOnly) Type() uint16   { return r.rtype }
func (r *nameOnly) String() string { return r.Name.String() }
func (r *nameOnly) Encode() []byte { return r.Name.Encode() }

func decodeNameOnly(rtype uint16) decoder {
	return func(cur *wire.Cursor, rdLength int) (RData, error) {
		n, err := readName(cur)
		if err != nil {
			return nil, err
		}
		return &nameOnly{rtype: rtype, Name: n}, nil
	}
}

var (
	decodeNS    = decodeNameOnly(TypeNS)
	decodeCNAME = decodeNameOnly(TypeCNAME)
	decodePTR   = decodeNameOnly(TypePTR)
	decodeDNAME = decodeNameOnly(TypeDNAME)
)

// RP is a responsible-person record (RFC 1183 §2.2).
type RP struct {
	Mailbox  name.Name
	TXTDName name.Name
}

func (r *RP) Type() uint16   { return TypeRP }
func (r *RP) String() string { return fmt.Sprintf("%s %s", r.Mailbox.String(), r.TXTDName.String()) }
func (r *RP) Encode() []byte {
	w := wire.NewWriter()
	w.WriteBytes(r.Mailbox.Encode())
	w.WriteBytes(r.TXTDName.Encode())
	return w.Bytes()
}

func decodeRP(cur *wire.Cursor, rdLength int) (RData, error) {
	mbox, err := readName(cur)
	if err != nil {
		return nil, err
	}
	txt, err := readName(cur)
	if err != nil {
		return nil, err
	}
	return &RP{Mailbox: mbox, TXTDName: txt}, nil
}

// KX is a key-exchanger record (RFC 2230).
type KX struct {
	Preference uint16
	Exchanger  name.Name
}

func (r *KX) Type() uint16 { return TypeKX }
func (r *KX) String() string {
	return fmt.Sprintf("%d %s", r.Preference, r.Exchanger.String())
}
func (r *KX) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.Preference)
	w.WriteBytes(r.Exchanger.Encode())
	return w.Bytes()
}

func decodeKX(cur *wire.Cursor, rdLength int) (RData, error) {
	pref, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	ex, err := readName(cur)
	if err != nil {
		return nil, err
	}
	return &KX{Preference: pref, Exchanger: ex}, nil
}

// AFSDB is an AFS database location record (RFC 1183 §1).
type AFSDB struct {
	Subtype  uint16
	Hostname name.Name
}

func (r *AFSDB) Type() uint16 { return TypeAFSDB }
func (r *AFSDB) String() string {
	return fmt.Sprintf("%d %s", r.Subtype, r.Hostname.String())
}
func (r *AFSDB) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.Subtype)
	w.WriteBytes(r.Hostname.Encode())
	return w.Bytes()
}

func decodeAFSDB(cur *wire.Cursor, rdLength int) (RData, error) {
	subtype, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	host, err := readName(cur)
	if err != nil {
		return nil, err
	}
	return &AFSDB{Subtype: subtype, Hostname: host}, nil
}

// SRV is a service-location record (RFC 2782).
type SRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   name.Name
}

func (r *SRV) Type() uint16 { return TypeSRV }
func (r *SRV) String() string {
	return fmt.Sprintf("%d %d %d %s", r.Priority, r.Weight, r.Port, r.Target.String())
}
func (r *SRV) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.Priority)
	w.WriteUint16(r.Weight)
	w.WriteUint16(r.Port)
	w.WriteBytes(r.Target.Encode())
	return w.Bytes()
}

func decodeSRV(cur *wire.Cursor, rdLength int) (RData, error) {
	priority, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	weight, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	port, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	target, err := readName(cur)
	if err != nil {
		return nil, err
	}
	return &SRV{Priority: priority, Weight: weight, Port: port, Target: target}, nil
}

// NAPTR is a naming-authority-pointer record (RFC 3403).
type NAPTR struct {
	Order       uint16
	Preference  uint16
	Flags       string
	Services    string
	Regexp      string
	Replacement name.Name
}

func (r *NAPTR) Type() uint16 { return TypeNAPTR }
func (r *NAPTR) String() string {
	return fmt.Sprintf("%d %d %q %q %q %s", r.Order, r.Preference, r.Flags, r.Services, r.Regexp, r.Replacement.String())
}
func (r *NAPTR) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.Order)
	w.WriteUint16(r.Preference)
	writeCharString(w, r.Flags)
	writeCharString(w, r.Services)
	writeCharString(w, r.Regexp)
	w.WriteBytes(r.Replacement.Encode())
	return w.Bytes()
}

func decodeNAPTR(cur *wire.Cursor, rdLength int) (RData, error) {
	order, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	pref, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	flags, err := readCharString(cur)
	if err != nil {
		return nil, err
	}
	services, err := readCharString(cur)
	if err != nil {
		return nil, err
	}
	regexp, err := readCharString(cur)
	if err != nil {
		return nil, err
	}
	repl, err := readName(cur)
	if err != nil {
		return nil, err
	}
	return &NAPTR{Order: order, Preference: pref, Flags: flags, Services: services,
		Regexp: regexp, Replacement: repl}, nil
}
