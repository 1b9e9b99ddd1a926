// Package dnsmsg assembles and disassembles complete DNS messages: the
// 12-byte header, question section, and the three RR sections, wiring
// together internal/name, internal/rdata, and internal/edns. RFC 1035 §4.1.
package dnsmsg

import (
	"github.com/dnsscience/dnsquery/internal/wire"
)

// Opcode values (RFC 1035 §4.1.1, RFC 6895).
const (
	OpcodeQuery  uint8 = 0
	OpcodeIQuery uint8 = 1
	OpcodeStatus uint8 = 2
	OpcodeNotify uint8 = 4
	OpcodeUpdate uint8 = 5
)

// Rcode values (RFC 1035 §4.1.1, RFC 6895). Extended rcodes above 15
// require EDNS0 and are not representable in the base header alone.
const (
	RcodeNoError  uint8 = 0
	RcodeFormErr  uint8 = 1
	RcodeServFail uint8 = 2
	RcodeNXDomain uint8 = 3
	RcodeNotImp   uint8 = 4
	RcodeRefused  uint8 = 5
)

const headerSize = 12

// Header is the fixed 12-byte DNS message header.
type Header struct {
	ID      uint16
	QR      bool
	Opcode  uint8
	AA      bool
	TC      bool
	RD      bool
	RA      bool
	Z       uint8 // reserved, must be zero on send
	Rcode   uint8
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

func (h Header) encode(w *wire.Writer) {
	w.WriteUint16(h.ID)

	var flags uint16
	if h.QR {
		flags |= 0x8000
	}
	flags |= uint16(h.Opcode&0x0F) << 11
	if h.AA {
		flags |= 0x0400
	}
	if h.TC {
		flags |= 0x0200
	}
	if h.RD {
		flags |= 0x0100
	}
	if h.RA {
		flags |= 0x0080
	}
	flags |= uint16(h.Z&0x07) << 4
	flags |= uint16(h.Rcode & 0x0F)
	w.WriteUint16(flags)

	w.WriteUint16(h.QDCount)
	w.WriteUint16(h.ANCount)
	w.WriteUint16(h.NSCount)
	w.WriteUint16(h.ARCount)
}

func decodeHeader(cur *wire.Cursor) (Header, error) {
	var h Header
	id, err := cur.ReadUint16()
	if err != nil {
		return h, err
	}
	flags, err := cur.ReadUint16()
	if err != nil {
		return h, err
	}
	qd, err := cur.ReadUint16()
	if err != nil {
		return h, err
	}
	an, err := cur.ReadUint16()
	if err != nil {
		return h, err
	}
	ns, err := cur.ReadUint16()
	if err != nil {
		return h, err
	}
	ar, err := cur.ReadUint16()
	if err != nil {
		return h, err
	}

	h.ID = id
	h.QR = flags&0x8000 != 0
	h.Opcode = uint8((flags >> 11) & 0x0F)
	h.AA = flags&0x0400 != 0
	h.TC = flags&0x0200 != 0
	h.RD = flags&0x0100 != 0
	h.RA = flags&0x0080 != 0
	h.Z = uint8((flags >> 4) & 0x07)
	h.Rcode = uint8(flags & 0x0F)
	h.QDCount = qd
	h.ANCount = an
	h.NSCount = ns
	h.ARCount = ar
	return h, nil
}
