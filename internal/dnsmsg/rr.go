package dnsmsg

import (
	"fmt"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
	"github.com/dnsscience/dnsquery/internal/edns"
	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/rdata"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// ResourceRecord is one entry of an answer/authority/additional section.
//
// For an OPT record (spec §3), CLASS and TTL are hijacked to carry the
// requestor's UDP payload size and the extended-RCODE/version/DO-bit
// fields instead of their ordinary meaning; TTLFields and UDPSize expose
// that reinterpretation so callers never have to mask the raw uint32
// themselves.
type ResourceRecord struct {
	Name  name.Name
	Type  uint16
	Class uint16
	TTL   uint32
	RData rdata.RData
}

// IsOPT reports whether this record is the EDNS0 pseudo-RR.
func (rr ResourceRecord) IsOPT() bool { return rr.Type == rdata.TypeOPT }

// UDPSize returns the requestor's advertised UDP payload size, valid only
// when IsOPT is true.
func (rr ResourceRecord) UDPSize() uint16 { return rr.Class }

// TTLFields decomposes the OPT pseudo-header carried in TTL, valid only
// when IsOPT is true.
func (rr ResourceRecord) TTLFields() edns.TTLFields { return edns.DecodeTTL(rr.TTL) }

// Options returns the EDNS0 option list, valid only when IsOPT is true.
func (rr ResourceRecord) Options() []edns.Option {
	opt, ok := rr.RData.(*rdata.OPT)
	if !ok {
		return nil
	}
	return opt.Options
}

func (rr ResourceRecord) String() string {
	if rr.IsOPT() {
		f := rr.TTLFields()
		return fmt.Sprintf(";OPT\tudpsize=%d version=%d do=%t %s",
			rr.UDPSize(), f.Version, f.DO, rr.RData.String())
	}
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s", rr.Name.String(), rr.TTL,
		className(rr.Class), rdata.TypeName(rr.Type), rr.RData.String())
}

func (rr ResourceRecord) encode(w *wire.Writer) {
	w.WriteBytes(rr.Name.Encode())
	w.WriteUint16(rr.Type)
	w.WriteUint16(rr.Class)
	w.WriteUint32(rr.TTL)

	lengthOffset := w.Len()
	w.WriteUint16(0) // placeholder, patched below
	before := w.Len()
	w.WriteBytes(rr.RData.Encode())
	rdLength := w.Len() - before
	w.PatchUint16At(lengthOffset, uint16(rdLength))
}

func decodeResourceRecord(cur *wire.Cursor) (ResourceRecord, error) {
	var rr ResourceRecord
	n, err := readName(cur)
	if err != nil {
		return rr, err
	}
	rtype, err := cur.ReadUint16()
	if err != nil {
		return rr, err
	}
	class, err := cur.ReadUint16()
	if err != nil {
		return rr, err
	}
	ttl, err := cur.ReadUint32()
	if err != nil {
		return rr, err
	}
	rdLength, err := cur.ReadUint16()
	if err != nil {
		return rr, err
	}

	start := cur.Offset()
	rd, err := rdata.Decode(rtype, cur, int(rdLength))
	if err != nil {
		return rr, fmt.Errorf("rdata for %s: %w", rdata.TypeName(rtype), err)
	}
	if consumed := cur.Offset() - start; consumed != int(rdLength) {
		return rr, dnserrors.At(dnserrors.ErrRdLengthMismatch, start, "resource record rdata length mismatch")
	}

	rr.Name = n
	rr.Type = rtype
	rr.Class = class
	rr.TTL = ttl
	rr.RData = rd
	return rr, nil
}
