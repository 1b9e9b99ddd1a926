// OPT (RFC 6891 §6.1.2) is the EDNS0 pseudo-RR: its RDATA is a sequence of
// options, decoded and encoded by internal/edns. The UDP payload size lives
// in the RR's CLASS position and the extended-RCODE, version, and DO-bit
// fields in its TTL position, which internal/dnsmsg handles when
// assembling the enclosing RR.
package rdata

import (
	"strings"

	"github.com/dnsscience/dnsquery/internal/edns"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// OPT holds the decoded EDNS0 option list carried in an OPT record's RDATA.
type OPT struct {
	Options []edns.Option
}

func (r *OPT) Type() uint16 { return TypeOPT }

func (r *OPT) String() string {
	parts := make([]string, len(r.Options))
	for i, o := range r.Options {
		parts[i] = o.String()
	}
	return strings.Join(parts, " ")
}

func (r *OPT) Encode() []byte {
	return edns.Encode(r.Options)
}

func decodeOPT(cur *wire.Cursor, rdLength int) (RData, error) {
	start := cur.Offset()
	opts, err := edns.Decode(cur, start+rdLength)
	if err != nil {
		return nil, err
	}
	return &OPT{Options: opts}, nil
}
