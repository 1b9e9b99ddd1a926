// Unknown represents any RR type this package has no dedicated decoder for,
// using the RFC 3597 generic presentation format ("\# LEN HEX").
package rdata

import (
	"fmt"

	"github.com/dnsscience/dnsquery/internal/wire"
)

// Unknown is the opaque fallback for RR types outside the catalogue.
type Unknown struct {
	RType uint16
	Data  wire.Buffer
}

func (r *Unknown) Type() uint16 { return r.RType }

func (r *Unknown) String() string {
	return fmt.Sprintf("\\# %d %s", len(r.Data), r.Data.String())
}

func (r *Unknown) Encode() []byte {
	return append([]byte(nil), r.Data...)
}

func decodeUnknown(rtype uint16, cur *wire.Cursor, rdLength int) (RData, error) {
	data, err := cur.ReadBuffer(rdLength)
	if err != nil {
		return nil, err
	}
	return &Unknown{RType: rtype, Data: data}, nil
}
