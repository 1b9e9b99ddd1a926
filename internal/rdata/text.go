// Self-delimited RDATA (spec §4.3): TXT's decoder reads character-strings
// until rd_length bytes are consumed, and must consume exactly rd_length.
package rdata

import (
	"strconv"
	"strings"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// TXT is a free-text record (RFC 1035 §3.3.14): one or more
// length-prefixed character-strings.
type TXT struct {
	Strings []string
}

func (r *TXT) Type() uint16 { return TypeTXT }
func (r *TXT) String() string {
	parts := make([]string, len(r.Strings))
	for i, s := range r.Strings {
		parts[i] = strconv.Quote(s)
	}
	return strings.Join(parts, " ")
}
func (r *TXT) Encode() []byte {
	w := wire.NewWriter()
	for _, s := range r.Strings {
		writeCharString(w, s)
	}
	return w.Bytes()
}

func decodeTXT(cur *wire.Cursor, rdLength int) (RData, error) {
	start := cur.Offset()
	end := start + rdLength
	var strs []string
	for cur.Offset() < end {
		s, err := readCharString(cur)
		if err != nil {
			return nil, err
		}
		strs = append(strs, s)
	}
	if cur.Offset() != end {
		return nil, dnserrors.At(dnserrors.ErrRdLengthMismatch, start, "txt character-strings overran rd_length")
	}
	return &TXT{Strings: strs}, nil
}
