package rdata

import (
	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// readName decodes a domain name at the cursor's current position
// (following compression pointers against the full message) and advances
// the cursor past it.
func readName(cur *wire.Cursor) (name.Name, error) {
	n, next, err := name.Decode(cur.Bytes(), cur.Offset())
	if err != nil {
		return name.Name{}, err
	}
	cur.Seek(next)
	return n, nil
}
