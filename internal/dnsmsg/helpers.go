package dnsmsg

import (
	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// readName decodes a (possibly compressed) name at the cursor's current
// offset against the whole in-flight message buffer, then advances the
// cursor past it. Mirrors internal/rdata's helper of the same shape.
func readName(cur *wire.Cursor) (name.Name, error) {
	n, next, err := name.Decode(cur.Bytes(), cur.Offset())
	if err != nil {
		return name.Name{}, err
	}
	cur.Seek(next)
	return n, nil
}
