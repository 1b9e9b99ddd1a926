// SVCB and HTTPS (RFC 9460) share a wire shape: priority, target name, and
// a list of SvcParamKey/value pairs filling the remainder of rd_length.
package rdata

import (
	"fmt"
	"strings"

	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// SvcParam is one key/value pair of an SVCB or HTTPS record.
type SvcParam struct {
	Key   uint16
	Value wire.Buffer
}

type svcb struct {
	rtype    uint16
	Priority uint16
	Target   name.Name
	Params   []SvcParam
}

func (r *svcb) Type() uint16 { return r.rtype }
func (r *svcb) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s", r.Priority, r.Target.String())
	for _, p := range r.Params {
		fmt.Fprintf(&b, " key%d=%s", p.Key, p.Value.String())
	}
	return b.String()
}
func (r *svcb) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.Priority)
	w.WriteBytes(r.Target.Encode())
	for _, p := range r.Params {
		w.WriteUint16(p.Key)
		w.WriteUint16(uint16(len(p.Value)))
		w.WriteBytes(p.Value)
	}
	return w.Bytes()
}

func decodeSvcbLike(rtype uint16) decoder {
	return func(cur *wire.Cursor, rdLength int) (RData, error) {
		start := cur.Offset()
		priority, err := cur.ReadUint16()
		if err != nil {
			return nil, err
		}
		target, err := readName(cur)
		if err != nil {
			return nil, err
		}
		end := start + rdLength
		var params []SvcParam
		for cur.Offset() < end {
			key, err := cur.ReadUint16()
			if err != nil {
				return nil, err
			}
			length, err := cur.ReadUint16()
			if err != nil {
				return nil, err
			}
			val, err := cur.ReadBuffer(int(length))
			if err != nil {
				return nil, err
			}
			params = append(params, SvcParam{Key: key, Value: val})
		}
		return &svcb{rtype: rtype, Priority: priority, Target: target, Params: params}, nil
	}
}

var (
	decodeSVCB  = decodeSvcbLike(TypeSVCB)
	decodeHTTPS = decodeSvcbLike(TypeHTTPS)
)
