package dnsmsg

import (
	"fmt"

	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/rdata"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// Question classes (RFC 1035 §3.2.4, RFC 1035 §3.2.5 for QCLASS=255).
const (
	ClassIN  uint16 = 1
	ClassCH  uint16 = 3
	ClassHS  uint16 = 4
	ClassANY uint16 = 255
)

// Question is a single entry of the question section.
type Question struct {
	Name  name.Name
	Type  uint16
	Class uint16
}

func (q Question) String() string {
	return fmt.Sprintf("%s\t%s\t%s", q.Name.String(), className(q.Class), rdata.TypeName(q.Type))
}

func (q Question) encode(w *wire.Writer) {
	w.WriteBytes(q.Name.Encode())
	w.WriteUint16(q.Type)
	w.WriteUint16(q.Class)
}

func decodeQuestion(cur *wire.Cursor) (Question, error) {
	n, err := readName(cur)
	if err != nil {
		return Question{}, err
	}
	t, err := cur.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	c, err := cur.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	return Question{Name: n, Type: t, Class: c}, nil
}

var classNames = map[uint16]string{
	ClassIN:  "IN",
	ClassCH:  "CH",
	ClassHS:  "HS",
	ClassANY: "ANY",
}

func className(c uint16) string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return fmt.Sprintf("CLASS%d", c)
}
