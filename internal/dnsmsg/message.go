package dnsmsg

import (
	"fmt"
	"strings"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// Message is a complete DNS message: header, question section, and the
// three resource-record sections (RFC 1035 §4.1).
//
// The EDNS0 OPT pseudo-RR (RFC 6891) is routed to OPT rather than left
// sitting in Additionals: it isn't an ordinary resource record and
// callers that walk Additionals expecting owner-name/RDATA records
// shouldn't have to special-case it out.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []ResourceRecord
	Authorities []ResourceRecord
	Additionals []ResourceRecord
	OPT         *ResourceRecord
}

func (m *Message) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, ";; ->>HEADER<<- opcode: %d, status: %d, id: %d\n", m.Header.Opcode, m.Header.Rcode, m.Header.ID)
	fmt.Fprintf(&b, ";; flags: qr=%t aa=%t tc=%t rd=%t ra=%t\n", m.Header.QR, m.Header.AA, m.Header.TC, m.Header.RD, m.Header.RA)
	if len(m.Questions) > 0 {
		b.WriteString(";; QUESTION SECTION:\n")
		for _, q := range m.Questions {
			fmt.Fprintf(&b, ";%s\n", q.String())
		}
	}
	if m.OPT != nil {
		fmt.Fprintf(&b, ";; OPT PSEUDOSECTION:\n%s\n", m.OPT.String())
	}
	writeSection(&b, "ANSWER", m.Answers)
	writeSection(&b, "AUTHORITY", m.Authorities)
	writeSection(&b, "ADDITIONAL", m.Additionals)
	return b.String()
}

func writeSection(b *strings.Builder, label string, rrs []ResourceRecord) {
	if len(rrs) == 0 {
		return
	}
	fmt.Fprintf(b, ";; %s SECTION:\n", label)
	for _, rr := range rrs {
		fmt.Fprintln(b, rr.String())
	}
}

// Encode serializes the message to wire format. The header's section
// counts are derived from the slice lengths (plus OPT, when present)
// rather than trusted from a caller-set field.
func (m *Message) Encode() []byte {
	h := m.Header
	h.QDCount = uint16(len(m.Questions))
	h.ANCount = uint16(len(m.Answers))
	h.NSCount = uint16(len(m.Authorities))
	h.ARCount = uint16(len(m.Additionals))
	if m.OPT != nil {
		h.ARCount++
	}

	w := wire.NewWriter()
	h.encode(w)
	for _, q := range m.Questions {
		q.encode(w)
	}
	for _, rr := range m.Answers {
		rr.encode(w)
	}
	for _, rr := range m.Authorities {
		rr.encode(w)
	}
	for _, rr := range m.Additionals {
		rr.encode(w)
	}
	if m.OPT != nil {
		m.OPT.encode(w)
	}
	return w.Bytes()
}

// Decode parses a complete message from buf. Section counts from the
// header drive how many entries are read from each section; any bytes
// left over once all four counts are satisfied are rejected as
// ErrTrailingGarbage rather than silently ignored (spec §4.2).
func Decode(buf []byte) (*Message, error) {
	cur := wire.NewCursor(buf)
	h, err := decodeHeader(cur)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	m := &Message{Header: h}

	m.Questions = make([]Question, 0, h.QDCount)
	for i := 0; i < int(h.QDCount); i++ {
		q, err := decodeQuestion(cur)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		m.Questions = append(m.Questions, q)
	}

	m.Answers, err = decodeRRs(cur, int(h.ANCount))
	if err != nil {
		return nil, fmt.Errorf("answer section: %w", err)
	}
	m.Authorities, err = decodeRRs(cur, int(h.NSCount))
	if err != nil {
		return nil, fmt.Errorf("authority section: %w", err)
	}
	additionals, err := decodeRRs(cur, int(h.ARCount))
	if err != nil {
		return nil, fmt.Errorf("additional section: %w", err)
	}

	if cur.Remaining() != 0 {
		return nil, dnserrors.At(dnserrors.ErrTrailingGarbage, cur.Offset(), "bytes remain after all declared sections")
	}

	m.Additionals, m.OPT, err = splitOPT(additionals)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// splitOPT pulls the (at most one, per RFC 6891 §6.1.1) OPT pseudo-RR out
// of the additional section so Message.OPT carries it instead.
func splitOPT(additionals []ResourceRecord) ([]ResourceRecord, *ResourceRecord, error) {
	rest := make([]ResourceRecord, 0, len(additionals))
	var opt *ResourceRecord
	for i := range additionals {
		rr := additionals[i]
		if !rr.IsOPT() {
			rest = append(rest, rr)
			continue
		}
		if opt != nil {
			return nil, nil, dnserrors.ErrMultipleOPT
		}
		opt = &rr
	}
	return rest, opt, nil
}

func decodeRRs(cur *wire.Cursor, count int) ([]ResourceRecord, error) {
	rrs := make([]ResourceRecord, 0, count)
	for i := 0; i < count; i++ {
		rr, err := decodeResourceRecord(cur)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rrs = append(rrs, rr)
	}
	return rrs, nil
}
