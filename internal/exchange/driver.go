// Package exchange drives a single query/response round trip over one of
// the four transports (spec §4.7): build the query, send it, decode the
// reply, and verify it actually answers the query before handing it back.
package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/dnsscience/dnsquery/internal/dnsmsg"
	"github.com/dnsscience/dnsquery/internal/dnserrors"
	"github.com/dnsscience/dnsquery/internal/edns"
	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/random"
	"github.com/dnsscience/dnsquery/internal/rdata"
	"github.com/dnsscience/dnsquery/internal/transport"
)

// DefaultUDPPayloadSize is advertised in the OPT record of every query
// that requests EDNS0, matching the conservative value recommended by
// RFC 6891 to avoid IP fragmentation.
const DefaultUDPPayloadSize = 1232

// Config controls how a query is built and how its response is judged.
type Config struct {
	RecursionDesired bool
	DNSSEC           bool // sets the OPT DO bit and requests signed records
	UDPPayloadSize   uint16
	Cookie           bool // attach a client EDNS0 COOKIE option
}

// Result reports one completed exchange: the query and response messages
// plus the timing and sizing the CLI layer surfaces to the user.
type Result struct {
	Query     *dnsmsg.Message
	Response  *dnsmsg.Message
	Transport transport.Mode
	Peer      string
	RTT       time.Duration
	QuerySize int
	ReplySize int
	Retried   bool // true if a truncated UDP response was retried over TCP
}

// BuildQuery assembles a query message for qname/qtype/qclass per cfg,
// including an OPT record when DNSSEC, Cookie, or a non-default payload
// size is requested.
func BuildQuery(qname name.Name, qtype, qclass uint16, cfg Config) (*dnsmsg.Message, error) {
	msg := &dnsmsg.Message{
		Header: dnsmsg.Header{
			ID:     random.TransactionID(),
			Opcode: dnsmsg.OpcodeQuery,
			RD:     cfg.RecursionDesired,
		},
		Questions: []dnsmsg.Question{{Name: qname, Type: qtype, Class: qclass}},
	}

	if cfg.DNSSEC || cfg.Cookie || cfg.UDPPayloadSize != 0 {
		opt, err := buildOPT(cfg)
		if err != nil {
			return nil, err
		}
		msg.OPT = &opt
	}

	return msg, nil
}

func buildOPT(cfg Config) (dnsmsg.ResourceRecord, error) {
	payloadSize := cfg.UDPPayloadSize
	if payloadSize == 0 {
		payloadSize = DefaultUDPPayloadSize
	}

	var options []edns.Option
	if cfg.Cookie {
		clientCookie, err := edns.NewClientCookie("")
		if err != nil {
			return dnsmsg.ResourceRecord{}, fmt.Errorf("generate client cookie: %w", err)
		}
		options = append(options, &edns.Cookie{Client: clientCookie})
	}

	ttl := edns.TTLFields{DO: cfg.DNSSEC}.EncodeTTL()

	return dnsmsg.ResourceRecord{
		Name:  name.Root,
		Type:  rdata.TypeOPT,
		Class: payloadSize,
		TTL:   ttl,
		RData: &rdata.OPT{Options: options},
	}, nil
}

// Run sends query over t, decodes the reply, and verifies it answers the
// query (matching ID, QR=1, matching opcode, and an echoed question per
// spec §4.7). When the response comes back over UDP with TC=1, it is
// retried once over fallbackTCP if one is supplied.
func Run(ctx context.Context, t transport.Transport, query *dnsmsg.Message, fallbackTCP transport.Transport) (*Result, error) {
	wire := query.Encode()

	start := time.Now()
	replyBytes, err := t.Exchange(ctx, wire)
	if err != nil {
		return nil, fmt.Errorf("exchange over %s: %w", t.Mode(), err)
	}
	rtt := time.Since(start)

	response, err := dnsmsg.Decode(replyBytes)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if err := verifyResponse(query, response); err != nil {
		return nil, err
	}

	result := &Result{
		Query:     query,
		Response:  response,
		Transport: t.Mode(),
		Peer:      t.Peer(),
		RTT:       rtt,
		QuerySize: len(wire),
		ReplySize: len(replyBytes),
	}

	if response.Header.TC && t.Mode() == transport.ModeUDP && fallbackTCP != nil {
		retried, err := Run(ctx, fallbackTCP, query, nil)
		if err != nil {
			return nil, fmt.Errorf("tcp retry after truncated udp response: %w", err)
		}
		retried.Retried = true
		return retried, nil
	}

	return result, nil
}

func verifyResponse(query, response *dnsmsg.Message) error {
	if response.Header.ID != query.Header.ID {
		return &dnserrors.ResponseMismatch{Reason: fmt.Sprintf("id %d does not match query id %d", response.Header.ID, query.Header.ID)}
	}
	if !response.Header.QR {
		return &dnserrors.ResponseMismatch{Reason: "QR bit not set in response"}
	}
	if response.Header.Opcode != query.Header.Opcode {
		return &dnserrors.ResponseMismatch{Reason: "opcode does not match query"}
	}
	if len(query.Questions) > 0 {
		if len(response.Questions) == 0 {
			return &dnserrors.ResponseMismatch{Reason: "response carries no question section"}
		}
		qq, rq := query.Questions[0], response.Questions[0]
		if !qq.Name.Equal(rq.Name) || qq.Type != rq.Type || qq.Class != rq.Class {
			return &dnserrors.ResponseMismatch{Reason: "echoed question does not match query"}
		}
	}
	return nil
}
