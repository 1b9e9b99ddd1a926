package edns

import (
	"fmt"
	"net"
	"strings"

	"github.com/dnsscience/dnsquery/internal/dnserrors"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// Option is implemented by every EDNS0 option variant, including
// UnknownOption.
type Option interface {
	// Code returns the OPTION-CODE this value decodes/encodes.
	Code() uint16
	// String renders the option in presentation format.
	String() string
	// Encode returns the OPTION-DATA bytes, excluding the code/length header.
	Encode() []byte
}

type optionDecoder func(data []byte) (Option, error)

var optionDecoders = map[uint16]optionDecoder{
	CodeNSID:          decodeNSID,
	CodeDAU:           decodeAlgorithmList(CodeDAU),
	CodeDHU:           decodeAlgorithmList(CodeDHU),
	CodeN3U:           decodeAlgorithmList(CodeN3U),
	CodeClientSubnet:  decodeClientSubnet,
	CodeExpire:        decodeExpire,
	CodeCookie:        decodeCookieOption,
	CodeTCPKeepalive:  decodeTCPKeepalive,
	CodePadding:       decodePadding,
	CodeKeyTag:        decodeKeyTag,
	CodeExtendedError: decodeExtendedError,
}

// Decode reads OPTION-CODE/OPTION-LENGTH/OPTION-DATA triples from cur until
// end (an absolute cursor offset), returning them in wire order. It rejects
// an option whose declared length would run past end (spec §4.4:
// ErrTruncatedOpt).
func Decode(cur *wire.Cursor, end int) ([]Option, error) {
	var opts []Option
	for cur.Offset() < end {
		code, err := cur.ReadUint16()
		if err != nil {
			return nil, err
		}
		length, err := cur.ReadUint16()
		if err != nil {
			return nil, err
		}
		if cur.Offset()+int(length) > end {
			return nil, dnserrors.At(dnserrors.ErrTruncatedOpt, cur.Offset(), "option length exceeds OPT rdata")
		}
		data, err := cur.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		opt, err := decodeOption(code, data)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	if cur.Offset() != end {
		return nil, dnserrors.At(dnserrors.ErrTruncatedOpt, end, "trailing bytes after last option")
	}
	return opts, nil
}

func decodeOption(code uint16, data []byte) (Option, error) {
	dec, ok := optionDecoders[code]
	if !ok {
		return &UnknownOption{OptCode: code, Data: append([]byte(nil), data...)}, nil
	}
	return dec(data)
}

// Encode serializes opts back into their wire triples, in order.
func Encode(opts []Option) []byte {
	w := wire.NewWriter()
	for _, opt := range opts {
		data := opt.Encode()
		w.WriteUint16(opt.Code())
		w.WriteUint16(uint16(len(data)))
		w.WriteBytes(data)
	}
	return w.Bytes()
}

// UnknownOption is the opaque fallback for option codes outside the
// catalogue (mirrors internal/rdata.Unknown for RR types).
type UnknownOption struct {
	OptCode uint16
	Data    []byte
}

func (o *UnknownOption) Code() uint16    { return o.OptCode }
func (o *UnknownOption) Encode() []byte  { return append([]byte(nil), o.Data...) }
func (o *UnknownOption) String() string {
	return fmt.Sprintf("%s:%x", CodeName(o.OptCode), o.Data)
}

// NSID carries a server-assigned Name Server Identifier (RFC 5001).
type NSID struct {
	Data []byte
}

func (o *NSID) Code() uint16   { return CodeNSID }
func (o *NSID) Encode() []byte { return append([]byte(nil), o.Data...) }
func (o *NSID) String() string { return fmt.Sprintf("NSID:%x", o.Data) }

func decodeNSID(data []byte) (Option, error) {
	return &NSID{Data: append([]byte(nil), data...)}, nil
}

// AlgorithmList backs DAU/DHU/N3U (RFC 6975): an advertised list of
// single-octet DNSSEC algorithm numbers.
type AlgorithmList struct {
	code       uint16
	Algorithms []uint8
}

func (o *AlgorithmList) Code() uint16 { return o.code }
func (o *AlgorithmList) Encode() []byte {
	return append([]byte(nil), o.Algorithms...)
}
func (o *AlgorithmList) String() string {
	parts := make([]string, len(o.Algorithms))
	for i, a := range o.Algorithms {
		parts[i] = fmt.Sprintf("%d", a)
	}
	return fmt.Sprintf("%s:%s", CodeName(o.code), strings.Join(parts, ","))
}

func decodeAlgorithmList(code uint16) optionDecoder {
	return func(data []byte) (Option, error) {
		return &AlgorithmList{code: code, Algorithms: append([]uint8(nil), data...)}, nil
	}
}

// ClientSubnet carries the EDNS Client Subnet extension (RFC 7871).
type ClientSubnet struct {
	Family          uint16
	SourcePrefixLen uint8
	ScopePrefixLen  uint8
	Address         net.IP
}

func (o *ClientSubnet) Code() uint16 { return CodeClientSubnet }
func (o *ClientSubnet) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(o.Family)
	w.WriteUint8(o.SourcePrefixLen)
	w.WriteUint8(o.ScopePrefixLen)
	w.WriteBytes(addressBytes(o.Family, o.SourcePrefixLen, o.Address))
	return w.Bytes()
}
func (o *ClientSubnet) String() string {
	return fmt.Sprintf("CLIENT-SUBNET:%s/%d/%d", o.Address, o.SourcePrefixLen, o.ScopePrefixLen)
}

func addressBytes(family uint16, prefixLen uint8, ip net.IP) []byte {
	full := ip.To4()
	if family == 2 {
		full = ip.To16()
	}
	if full == nil {
		return nil
	}
	n := (int(prefixLen) + 7) / 8
	if n > len(full) {
		n = len(full)
	}
	return full[:n]
}

func decodeClientSubnet(data []byte) (Option, error) {
	cur := wire.NewCursor(data)
	family, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	sourceLen, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	scopeLen, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	addr, err := cur.ReadBytes(cur.Remaining())
	if err != nil {
		return nil, err
	}
	var ip net.IP
	switch family {
	case 1:
		buf := make([]byte, 4)
		copy(buf, addr)
		ip = net.IP(buf)
	case 2:
		buf := make([]byte, 16)
		copy(buf, addr)
		ip = net.IP(buf)
	default:
		ip = net.IP(append([]byte(nil), addr...))
	}
	return &ClientSubnet{Family: family, SourcePrefixLen: sourceLen, ScopePrefixLen: scopeLen, Address: ip}, nil
}

// Expire conveys zone-expiry seconds remaining (RFC 7314). Queries send a
// zero-length option; Present distinguishes that from a decoded response.
type Expire struct {
	Present bool
	Seconds uint32
}

func (o *Expire) Code() uint16 { return CodeExpire }
func (o *Expire) Encode() []byte {
	if !o.Present {
		return nil
	}
	w := wire.NewWriter()
	w.WriteUint32(o.Seconds)
	return w.Bytes()
}
func (o *Expire) String() string {
	if !o.Present {
		return "EXPIRE"
	}
	return fmt.Sprintf("EXPIRE:%d", o.Seconds)
}

func decodeExpire(data []byte) (Option, error) {
	if len(data) == 0 {
		return &Expire{}, nil
	}
	cur := wire.NewCursor(data)
	seconds, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &Expire{Present: true, Seconds: seconds}, nil
}

// TCPKeepalive conveys an idle timeout for persistent connections
// (RFC 7828). Present distinguishes a query's zero-length probe from a
// server's advertised timeout.
type TCPKeepalive struct {
	Present bool
	Timeout uint16 // units of 100ms
}

func (o *TCPKeepalive) Code() uint16 { return CodeTCPKeepalive }
func (o *TCPKeepalive) Encode() []byte {
	if !o.Present {
		return nil
	}
	w := wire.NewWriter()
	w.WriteUint16(o.Timeout)
	return w.Bytes()
}
func (o *TCPKeepalive) String() string {
	if !o.Present {
		return "TCP-KEEPALIVE"
	}
	return fmt.Sprintf("TCP-KEEPALIVE:%d", o.Timeout)
}

func decodeTCPKeepalive(data []byte) (Option, error) {
	if len(data) == 0 {
		return &TCPKeepalive{}, nil
	}
	cur := wire.NewCursor(data)
	timeout, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	return &TCPKeepalive{Present: true, Timeout: timeout}, nil
}

// Padding pads the message to a fixed block size (RFC 7830); content is
// conventionally zero and carries no information.
type Padding struct {
	Length int
}

func (o *Padding) Code() uint16   { return CodePadding }
func (o *Padding) Encode() []byte { return make([]byte, o.Length) }
func (o *Padding) String() string { return fmt.Sprintf("PADDING:%d", o.Length) }

func decodePadding(data []byte) (Option, error) {
	return &Padding{Length: len(data)}, nil
}

// KeyTag advertises trust-anchor key tags a resolver holds (RFC 8145).
type KeyTag struct {
	KeyTags []uint16
}

func (o *KeyTag) Code() uint16 { return CodeKeyTag }
func (o *KeyTag) Encode() []byte {
	w := wire.NewWriter()
	for _, t := range o.KeyTags {
		w.WriteUint16(t)
	}
	return w.Bytes()
}
func (o *KeyTag) String() string {
	parts := make([]string, len(o.KeyTags))
	for i, t := range o.KeyTags {
		parts[i] = fmt.Sprintf("%d", t)
	}
	return fmt.Sprintf("EDNS-KEY-TAG:%s", strings.Join(parts, ","))
}

func decodeKeyTag(data []byte) (Option, error) {
	cur := wire.NewCursor(data)
	var tags []uint16
	for cur.Remaining() > 0 {
		t, err := cur.ReadUint16()
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return &KeyTag{KeyTags: tags}, nil
}

// ExtendedError carries an extended DNS error code and optional free-text
// diagnostic (RFC 8914).
type ExtendedError struct {
	InfoCode  uint16
	ExtraText string
}

func (o *ExtendedError) Code() uint16 { return CodeExtendedError }
func (o *ExtendedError) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(o.InfoCode)
	w.WriteBytes([]byte(o.ExtraText))
	return w.Bytes()
}
func (o *ExtendedError) String() string {
	return fmt.Sprintf("EDE:%d %q", o.InfoCode, o.ExtraText)
}

func decodeExtendedError(data []byte) (Option, error) {
	cur := wire.NewCursor(data)
	infoCode, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	text, err := cur.ReadBytes(cur.Remaining())
	if err != nil {
		return nil, err
	}
	return &ExtendedError{InfoCode: infoCode, ExtraText: string(text)}, nil
}
