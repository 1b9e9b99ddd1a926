package rdata

import (
	"github.com/dnsscience/dnsquery/internal/dnserrors"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// RData is implemented by every record-data variant, including Unknown.
type RData interface {
	// Type returns the RR type code this value decodes/encodes.
	Type() uint16
	// String renders the RDATA in presentation format.
	String() string
	// Encode returns the wire-format RDATA bytes (without the rd_length
	// prefix; message assembly writes that separately once the length is
	// known).
	Encode() []byte
}

// decoder parses exactly rdLength bytes of RDATA starting at cur's current
// offset, given access to the full message (for name decompression).
type decoder func(cur *wire.Cursor, rdLength int) (RData, error)

var decoders = map[uint16]decoder{
	TypeA:          decodeA,
	TypeAAAA:       decodeAAAA,
	TypeMX:         decodeMX,
	TypeSOA:        decodeSOA,
	TypeHINFO:      decodeHINFO,
	TypeLOC:        decodeLOC,
	TypeEUI48:      decodeEUI48,
	TypeEUI64:      decodeEUI64,
	TypeNS:         decodeNS,
	TypeCNAME:      decodeCNAME,
	TypePTR:        decodePTR,
	TypeDNAME:      decodeDNAME,
	TypeRP:         decodeRP,
	TypeKX:         decodeKX,
	TypeAFSDB:      decodeAFSDB,
	TypeSRV:        decodeSRV,
	TypeNAPTR:      decodeNAPTR,
	TypeDS:         decodeDS,
	TypeDNSKEY:     decodeDNSKEY,
	TypeRRSIG:      decodeRRSIG,
	TypeTLSA:       decodeTLSA,
	TypeCERT:       decodeCERT,
	TypeSMIMEA:     decodeSMIMEA,
	TypeSSHFP:      decodeSSHFP,
	TypeOPENPGPKEY: decodeOPENPGPKEY,
	TypeZONEMD:     decodeZONEMD,
	TypeDHCID:      decodeDHCID,
	TypeCSYNC:      decodeCSYNC,
	TypeHIP:        decodeHIP,
	TypeNSEC:       decodeNSEC,
	TypeNSEC3:      decodeNSEC3,
	TypeNSEC3PARAM: decodeNSEC3PARAM,
	TypeTXT:        decodeTXT,
	TypeSVCB:       decodeSVCB,
	TypeHTTPS:      decodeHTTPS,
	TypeCAA:        decodeCAA,
	TypeURI:        decodeURI,
	TypeTKEY:       decodeTKEY,
	TypeTSIG:       decodeTSIG,
	TypeOPT:        decodeOPT,
}

// Decode dispatches on rtype, consuming exactly rdLength bytes from cur.
// Unknown/unwired types fall back to the RFC 3597 opaque form.
func Decode(rtype uint16, cur *wire.Cursor, rdLength int) (RData, error) {
	start := cur.Offset()
	dec, ok := decoders[rtype]
	if !ok {
		return decodeUnknown(rtype, cur, rdLength)
	}
	rd, err := dec(cur, rdLength)
	if err != nil {
		return nil, err
	}
	if consumed := cur.Offset() - start; consumed != rdLength {
		return nil, dnserrors.At(dnserrors.ErrRdLengthMismatch, start, "rdata decoder did not consume rd_length")
	}
	return rd, nil
}

// readRemainder reads whatever is left of rd_length starting from
// consumedSoFar, used by the trailing-opaque category (spec §4.3).
func readRemainder(cur *wire.Cursor, rdLength, consumedSoFar int) (wire.Buffer, error) {
	remaining := rdLength - consumedSoFar
	if remaining < 0 {
		return nil, dnserrors.At(dnserrors.ErrRdLengthMismatch, cur.Offset(), "fixed prefix exceeds rd_length")
	}
	return cur.ReadBuffer(remaining)
}
