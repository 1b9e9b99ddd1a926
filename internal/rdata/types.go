// Package rdata implements the record-data catalogue: one Go type per
// supported RR kind (spec §3, §4.3), a closed dispatch table keyed on the
// 16-bit RR type, and an Unknown fallback for anything else (RFC 3597).
//
// Grounded on the teacher's internal/packet.Parser, which decodes RRs
// generically into an opaque byte slice; this package replaces that opaque
// slice with the closed tagged-variant-plus-Unknown design spec §9
// prescribes ("adding a new RR is a three-line change: variant, decoder
// binding, presentation").
package rdata

// RR type codes (RFC 1035, RFC 3596, RFC 6891 and friends).
const (
	TypeA          uint16 = 1
	TypeNS         uint16 = 2
	TypeCNAME      uint16 = 5
	TypeSOA        uint16 = 6
	TypePTR        uint16 = 12
	TypeHINFO      uint16 = 13
	TypeMX         uint16 = 15
	TypeTXT        uint16 = 16
	TypeRP         uint16 = 17
	TypeAFSDB      uint16 = 18
	TypeAAAA       uint16 = 28
	TypeLOC        uint16 = 29
	TypeSRV        uint16 = 33
	TypeNAPTR      uint16 = 35
	TypeKX         uint16 = 36
	TypeCERT       uint16 = 37
	TypeDNAME      uint16 = 39
	TypeOPT        uint16 = 41
	TypeDS         uint16 = 43
	TypeSSHFP      uint16 = 44
	TypeRRSIG      uint16 = 46
	TypeNSEC       uint16 = 47
	TypeDNSKEY     uint16 = 48
	TypeDHCID      uint16 = 49
	TypeNSEC3      uint16 = 50
	TypeNSEC3PARAM uint16 = 51
	TypeTLSA       uint16 = 52
	TypeSMIMEA     uint16 = 53
	TypeHIP        uint16 = 55
	TypeOPENPGPKEY uint16 = 61
	TypeCSYNC      uint16 = 62
	TypeZONEMD     uint16 = 63
	TypeSVCB       uint16 = 64
	TypeHTTPS      uint16 = 65
	TypeEUI48      uint16 = 108
	TypeEUI64      uint16 = 109
	TypeTKEY       uint16 = 249
	TypeTSIG       uint16 = 250
	TypeURI        uint16 = 256
	TypeCAA        uint16 = 257
)

var typeNames = map[uint16]string{
	TypeA: "A", TypeNS: "NS", TypeCNAME: "CNAME", TypeSOA: "SOA",
	TypePTR: "PTR", TypeHINFO: "HINFO", TypeMX: "MX", TypeTXT: "TXT",
	TypeRP: "RP", TypeAFSDB: "AFSDB", TypeAAAA: "AAAA", TypeLOC: "LOC",
	TypeSRV: "SRV", TypeNAPTR: "NAPTR", TypeKX: "KX", TypeCERT: "CERT",
	TypeDNAME: "DNAME", TypeOPT: "OPT", TypeDS: "DS", TypeSSHFP: "SSHFP",
	TypeRRSIG: "RRSIG", TypeNSEC: "NSEC", TypeDNSKEY: "DNSKEY",
	TypeDHCID: "DHCID", TypeNSEC3: "NSEC3", TypeNSEC3PARAM: "NSEC3PARAM",
	TypeTLSA: "TLSA", TypeSMIMEA: "SMIMEA", TypeHIP: "HIP",
	TypeOPENPGPKEY: "OPENPGPKEY", TypeCSYNC: "CSYNC", TypeZONEMD: "ZONEMD",
	TypeSVCB: "SVCB", TypeHTTPS: "HTTPS", TypeEUI48: "EUI48",
	TypeEUI64: "EUI64", TypeTKEY: "TKEY", TypeTSIG: "TSIG",
	TypeURI: "URI", TypeCAA: "CAA",
}

var namesToType = func() map[string]uint16 {
	m := make(map[string]uint16, len(typeNames))
	for code, n := range typeNames {
		m[n] = code
	}
	return m
}()

// TypeName returns the mnemonic for a known type code, or a TYPEnnn
// fallback for unrecognized codes (RFC 3597 §5).
func TypeName(code uint16) string {
	if n, ok := typeNames[code]; ok {
		return n
	}
	return unknownTypeName(code)
}

// TypeByName resolves a mnemonic (case-sensitive, as presented) to its
// code, reporting ok=false for anything not in the closed set — callers
// fall back to parsing "TYPEnnn" or a decimal value themselves.
func TypeByName(name string) (uint16, bool) {
	code, ok := namesToType[name]
	return code, ok
}

func unknownTypeName(code uint16) string {
	return "TYPE" + uitoa(uint64(code))
}

func uitoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
