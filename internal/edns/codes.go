// Package edns implements the EDNS(0) OPT pseudo-record (RFC 6891) and its
// option catalogue (spec §4.4): the OPT RDATA is a sequence of
// OPTION-CODE/OPTION-LENGTH/OPTION-DATA triples, each dispatched here the
// same way internal/rdata dispatches RR types.
package edns

// Option codes from the IANA EDNS0 Option Code registry that this client
// recognizes. Anything else decodes to UnknownOption.
const (
	CodeNSID          uint16 = 3
	CodeDAU           uint16 = 5
	CodeDHU           uint16 = 6
	CodeN3U           uint16 = 7
	CodeClientSubnet  uint16 = 8
	CodeExpire        uint16 = 9
	CodeCookie        uint16 = 10
	CodeTCPKeepalive  uint16 = 11
	CodePadding       uint16 = 12
	CodeKeyTag        uint16 = 14
	CodeExtendedError uint16 = 15
)

var codeNames = map[uint16]string{
	CodeNSID:          "NSID",
	CodeDAU:           "DAU",
	CodeDHU:           "DHU",
	CodeN3U:           "N3U",
	CodeClientSubnet:  "CLIENT-SUBNET",
	CodeExpire:        "EXPIRE",
	CodeCookie:        "COOKIE",
	CodeTCPKeepalive:  "TCP-KEEPALIVE",
	CodePadding:       "PADDING",
	CodeKeyTag:        "EDNS-KEY-TAG",
	CodeExtendedError: "EDE",
}

// CodeName returns the registry mnemonic for code, or "OPT<n>" if unknown.
func CodeName(code uint16) string {
	if n, ok := codeNames[code]; ok {
		return n
	}
	return unknownCodeName(code)
}

func unknownCodeName(code uint16) string {
	digits := [5]byte{}
	i := len(digits)
	v := code
	for {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	return "OPT" + string(digits[i:])
}
