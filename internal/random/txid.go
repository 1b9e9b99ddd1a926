// Package random provides the cryptographically secure transaction ID
// generation spec §4.7 requires for every outgoing query: predictable IDs
// let an off-path attacker forge a matching response (the Kaminsky attack).
// NEVER use math/rand for this.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// TransactionID generates a cryptographically random 16-bit query ID.
func TransactionID() uint16 {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return binary.BigEndian.Uint16(buf[:])
}
