// DNS Cookies (RFC 7873): a lightweight anti-spoofing mechanism exchanged
// as an EDNS0 option. This package only plays the client side: generate a
// fresh client cookie per query. A server cookie found in a response is
// decoded into Cookie.Server; nothing here stores it or sends it again.
package edns

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/dchest/siphash"
	"github.com/dnsscience/dnsquery/internal/dnserrors"
)

const (
	clientCookieSize = 8
	minServerCookie  = 8
	maxServerCookie  = 32
)

// Cookie is the EDNS0 COOKIE option (code 10): an 8-byte client cookie,
// plus an optional 8-32 byte server cookie echoed from a prior response.
type Cookie struct {
	Client [8]byte
	Server []byte
}

func (o *Cookie) Code() uint16 { return CodeCookie }
func (o *Cookie) Encode() []byte {
	data := make([]byte, clientCookieSize+len(o.Server))
	copy(data[:clientCookieSize], o.Client[:])
	copy(data[clientCookieSize:], o.Server)
	return data
}
func (o *Cookie) String() string {
	if len(o.Server) == 0 {
		return fmt.Sprintf("COOKIE:%x", o.Client)
	}
	return fmt.Sprintf("COOKIE:%x%x", o.Client, o.Server)
}

func decodeCookieOption(data []byte) (Option, error) {
	if len(data) < clientCookieSize {
		return nil, dnserrors.At(dnserrors.ErrTruncatedOpt, 0, "cookie option shorter than client cookie")
	}
	c := &Cookie{}
	copy(c.Client[:], data[:clientCookieSize])
	if len(data) > clientCookieSize {
		serverLen := len(data) - clientCookieSize
		if serverLen < minServerCookie || serverLen > maxServerCookie {
			return nil, dnserrors.At(dnserrors.ErrTruncatedOpt, 0, "server cookie length out of range")
		}
		c.Server = append([]byte(nil), data[clientCookieSize:]...)
	}
	return c, nil
}

// NewClientCookie derives a fresh 8-byte client cookie bound to the
// resolver endpoint, following the same SipHash-2-4 construction BIND 9
// uses server-side, keyed with a random secret drawn afresh on each call.
func NewClientCookie(endpoint string) ([8]byte, error) {
	var cookie [8]byte
	var key [16]byte
	if _, err := rand.Read(key[:]); err != nil {
		return cookie, err
	}
	var nonce [8]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return cookie, err
	}
	h := siphash.New(key[:])
	h.Write([]byte(endpoint))
	h.Write(nonce[:])
	binary.LittleEndian.PutUint64(cookie[:], h.Sum64())
	return cookie, nil
}
