// Trailing-opaque RDATA (spec §4.3): a fixed-width prefix followed by a
// Buffer sized to whatever remains of rd_length.
package rdata

import (
	"fmt"

	"github.com/dnsscience/dnsquery/internal/name"
	"github.com/dnsscience/dnsquery/internal/wire"
)

// DS is a delegation-signer record (RFC 4034 §5).
type DS struct {
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     wire.Buffer
}

func (r *DS) Type() uint16 { return TypeDS }
func (r *DS) String() string {
	return fmt.Sprintf("%d %d %d %s", r.KeyTag, r.Algorithm, r.DigestType, r.Digest.String())
}
func (r *DS) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.KeyTag)
	w.WriteUint8(r.Algorithm)
	w.WriteUint8(r.DigestType)
	w.WriteBytes(r.Digest)
	return w.Bytes()
}

func decodeDS(cur *wire.Cursor, rdLength int) (RData, error) {
	tag, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	alg, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	dt, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	digest, err := readRemainder(cur, rdLength, 4)
	if err != nil {
		return nil, err
	}
	return &DS{KeyTag: tag, Algorithm: alg, DigestType: dt, Digest: digest}, nil
}

// DNSKEY is a DNS public key record (RFC 4034 §2).
type DNSKEY struct {
	Flags     uint16
	Protocol  uint8
	Algorithm uint8
	PublicKey wire.Buffer
}

func (r *DNSKEY) Type() uint16 { return TypeDNSKEY }
func (r *DNSKEY) String() string {
	return fmt.Sprintf("%d %d %d %s", r.Flags, r.Protocol, r.Algorithm, r.PublicKey.String())
}
func (r *DNSKEY) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.Flags)
	w.WriteUint8(r.Protocol)
	w.WriteUint8(r.Algorithm)
	w.WriteBytes(r.PublicKey)
	return w.Bytes()
}

func decodeDNSKEY(cur *wire.Cursor, rdLength int) (RData, error) {
	flags, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	proto, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	alg, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	key, err := readRemainder(cur, rdLength, 4)
	if err != nil {
		return nil, err
	}
	return &DNSKEY{Flags: flags, Protocol: proto, Algorithm: alg, PublicKey: key}, nil
}

// RRSIG is a resource-record-signature record (RFC 4034 §3). Unlike the
// rest of this file's records, the signer's name sits between the fixed
// prefix and the trailing opaque signature, so rd_length accounting has to
// track the name's own encoded length.
type RRSIG struct {
	TypeCovered uint16
	Algorithm   uint8
	Labels      uint8
	OriginalTTL uint32
	Expiration  wire.Timestamp
	Inception   wire.Timestamp
	KeyTag      uint16
	SignerName  name.Name
	Signature   wire.Buffer
}

func (r *RRSIG) Type() uint16 { return TypeRRSIG }
func (r *RRSIG) String() string {
	return fmt.Sprintf("%s %d %d %d %s %s %d %s %s",
		TypeName(r.TypeCovered), r.Algorithm, r.Labels, r.OriginalTTL,
		r.Expiration.String(), r.Inception.String(), r.KeyTag, r.SignerName.String(), r.Signature.String())
}
func (r *RRSIG) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.TypeCovered)
	w.WriteUint8(r.Algorithm)
	w.WriteUint8(r.Labels)
	w.WriteUint32(r.OriginalTTL)
	w.WriteUint32(r.Expiration.Seconds())
	w.WriteUint32(r.Inception.Seconds())
	w.WriteUint16(r.KeyTag)
	w.WriteBytes(r.SignerName.Encode())
	w.WriteBytes(r.Signature)
	return w.Bytes()
}

func decodeRRSIG(cur *wire.Cursor, rdLength int) (RData, error) {
	start := cur.Offset()
	typeCovered, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	alg, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	labels, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	ttl, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	exp, err := cur.ReadTimestamp()
	if err != nil {
		return nil, err
	}
	inc, err := cur.ReadTimestamp()
	if err != nil {
		return nil, err
	}
	tag, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	signer, err := readName(cur)
	if err != nil {
		return nil, err
	}
	consumed := cur.Offset() - start
	sig, err := readRemainder(cur, rdLength, consumed)
	if err != nil {
		return nil, err
	}
	return &RRSIG{TypeCovered: typeCovered, Algorithm: alg, Labels: labels, OriginalTTL: ttl,
		Expiration: exp, Inception: inc, KeyTag: tag, SignerName: signer, Signature: sig}, nil
}

// TLSA is a TLS certificate association record (RFC 6698).
type TLSA struct {
	CertUsage    uint8
	Selector     uint8
	MatchingType uint8
	Data         wire.Buffer
}

func (r *TLSA) Type() uint16 { return TypeTLSA }
func (r *TLSA) String() string {
	return fmt.Sprintf("%d %d %d %s", r.CertUsage, r.Selector, r.MatchingType, r.Data.String())
}
func (r *TLSA) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint8(r.CertUsage)
	w.WriteUint8(r.Selector)
	w.WriteUint8(r.MatchingType)
	w.WriteBytes(r.Data)
	return w.Bytes()
}

func decodeTLSA(cur *wire.Cursor, rdLength int) (RData, error) {
	usage, selector, mtype, data, err := decodeTLSALike(cur, rdLength)
	if err != nil {
		return nil, err
	}
	return &TLSA{CertUsage: usage, Selector: selector, MatchingType: mtype, Data: data}, nil
}

// SMIMEA shares TLSA's wire shape (RFC 8162).
type SMIMEA struct {
	CertUsage    uint8
	Selector     uint8
	MatchingType uint8
	Data         wire.Buffer
}

func (r *SMIMEA) Type() uint16 { return TypeSMIMEA }
func (r *SMIMEA) String() string {
	return fmt.Sprintf("%d %d %d %s", r.CertUsage, r.Selector, r.MatchingType, r.Data.String())
}
func (r *SMIMEA) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint8(r.CertUsage)
	w.WriteUint8(r.Selector)
	w.WriteUint8(r.MatchingType)
	w.WriteBytes(r.Data)
	return w.Bytes()
}

func decodeSMIMEA(cur *wire.Cursor, rdLength int) (RData, error) {
	usage, selector, mtype, data, err := decodeTLSALike(cur, rdLength)
	if err != nil {
		return nil, err
	}
	return &SMIMEA{CertUsage: usage, Selector: selector, MatchingType: mtype, Data: data}, nil
}

func decodeTLSALike(cur *wire.Cursor, rdLength int) (usage, selector, mtype uint8, data wire.Buffer, err error) {
	if usage, err = cur.ReadUint8(); err != nil {
		return
	}
	if selector, err = cur.ReadUint8(); err != nil {
		return
	}
	if mtype, err = cur.ReadUint8(); err != nil {
		return
	}
	data, err = readRemainder(cur, rdLength, 3)
	return
}

// CERT carries a certificate or CRL (RFC 4398).
type CERT struct {
	CertType  uint16
	KeyTag    uint16
	Algorithm uint8
	Certificate wire.Buffer
}

func (r *CERT) Type() uint16 { return TypeCERT }
func (r *CERT) String() string {
	return fmt.Sprintf("%d %d %d %s", r.CertType, r.KeyTag, r.Algorithm, r.Certificate.String())
}
func (r *CERT) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.CertType)
	w.WriteUint16(r.KeyTag)
	w.WriteUint8(r.Algorithm)
	w.WriteBytes(r.Certificate)
	return w.Bytes()
}

func decodeCERT(cur *wire.Cursor, rdLength int) (RData, error) {
	ctype, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	tag, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	alg, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	cert, err := readRemainder(cur, rdLength, 5)
	if err != nil {
		return nil, err
	}
	return &CERT{CertType: ctype, KeyTag: tag, Algorithm: alg, Certificate: cert}, nil
}

// SSHFP is an SSH fingerprint record (RFC 4255).
type SSHFP struct {
	Algorithm   uint8
	FPType      uint8
	Fingerprint wire.Buffer
}

func (r *SSHFP) Type() uint16 { return TypeSSHFP }
func (r *SSHFP) String() string {
	return fmt.Sprintf("%d %d %s", r.Algorithm, r.FPType, r.Fingerprint.String())
}
func (r *SSHFP) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint8(r.Algorithm)
	w.WriteUint8(r.FPType)
	w.WriteBytes(r.Fingerprint)
	return w.Bytes()
}

func decodeSSHFP(cur *wire.Cursor, rdLength int) (RData, error) {
	alg, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	fptype, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	fp, err := readRemainder(cur, rdLength, 2)
	if err != nil {
		return nil, err
	}
	return &SSHFP{Algorithm: alg, FPType: fptype, Fingerprint: fp}, nil
}

// OPENPGPKEY carries an OpenPGP public key with no framing of its own
// (RFC 7929) — the entire RDATA is the key material.
type OPENPGPKEY struct{ Key wire.Buffer }

func (r *OPENPGPKEY) Type() uint16   { return TypeOPENPGPKEY }
func (r *OPENPGPKEY) String() string { return r.Key.String() }
func (r *OPENPGPKEY) Encode() []byte { return r.Key }

func decodeOPENPGPKEY(cur *wire.Cursor, rdLength int) (RData, error) {
	key, err := readRemainder(cur, rdLength, 0)
	if err != nil {
		return nil, err
	}
	return &OPENPGPKEY{Key: key}, nil
}

// ZONEMD is a zone-message-digest record (RFC 8976).
type ZONEMD struct {
	Serial    uint32
	Scheme    uint8
	HashAlgo  uint8
	Digest    wire.Buffer
}

func (r *ZONEMD) Type() uint16 { return TypeZONEMD }
func (r *ZONEMD) String() string {
	return fmt.Sprintf("%d %d %d %s", r.Serial, r.Scheme, r.HashAlgo, r.Digest.String())
}
func (r *ZONEMD) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint32(r.Serial)
	w.WriteUint8(r.Scheme)
	w.WriteUint8(r.HashAlgo)
	w.WriteBytes(r.Digest)
	return w.Bytes()
}

func decodeZONEMD(cur *wire.Cursor, rdLength int) (RData, error) {
	serial, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	scheme, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	halgo, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	digest, err := readRemainder(cur, rdLength, 6)
	if err != nil {
		return nil, err
	}
	return &ZONEMD{Serial: serial, Scheme: scheme, HashAlgo: halgo, Digest: digest}, nil
}

// DHCID carries DHCP identity information (RFC 4701).
type DHCID struct {
	IdentifierType uint16
	DigestType     uint8
	Digest         wire.Buffer
}

func (r *DHCID) Type() uint16 { return TypeDHCID }
func (r *DHCID) String() string {
	return fmt.Sprintf("%d %d %s", r.IdentifierType, r.DigestType, r.Digest.String())
}
func (r *DHCID) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint16(r.IdentifierType)
	w.WriteUint8(r.DigestType)
	w.WriteBytes(r.Digest)
	return w.Bytes()
}

func decodeDHCID(cur *wire.Cursor, rdLength int) (RData, error) {
	idtype, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	dtype, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	digest, err := readRemainder(cur, rdLength, 3)
	if err != nil {
		return nil, err
	}
	return &DHCID{IdentifierType: idtype, DigestType: dtype, Digest: digest}, nil
}

// CSYNC signals a child-synchronization request (RFC 7477). Its type
// bitmap shares the window/bitmap codec used by NSEC/NSEC3 (see
// bitmap.go).
type CSYNC struct {
	SOASerial uint32
	Flags     uint16
	Types     []uint16
}

func (r *CSYNC) Type() uint16 { return TypeCSYNC }
func (r *CSYNC) String() string {
	return fmt.Sprintf("%d %d %s", r.SOASerial, r.Flags, typeListString(r.Types))
}
func (r *CSYNC) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint32(r.SOASerial)
	w.WriteUint16(r.Flags)
	w.WriteBytes(encodeTypeBitmap(r.Types))
	return w.Bytes()
}

func decodeCSYNC(cur *wire.Cursor, rdLength int) (RData, error) {
	serial, err := cur.ReadUint32()
	if err != nil {
		return nil, err
	}
	flags, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	types, err := decodeTypeBitmap(cur, rdLength-6)
	if err != nil {
		return nil, err
	}
	return &CSYNC{SOASerial: serial, Flags: flags, Types: types}, nil
}

// HIP is a host-identity-protocol record (RFC 8005).
type HIP struct {
	Algorithm        uint8
	HIT              wire.Buffer
	PublicKey        wire.Buffer
	RendezvousServers []name.Name
}

func (r *HIP) Type() uint16 { return TypeHIP }
func (r *HIP) String() string {
	s := fmt.Sprintf("%d %s %s", r.Algorithm, r.HIT.String(), r.PublicKey.String())
	for _, rv := range r.RendezvousServers {
		s += " " + rv.String()
	}
	return s
}
func (r *HIP) Encode() []byte {
	w := wire.NewWriter()
	w.WriteUint8(uint8(len(r.HIT)))
	w.WriteUint8(r.Algorithm)
	w.WriteUint16(uint16(len(r.PublicKey)))
	w.WriteBytes(r.HIT)
	w.WriteBytes(r.PublicKey)
	for _, rv := range r.RendezvousServers {
		w.WriteBytes(rv.Encode())
	}
	return w.Bytes()
}

func decodeHIP(cur *wire.Cursor, rdLength int) (RData, error) {
	start := cur.Offset()
	hitLen, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	alg, err := cur.ReadUint8()
	if err != nil {
		return nil, err
	}
	pkLen, err := cur.ReadUint16()
	if err != nil {
		return nil, err
	}
	hit, err := cur.ReadBuffer(int(hitLen))
	if err != nil {
		return nil, err
	}
	pk, err := cur.ReadBuffer(int(pkLen))
	if err != nil {
		return nil, err
	}
	var servers []name.Name
	end := start + rdLength
	for cur.Offset() < end {
		s, err := readName(cur)
		if err != nil {
			return nil, err
		}
		servers = append(servers, s)
	}
	return &HIP{Algorithm: alg, HIT: hit, PublicKey: pk, RendezvousServers: servers}, nil
}
