package x509

import (
	"crypto/ecdsa"
	encoding_asn1 "encoding/asn1"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	oidPublicKeyECDSA = encoding_asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidNamedCurveS256 = encoding_asn1.ObjectIdentifier{1, 3, 132, 0, 10} // http://www.secg.org/sec2-v2.pdf
)

// ParsePKIXPublicKey parses secp256k1 public keys, the stdlib parser does not know the curve
func ParsePKIXPublicKey(der []byte) (*ecdsa.PublicKey, error) {
	src := cryptobyte.String(der)
	var (
		obj, algo cryptobyte.String
		algoOid   encoding_asn1.ObjectIdentifier
		curveOid  encoding_asn1.ObjectIdentifier
		keyData   encoding_asn1.BitString
	)

	if !src.ReadASN1(&obj, asn1.SEQUENCE) ||
		!obj.ReadASN1(&algo, asn1.SEQUENCE) ||
		!algo.ReadASN1ObjectIdentifier(&algoOid) ||
		!obj.ReadASN1BitString(&keyData) {
		return nil, errors.New("x509: failed to parse PKIX public key")
	}
	if !algoOid.Equal(oidPublicKeyECDSA) {
		return nil, fmt.Errorf("x509: unsupported algorithm: %v", algoOid)
	}
	if !algo.PeekASN1Tag(asn1.OBJECT_IDENTIFIER) || !algo.ReadASN1ObjectIdentifier(&curveOid) {
		return nil, errors.New("x509: failed to parse EC OID")
	}
	if !curveOid.Equal(oidNamedCurveS256) {
		return nil, fmt.Errorf("x509: unknown curve: %v", curveOid)
	}
	pub, err := crypto.UnmarshalPubkey(keyData.RightAlign())
	if err != nil {
		return nil, errors.Join(errors.New("x509: invalid EC point"), err)
	}
	return pub, nil
}

// ParseSignature reads r and s of an ASN.1 DER encoded ECDSA signature
func ParseSignature(der []byte) (r *big.Int, s *big.Int, err error) {
	r, s = new(big.Int), new(big.Int)
	src := cryptobyte.String(der)
	var inner cryptobyte.String
	if !src.ReadASN1(&inner, asn1.SEQUENCE) ||
		!src.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, nil, errors.New("x509: invalid ASN.1 signature")
	}
	return r, s, nil
}
