package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"math/big"

	"github.com/openprinting/go-jwt/internal/jsontree"
)

// Algorithm is a JOSE "alg" header value. The zero value, AlgNone,
// denotes an unsigned token.
type Algorithm string

// Supported algorithm identifiers (RFC 7518 §3).
const (
	AlgNone Algorithm = "none"

	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"

	RS256 Algorithm = "RS256"
	RS384 Algorithm = "RS384"
	RS512 Algorithm = "RS512"

	ES256 Algorithm = "ES256"
	ES384 Algorithm = "ES384"
	ES512 Algorithm = "ES512"
)

type algKind int

const (
	kindNone algKind = iota
	kindHMAC
	kindRSA
	kindECDSA
)

type algInfo struct {
	kind      algKind
	hash      crypto.Hash
	curveSize int // ECDSA coordinate byte length; unused otherwise
}

var algTable = map[Algorithm]algInfo{
	AlgNone: {kind: kindNone},
	HS256:   {kind: kindHMAC, hash: crypto.SHA256},
	HS384:   {kind: kindHMAC, hash: crypto.SHA384},
	HS512:   {kind: kindHMAC, hash: crypto.SHA512},
	RS256:   {kind: kindRSA, hash: crypto.SHA256},
	RS384:   {kind: kindRSA, hash: crypto.SHA384},
	RS512:   {kind: kindRSA, hash: crypto.SHA512},
	ES256:   {kind: kindECDSA, hash: crypto.SHA256, curveSize: 32},
	ES384:   {kind: kindECDSA, hash: crypto.SHA384, curveSize: 48},
	ES512:   {kind: kindECDSA, hash: crypto.SHA512, curveSize: 66},
}

// parseAlgorithm validates name against the closed set of recognized
// "alg" identifiers. Per the redesign adopted in SPEC_FULL.md, an
// unrecognized name is rejected immediately rather than silently
// mapped to AlgNone.
func parseAlgorithm(name string) (Algorithm, bool) {
	alg := Algorithm(name)
	_, ok := algTable[alg]
	return alg, ok
}

// signWith computes a signature over signingInput using alg and the
// key material in jwk. AlgNone is rejected; signing with it is not a
// valid output per the data model's Invariant I-1.
func signWith(alg Algorithm, signingInput []byte, jwk *jsontree.Object) ([]byte, error) {
	info, ok := algTable[alg]
	if !ok || info.kind == kindNone {
		return nil, ErrUnknownAlgorithm
	}

	var (
		sig []byte
		err error
	)

	switch info.kind {
	case kindHMAC:
		sig, err = signHMAC(info.hash, signingInput, jwk)
	case kindRSA:
		sig, err = signRSA(info.hash, signingInput, jwk)
	case kindECDSA:
		sig, err = signECDSA(info.hash, info.curveSize, signingInput, jwk)
	}
	if err != nil {
		return nil, err
	}

	if len(sig) > 2048 {
		return nil, ErrSignatureTooLarge
	}

	return sig, nil
}

// verifyWith reports whether signature is valid for signingInput under
// alg and the key material in jwk. It never panics on adversarial
// input; any internal failure is reported as (false, err).
//
// AlgNone is handled specially: per §4.5 it is only ever a valid
// verification outcome when the caller explicitly permits it, which is
// the allowUnsigned parameter — has_valid_signature in the JWT object
// defaults this to false.
func verifyWith(alg Algorithm, signingInput, signature []byte, jwk *jsontree.Object, allowUnsigned bool) (bool, error) {
	info, ok := algTable[alg]
	if !ok {
		return false, ErrUnknownAlgorithm
	}

	if info.kind == kindNone {
		if len(signature) != 0 {
			return false, nil
		}
		return allowUnsigned, nil
	}

	switch info.kind {
	case kindHMAC:
		return verifyHMAC(info.hash, signingInput, signature, jwk)
	case kindRSA:
		return verifyRSA(info.hash, signingInput, signature, jwk)
	case kindECDSA:
		return verifyECDSA(info.hash, info.curveSize, signingInput, signature, jwk)
	}

	return false, ErrUnknownAlgorithm
}

func signHMAC(h crypto.Hash, signingInput []byte, jwk *jsontree.Object) ([]byte, error) {
	key, err := loadSymmetricKey(jwk)
	if err != nil {
		return nil, err
	}
	defer zero(key)

	return macSum(h, key, signingInput), nil
}

func verifyHMAC(h crypto.Hash, signingInput, signature []byte, jwk *jsontree.Object) (bool, error) {
	key, err := loadSymmetricKey(jwk)
	if err != nil {
		return false, err
	}
	defer zero(key)

	expected := macSum(h, key, signingInput)
	return len(expected) == len(signature) && hmac.Equal(expected, signature), nil
}

func signRSA(h crypto.Hash, signingInput []byte, jwk *jsontree.Object) ([]byte, error) {
	key, err := loadRSAKey(jwk, true)
	if err != nil {
		return nil, err
	}
	if key.Private == nil {
		return nil, ErrInvalidKey
	}

	hashed := digest(h, signingInput)
	return rsa.SignPKCS1v15(rand.Reader, key.Private, h, hashed)
}

func verifyRSA(h crypto.Hash, signingInput, signature []byte, jwk *jsontree.Object) (bool, error) {
	key, err := loadRSAKey(jwk, false)
	if err != nil {
		return false, err
	}

	hashed := digest(h, signingInput)
	if err := rsa.VerifyPKCS1v15(key.Public, h, hashed, signature); err != nil {
		return false, nil
	}

	return true, nil
}

// signECDSA produces the fixed-length R||S encoding required by RFC
// 7518 §3.4, converting from Go's (r, s *big.Int) pair rather than the
// ASN.1 DER form crypto/ecdsa's lower-level APIs favor elsewhere.
func signECDSA(h crypto.Hash, curveSize int, signingInput []byte, jwk *jsontree.Object) ([]byte, error) {
	key, err := loadECKey(jwk, true)
	if err != nil {
		return nil, err
	}
	if key.Private == nil {
		return nil, ErrInvalidKey
	}

	hashed := digest(h, signingInput)

	r, s, err := ecdsa.Sign(rand.Reader, key.Private, hashed)
	if err != nil {
		return nil, err
	}

	sig := make([]byte, 2*curveSize)
	r.FillBytes(sig[:curveSize])
	s.FillBytes(sig[curveSize:])

	return sig, nil
}

func verifyECDSA(h crypto.Hash, curveSize int, signingInput, signature []byte, jwk *jsontree.Object) (bool, error) {
	if len(signature) != 2*curveSize {
		return false, nil
	}

	key, err := loadECKey(jwk, false)
	if err != nil {
		return false, err
	}

	r := new(big.Int).SetBytes(signature[:curveSize])
	s := new(big.Int).SetBytes(signature[curveSize:])

	hashed := digest(h, signingInput)

	return ecdsa.Verify(key.Public, hashed, r, s), nil
}
