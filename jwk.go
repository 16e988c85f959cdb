package jwt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"math/big"

	"github.com/openprinting/go-jwt/internal/jsontree"
)

// RSAKey holds an RSA key pair materialized from a JWK. Private is nil
// unless the JWK carried the "d" parameter and the caller asked for it.
type RSAKey struct {
	Public  *rsa.PublicKey
	Private *rsa.PrivateKey
}

// ECKey holds an ECDSA key pair materialized from a JWK. Private is nil
// unless the JWK carried the "d" parameter and the caller asked for it.
type ECKey struct {
	Public  *ecdsa.PublicKey
	Private *ecdsa.PrivateKey
}

// loadSymmetricKey reads the "k" parameter of an "oct" JWK and returns
// the raw shared secret bytes.
func loadSymmetricKey(jwk *jsontree.Object) ([]byte, error) {
	k, ok := jwk.Find("k")
	if !ok || k.Type() != jsontree.String {
		return nil, ErrInvalidKey
	}

	key, err := decodeSegment(k.String())
	if err != nil {
		return nil, ErrInvalidKey
	}

	return key, nil
}

// bignumParam decodes a base64url big-endian unsigned integer member,
// zeroing its scratch buffer before returning the big.Int (which copies
// the bytes it needs internally).
func bignumParam(jwk *jsontree.Object, name string) (*big.Int, bool) {
	v, ok := jwk.Find(name)
	if !ok || v.Type() != jsontree.String {
		return nil, false
	}

	raw, err := decodeSegment(v.String())
	if err != nil {
		return nil, false
	}

	n := new(big.Int).SetBytes(raw)
	zero(raw)

	return n, true
}

// loadRSAKey parses the RSA parameters of a JWK. The public key
// requires "n" and "e". When needPrivate is true, "d" must also be
// present; the CRT parameters "p", "q", "dp", "dq", "qi" are attached
// when all five are present so Precompute can skip recomputing them.
func loadRSAKey(jwk *jsontree.Object, needPrivate bool) (*RSAKey, error) {
	n, ok := bignumParam(jwk, "n")
	if !ok {
		return nil, ErrInvalidKey
	}

	e, ok := bignumParam(jwk, "e")
	if !ok {
		return nil, ErrInvalidKey
	}

	pub := &rsa.PublicKey{N: n, E: int(e.Int64())}
	key := &RSAKey{Public: pub}

	if !needPrivate {
		return key, nil
	}

	d, ok := bignumParam(jwk, "d")
	if !ok {
		return nil, ErrInvalidKey
	}

	priv := &rsa.PrivateKey{PublicKey: *pub, D: d}

	p, pOK := bignumParam(jwk, "p")
	q, qOK := bignumParam(jwk, "q")
	if pOK && qOK {
		priv.Primes = []*big.Int{p, q}

		dp, dpOK := bignumParam(jwk, "dp")
		dq, dqOK := bignumParam(jwk, "dq")
		qi, qiOK := bignumParam(jwk, "qi")
		if dpOK && dqOK && qiOK {
			priv.Precomputed.Dp = dp
			priv.Precomputed.Dq = dq
			priv.Precomputed.Qinv = qi
		}

		priv.Precompute()
	}

	key.Private = priv
	return key, nil
}

// ecCurve maps a JWK "crv" name to its Go elliptic.Curve and coordinate
// byte length.
func ecCurve(name string) (elliptic.Curve, int, bool) {
	switch name {
	case "P-256":
		return elliptic.P256(), 32, true
	case "P-384":
		return elliptic.P384(), 48, true
	case "P-521":
		return elliptic.P521(), 66, true
	default:
		return nil, 0, false
	}
}

// loadECKey parses the EC parameters of a JWK. The public key requires
// "x" and "y"; when needPrivate is true, "d" is required and the public
// point is recomputed from d·G if "x"/"y" are absent.
func loadECKey(jwk *jsontree.Object, needPrivate bool) (*ECKey, error) {
	crvValue, ok := jwk.Find("crv")
	if !ok || crvValue.Type() != jsontree.String {
		return nil, ErrInvalidKey
	}

	curve, _, ok := ecCurve(crvValue.String())
	if !ok {
		return nil, ErrInvalidKey
	}

	if !needPrivate {
		x, xOK := bignumParam(jwk, "x")
		y, yOK := bignumParam(jwk, "y")
		if !xOK || !yOK {
			return nil, ErrInvalidKey
		}

		return &ECKey{Public: &ecdsa.PublicKey{Curve: curve, X: x, Y: y}}, nil
	}

	d, ok := bignumParam(jwk, "d")
	if !ok {
		return nil, ErrInvalidKey
	}

	x, xOK := bignumParam(jwk, "x")
	y, yOK := bignumParam(jwk, "y")

	var pub *ecdsa.PublicKey
	if xOK && yOK {
		pub = &ecdsa.PublicKey{Curve: curve, X: x, Y: y}
	} else {
		px, py := curve.ScalarBaseMult(d.Bytes())
		pub = &ecdsa.PublicKey{Curve: curve, X: px, Y: py}
	}

	priv := &ecdsa.PrivateKey{PublicKey: *pub, D: d}

	return &ECKey{Public: pub, Private: priv}, nil
}

// zero overwrites b with zero bytes. Used to scrub decoded JWK scratch
// buffers and transient secret key bytes before they go out of scope.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
