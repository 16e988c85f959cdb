package jwt

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithmRejectsUnknownName(t *testing.T) {
	t.Parallel()

	_, ok := parseAlgorithm("HS1024")
	assert.False(t, ok)
}

func TestParseAlgorithmAcceptsEveryTableEntry(t *testing.T) {
	t.Parallel()

	for alg := range algTable {
		got, ok := parseAlgorithm(string(alg))
		assert.True(t, ok, alg)
		assert.Equal(t, alg, got)
	}
}

func TestSignWithRejectsNone(t *testing.T) {
	t.Parallel()

	_, err := signWith(AlgNone, []byte("input"), symmetricJWK([]byte("key")))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestHMACSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	for _, alg := range []Algorithm{HS256, HS384, HS512} {
		alg := alg
		t.Run(string(alg), func(t *testing.T) {
			t.Parallel()

			jwk := symmetricJWK([]byte("a shared secret of reasonable length"))
			input := []byte("signing input")

			sig, err := signWith(alg, input, jwk)
			require.NoError(t, err)

			ok, err := verifyWith(alg, input, sig, jwk, false)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestHMACVerifyRejectsTamperedInput(t *testing.T) {
	t.Parallel()

	jwk := symmetricJWK([]byte("a shared secret"))
	sig, err := signWith(HS256, []byte("original"), jwk)
	require.NoError(t, err)

	ok, err := verifyWith(HS256, []byte("tampered"), sig, jwk, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRSASignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	for _, alg := range []Algorithm{RS256, RS384, RS512} {
		alg := alg
		t.Run(string(alg), func(t *testing.T) {
			t.Parallel()

			privJWK := rsaJWK(t, priv, true)
			pubJWK := rsaJWK(t, priv, false)
			input := []byte("signing input")

			sig, err := signWith(alg, input, privJWK)
			require.NoError(t, err)

			ok, err := verifyWith(alg, input, sig, pubJWK, false)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestRSAVerifyRejectsWrongKey(t *testing.T) {
	t.Parallel()

	priv1, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	priv2, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	sig, err := signWith(RS256, []byte("input"), rsaJWK(t, priv1, true))
	require.NoError(t, err)

	ok, err := verifyWith(RS256, []byte("input"), sig, rsaJWK(t, priv2, false), false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestECDSASignProducesFixedLengthRS(t *testing.T) {
	t.Parallel()

	cases := []struct {
		alg       Algorithm
		crv       string
		curveSize int
	}{
		{ES256, "P-256", 32},
		{ES384, "P-384", 48},
		{ES512, "P-521", 66},
	}

	for _, c := range cases {
		c := c
		t.Run(string(c.alg), func(t *testing.T) {
			t.Parallel()

			curve, _, _ := ecCurve(c.crv)
			priv, err := ecdsa.GenerateKey(curve, rand.Reader)
			require.NoError(t, err)

			privJWK := ecJWK(t, c.crv, priv, true)
			pubJWK := ecJWK(t, c.crv, priv, false)
			input := []byte("signing input")

			sig, err := signWith(c.alg, input, privJWK)
			require.NoError(t, err)
			assert.Len(t, sig, 2*c.curveSize)

			ok, err := verifyWith(c.alg, input, sig, pubJWK, false)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestECDSAVerifyRejectsWrongSignatureLength(t *testing.T) {
	t.Parallel()

	curve, _, _ := ecCurve("P-256")
	priv, err := ecdsa.GenerateKey(curve, rand.Reader)
	require.NoError(t, err)

	pubJWK := ecJWK(t, "P-256", priv, false)

	ok, err := verifyWith(ES256, []byte("input"), []byte{1, 2, 3}, pubJWK, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyWithNoneRequiresEmptySignatureAndOptIn(t *testing.T) {
	t.Parallel()

	ok, err := verifyWith(AlgNone, []byte("input"), nil, symmetricJWK(nil), false)
	require.NoError(t, err)
	assert.False(t, ok, "none must not verify unless explicitly allowed")

	ok, err = verifyWith(AlgNone, []byte("input"), nil, symmetricJWK(nil), true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = verifyWith(AlgNone, []byte("input"), []byte{1}, symmetricJWK(nil), true)
	require.NoError(t, err)
	assert.False(t, ok, "a non-empty signature on a none token can never verify")
}

func TestAlgorithmConfusionIsRejected(t *testing.T) {
	t.Parallel()

	// A token claiming HS256 must not verify against an RSA public key
	// presented as if it were a symmetric secret, and vice versa: the
	// algorithm and key shape are bound together by the caller, not
	// inferred from the token.
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	sig, err := signWith(RS256, []byte("input"), rsaJWK(t, priv, true))
	require.NoError(t, err)

	ok, err := verifyWith(HS256, []byte("input"), sig, symmetricJWK(priv.N.Bytes()), false)
	require.NoError(t, err)
	assert.False(t, ok)
}
