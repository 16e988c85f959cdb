package jwt

import (
	"crypto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestMatchesKnownSHA256Vector(t *testing.T) {
	t.Parallel()

	// SHA-256("abc")
	want := []byte{
		0xba, 0x78, 0x16, 0xbf, 0x8f, 0x01, 0xcf, 0xea,
		0x41, 0x41, 0x40, 0xde, 0x5d, 0xae, 0x22, 0x23,
		0xb0, 0x03, 0x61, 0xa3, 0x96, 0x17, 0x7a, 0x9c,
		0xb4, 0x10, 0xff, 0x61, 0xf2, 0x00, 0x15, 0xad,
	}

	got := digest(crypto.SHA256, []byte("abc"))
	assert.Equal(t, want, got)
}

func TestMacSumIsDeterministicAndKeyDependent(t *testing.T) {
	t.Parallel()

	data := []byte("signing input")

	a := macSum(crypto.SHA256, []byte("key-one"), data)
	b := macSum(crypto.SHA256, []byte("key-one"), data)
	c := macSum(crypto.SHA256, []byte("key-two"), data)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
