package jwt

import (
	"crypto"
	"crypto/hmac"
	_ "crypto/sha256" // register SHA-256/224 with the crypto package
	_ "crypto/sha512" // register SHA-384/512 with the crypto package
)

// digest hashes data with h in one shot.
func digest(h crypto.Hash, data []byte) []byte {
	hasher := h.New()
	hasher.Write(data)
	return hasher.Sum(nil)
}

// macSum computes an HMAC over data using key and the given hash.
func macSum(h crypto.Hash, key, data []byte) []byte {
	mac := hmac.New(h.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
