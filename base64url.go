package jwt

import "encoding/base64"

// encodeSegment encodes b using the URL-safe, unpadded base64 alphabet
// required by the JWS compact serialization. Encoding never fails.
func encodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// decodeSegment decodes a base64url segment, accepting input with or
// without the "=" padding that RawURLEncoding omits. It rejects any
// byte outside the URL-safe alphabet.
func decodeSegment(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}

	// Some producers pad their base64url output; StdEncoding's URL-safe
	// variant accepts that without treating it as a format error.
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrMalformedToken
	}

	return b, nil
}
