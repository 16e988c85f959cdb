package jwt

import "strings"

// buildSigningInput returns the ASCII signing input bytes:
// base64url(headerText) "." base64url(claimsText). This is the exact
// byte sequence that gets hashed/MACed — no whitespace, no trailing
// newline.
func buildSigningInput(headerText, claimsText string) []byte {
	var b strings.Builder
	b.Grow(len(headerText) + len(claimsText) + 1)
	b.WriteString(encodeSegment([]byte(headerText)))
	b.WriteByte('.')
	b.WriteString(encodeSegment([]byte(claimsText)))
	return []byte(b.String())
}

// compactSerialize assembles the three-segment JWS compact
// serialization. When signature is empty the trailing separator is
// still present and the third segment is empty, matching a "none"
// token.
func compactSerialize(signingInput []byte, signature []byte) string {
	var b strings.Builder
	b.Write(signingInput)
	b.WriteByte('.')
	b.WriteString(encodeSegment(signature))
	return b.String()
}

// splitCompact splits a compact serialization string into its three
// base64url segments, failing unless there are exactly two '.'
// separators and the header/claims segments are non-empty.
func splitCompact(token string) (header, claims, signature string, err error) {
	if strings.Count(token, ".") != 2 {
		return "", "", "", ErrMalformedToken
	}

	firstDot := strings.IndexByte(token, '.')
	secondDot := strings.IndexByte(token[firstDot+1:], '.') + firstDot + 1

	header = token[:firstDot]
	claims = token[firstDot+1 : secondDot]
	signature = token[secondDot+1:]

	if header == "" || claims == "" {
		return "", "", "", ErrMalformedToken
	}

	return header, claims, signature, nil
}

// decodeCompact splits and base64url-decodes a compact serialization
// string, returning the decoded header/claims JSON text and the raw
// signature bytes.
func decodeCompact(token string) (headerText, claimsText string, signature []byte, err error) {
	h, c, s, err := splitCompact(token)
	if err != nil {
		return "", "", nil, err
	}

	headerBytes, err := decodeSegment(h)
	if err != nil {
		return "", "", nil, ErrMalformedToken
	}

	claimsBytes, err := decodeSegment(c)
	if err != nil {
		return "", "", nil, ErrMalformedToken
	}

	sig, err := decodeSegment(s)
	if err != nil {
		return "", "", nil, ErrMalformedToken
	}

	return string(headerBytes), string(claimsBytes), sig, nil
}
