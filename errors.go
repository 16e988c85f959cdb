package jwt

import "errors"

var (
	// ErrMalformedToken is returned when a compact serialization string
	// cannot be split into exactly three base64url segments, or a
	// segment is not valid base64url.
	ErrMalformedToken = errors.New("jwt: malformed token")

	// ErrMalformedJSON is returned when a header or claims segment does
	// not decode to a JSON object.
	ErrMalformedJSON = errors.New("jwt: header or claims is not a JSON object")

	// ErrUnknownAlgorithm is returned when a JOSE header names an "alg"
	// value this package does not recognize, and when Sign is asked to
	// sign with an algorithm outside the supported set.
	ErrUnknownAlgorithm = errors.New("jwt: unknown or unsupported algorithm")

	// ErrSignatureMismatch is returned by Import when the
	// none-algorithm/empty-signature invariant (I-1) would be violated:
	// AlgNone with a non-empty signature, or any other algorithm with
	// an empty one.
	ErrSignatureMismatch = errors.New("jwt: algorithm and signature presence disagree")

	// ErrInvalidKey is returned when a JWK is missing a parameter
	// required by the requested algorithm, or names an unsupported
	// curve.
	ErrInvalidKey = errors.New("jwt: invalid or incomplete JWK")

	// ErrSignatureTooLarge is returned when a computed signature would
	// exceed the 2048-byte bound of Invariant I-3.
	ErrSignatureTooLarge = errors.New("jwt: signature exceeds maximum size")

	// ErrCannotSignWithNone is returned by Sign when asked to sign with
	// AlgNone; "none" is only ever a recognized parse state, never a
	// valid sign output.
	ErrCannotSignWithNone = errors.New("jwt: cannot sign with the none algorithm")

	// ErrNilToken is returned by operations that require a non-nil
	// *Token receiver, mirroring the "ignored on null token" behavior
	// of the underlying C API this package is modeled on.
	ErrNilToken = errors.New("jwt: nil token")
)
