/*
Package jwt implements JSON Web Signature compact serialization for
JSON Web Tokens, as used by IPP Everywhere and the rest of the CUPS
printing stack: a JOSE header, a claim set, and an optional signature,
each produced and consumed without ever round-tripping through a
struct-based JSON encoder.

# Algorithms

HS256/384/512 (HMAC), RS256/384/512 (RSASSA-PKCS1-v1.5) and
ES256/384/512 (ECDSA over P-256/P-384/P-521, fixed-length R||S
encoding per RFC 7518 §3.4) are supported for signing and verification.
"none" is recognized only as a parse state for an already-unsigned
token; Sign refuses to produce one.

# Keys

Signing and verification keys are supplied as JSON Web Keys (RFC 7517)
through the internal/jsontree adapter — see Token.Sign and
Token.HasValidSignature.

# Exact-byte signing

The bytes that get hashed are exactly the bytes that were on the wire:
header and claims text are cached verbatim from Import and only
re-serialized when a claim is actually mutated. This is what lets
HasValidSignature agree with whatever produced the token in the first
place, independent of key ordering or whitespace choices a generic JSON
marshaler might make differently.
*/
package jwt
