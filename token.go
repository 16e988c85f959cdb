package jwt

import (
	"encoding/json"

	"github.com/openprinting/go-jwt/internal/jsontree"
)

// Type is the JSON value kind of a claim, re-exported from jsontree so
// callers of GetClaimType don't need to import the internal package.
type Type = jsontree.Type

// The claim value kinds GetClaimType can return.
const (
	TypeNull   = jsontree.Null
	TypeFalse  = jsontree.False
	TypeTrue   = jsontree.True
	TypeNumber = jsontree.Number
	TypeString = jsontree.String
	TypeArray  = jsontree.Array
	TypeObject = jsontree.ObjectKind
)

// Token is a JSON Web Token: a JOSE header, a claim set, and (once
// signed) a signature. The zero value is not usable; construct one
// with New or Import.
//
// A Token is not safe for concurrent mutation and has no internal lock;
// HasValidSignature reads the cached header/claims text that the
// mutating methods change. Distinct Tokens may be used freely from
// distinct goroutines.
type Token struct {
	header          *jsontree.Object
	headerText      string
	headerTextValid bool

	claims          *jsontree.Object
	claimsText      string
	claimsTextValid bool

	alg       Algorithm
	signature []byte
}

// New creates a new, empty Token. typ sets the JOSE header's "typ"
// member; an empty string defaults to "JWT". The returned token has
// algorithm AlgNone and no signature.
func New(typ string) *Token {
	if typ == "" {
		typ = "JWT"
	}

	header := jsontree.New()
	header.SetString("typ", typ)

	return &Token{
		header: header,
		claims: jsontree.New(),
		alg:    AlgNone,
	}
}

// Close releases sensitive state held directly by the token — today,
// just the raw signature bytes — ahead of the garbage collector. It is
// safe to call on a nil Token.
func (t *Token) Close() {
	if t == nil {
		return
	}
	zero(t.signature)
	t.signature = nil
}

// invalidateClaims clears the claims text cache and, per the state
// machine in SPEC_FULL.md (SIGNED --set_claim*--> NEW), drops any
// existing signature: a signature computed over the old claim set is
// no longer valid once the claims change, and Invariant I-1 requires
// alg and signature presence to agree. A header "alg" member is
// rewritten to "none" so that an export of the token agrees as well.
func (t *Token) invalidateClaims() {
	t.claimsTextValid = false
	if len(t.signature) > 0 {
		zero(t.signature)
	}
	t.signature = nil
	t.alg = AlgNone
	if _, ok := t.header.Find("alg"); ok {
		t.header.SetString("alg", string(AlgNone))
		t.headerTextValid = false
	}
}

// SetClaimString sets or replaces a string claim.
func (t *Token) SetClaimString(name, value string) {
	if t == nil || name == "" {
		return
	}
	t.claims.SetString(name, value)
	t.invalidateClaims()
}

// SetClaimNumber sets or replaces a numeric claim.
func (t *Token) SetClaimNumber(name string, value float64) {
	if t == nil || name == "" {
		return
	}
	t.claims.SetNumber(name, value)
	t.invalidateClaims()
}

// SetClaimValue sets or replaces a claim to an arbitrary JSON-encodable
// value (a bool, number, string, slice, map, or struct).
func (t *Token) SetClaimValue(name string, value any) error {
	if t == nil || name == "" {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := t.claims.SetRaw(name, string(raw)); err != nil {
		return err
	}

	t.invalidateClaims()
	return nil
}

// GetClaimType reports the JSON kind of a claim, or TypeNull if it is
// absent.
func (t *Token) GetClaimType(name string) Type {
	if t == nil {
		return TypeNull
	}
	v, ok := t.claims.Find(name)
	if !ok {
		return TypeNull
	}
	return v.Type()
}

// GetClaimString returns a string claim's value, or "" if it is absent
// or not a string.
func (t *Token) GetClaimString(name string) string {
	if t == nil {
		return ""
	}
	v, ok := t.claims.Find(name)
	if !ok {
		return ""
	}
	return v.String()
}

// GetClaimNumber returns a numeric claim's value, or 0 if it is absent
// or not a number.
func (t *Token) GetClaimNumber(name string) float64 {
	if t == nil {
		return 0
	}
	v, ok := t.claims.Find(name)
	if !ok {
		return 0
	}
	return v.Number()
}

// GetClaimValue returns the raw JSON value node of a claim and whether
// it was present.
func (t *Token) GetClaimValue(name string) (jsontree.Value, bool) {
	if t == nil {
		return jsontree.Value{}, false
	}
	return t.claims.Find(name)
}

// GetClaims returns the claims as a mutable JSON object handle. As in
// the C API this package is modeled on, mutating the returned object
// directly bypasses the claims-text cache invalidation that
// SetClaim*/Sign rely on — prefer the SetClaim* methods unless you
// intend to re-Sign immediately after.
func (t *Token) GetClaims() *jsontree.Object {
	if t == nil {
		return nil
	}
	return t.claims
}

// GetAlgorithm returns the token's current signing algorithm, AlgNone
// if it has never been signed.
func (t *Token) GetAlgorithm() Algorithm {
	if t == nil {
		return AlgNone
	}
	return t.alg
}

// Sign signs the token with alg and the key material in jwk, replacing
// any existing signature. alg must not be AlgNone. On success, the
// JOSE header's "alg" member is updated to match and the new signature
// is stored. On any failure the token's algorithm is AlgNone and its
// signature is empty, so Invariant I-1 holds for both; the JOSE header
// keeps the "alg" member of the attempted or an earlier signing.
func (t *Token) Sign(alg Algorithm, jwk *jsontree.Object) error {
	if t == nil {
		return ErrNilToken
	}

	zero(t.signature)
	t.signature = nil
	t.alg = AlgNone

	if alg == AlgNone {
		return ErrCannotSignWithNone
	}
	if _, ok := algTable[alg]; !ok {
		return ErrUnknownAlgorithm
	}
	if jwk == nil {
		return ErrInvalidKey
	}

	t.header.Delete("alg")
	t.header.SetString("alg", string(alg))
	t.headerText = t.header.Export()
	t.headerTextValid = true

	t.claimsText = t.claims.Export()
	t.claimsTextValid = true

	signingInput := buildSigningInput(t.headerText, t.claimsText)

	sig, err := signWith(alg, signingInput, jwk)
	if err != nil {
		return err
	}

	t.signature = sig
	t.alg = alg
	return nil
}

// HasValidSignature reports whether the token's stored signature is
// valid for its current header/claims text under jwk. It never panics
// and never writes diagnostics to any stream, per SPEC_FULL.md's
// resolution of the "stderr diagnostics" open question. Any internal
// failure, such as a JWK lacking the parameters the algorithm needs,
// is reported as false with a nil error. A token whose algorithm is
// AlgNone never verifies here; use HasValidSignatureAllowingNone to opt
// in to that explicitly.
func (t *Token) HasValidSignature(jwk *jsontree.Object) (bool, error) {
	return t.hasValidSignature(jwk, false)
}

// HasValidSignatureAllowingNone is HasValidSignature but additionally
// accepts a token whose algorithm is AlgNone and whose signature is
// empty — the caller-opt-in path required by §4.5.
func (t *Token) HasValidSignatureAllowingNone(jwk *jsontree.Object) (bool, error) {
	return t.hasValidSignature(jwk, true)
}

func (t *Token) hasValidSignature(jwk *jsontree.Object, allowNone bool) (bool, error) {
	if t == nil || jwk == nil {
		return false, nil
	}

	headerText := t.headerText
	if !t.headerTextValid {
		headerText = t.header.Export()
	}

	claimsText := t.claimsText
	if !t.claimsTextValid {
		claimsText = t.claims.Export()
	}

	signingInput := buildSigningInput(headerText, claimsText)

	ok, err := verifyWith(t.alg, signingInput, t.signature, jwk, allowNone)
	if err != nil {
		return false, nil
	}

	return ok, nil
}

// ExportString renders the token as a JWS compact serialization
// string. When the token has never been signed (alg is AlgNone) the
// trailing separator is still present and the signature segment is
// empty, per §4.6.
func (t *Token) ExportString() (string, error) {
	if t == nil {
		return "", ErrNilToken
	}

	if !t.headerTextValid {
		t.headerText = t.header.Export()
		t.headerTextValid = true
	}
	if !t.claimsTextValid {
		t.claimsText = t.claims.Export()
		t.claimsTextValid = true
	}

	signingInput := buildSigningInput(t.headerText, t.claimsText)
	return compactSerialize(signingInput, t.signature), nil
}

// Import parses a JWS compact serialization string into a new Token.
// Verification is not performed here — call HasValidSignature
// explicitly. Import fails on malformed base64, a segment count other
// than three, a non-object header or claims JSON, an unrecognized
// "alg" header value, or a signature whose presence disagrees with
// Invariant I-1.
func Import(token string) (*Token, error) {
	headerText, claimsText, signature, err := decodeCompact(token)
	if err != nil {
		return nil, err
	}

	header, err := jsontree.Parse(headerText)
	if err != nil {
		return nil, ErrMalformedJSON
	}

	algNode, ok := header.Find("alg")
	if !ok || algNode.Type() != jsontree.String {
		return nil, ErrUnknownAlgorithm
	}

	alg, ok := parseAlgorithm(algNode.String())
	if !ok {
		return nil, ErrUnknownAlgorithm
	}

	claims, err := jsontree.Parse(claimsText)
	if err != nil {
		return nil, ErrMalformedJSON
	}

	if len(signature) > 2048 {
		return nil, ErrSignatureTooLarge
	}

	if (alg == AlgNone) != (len(signature) == 0) {
		return nil, ErrSignatureMismatch
	}

	return &Token{
		header:          header,
		headerText:      headerText,
		headerTextValid: true,
		claims:          claims,
		claimsText:      claimsText,
		claimsTextValid: true,
		alg:             alg,
		signature:       signature,
	}, nil
}
