// Package jsontree is a minimal JSON tree adapter used by the jwt package
// to build and inspect JOSE headers and claim sets.
//
// It deliberately does not marshal through Go structs: the JWS compact
// serialization requires that verification re-hash the exact bytes that
// were signed, and re-marshaling a decoded document through
// encoding/json can reorder keys or change whitespace. Object therefore
// keeps the canonical JSON text around and mutates it in place (via
// sjson) rather than building an intermediate tree and re-encoding it.
package jsontree

import (
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrMalformedJSON is returned when text is not valid JSON.
var ErrMalformedJSON = errors.New("jsontree: malformed JSON")

// ErrNotObject is returned when text decodes to something other than a
// JSON object (an array, scalar, or null at the top level).
var ErrNotObject = errors.New("jsontree: not a JSON object")

// Type mirrors the small set of JSON value kinds the jwt package needs
// to distinguish when reading a claim or header member.
type Type int

// The recognized value kinds. Null is also returned for members that
// are simply absent, matching the "missing means null" convention used
// throughout the jwt package's claim getters.
const (
	Null Type = iota
	False
	True
	Number
	String
	Array
	ObjectKind
)

// Object is a mutable JSON object backed by its canonical text form.
type Object struct {
	text string
}

// New returns an empty JSON object, "{}".
func New() *Object {
	return &Object{text: "{}"}
}

// Parse decodes text into an Object. It fails if text is not valid JSON
// or does not decode to a JSON object at the top level.
func Parse(text string) (*Object, error) {
	if !gjson.Valid(text) {
		return nil, ErrMalformedJSON
	}

	result := gjson.Parse(text)
	if !result.IsObject() {
		return nil, ErrNotObject
	}

	return &Object{text: text}, nil
}

// Export returns the object's canonical JSON text, exactly as it stands
// after the last mutation — the same bytes a caller would hash.
func (o *Object) Export() string {
	return o.text
}

// Find looks up a top-level member by name. The second return value
// reports whether the member exists.
func (o *Object) Find(name string) (Value, bool) {
	result := gjson.Get(o.text, escapeKey(name))
	if !result.Exists() {
		return Value{}, false
	}

	return Value{result: result}, true
}

// SetString sets (or replaces) a top-level string member.
func (o *Object) SetString(name, value string) {
	o.text, _ = sjson.Set(o.text, escapeKey(name), value)
}

// SetNumber sets (or replaces) a top-level numeric member.
func (o *Object) SetNumber(name string, value float64) {
	o.text, _ = sjson.Set(o.text, escapeKey(name), value)
}

// SetBool sets (or replaces) a top-level boolean member.
func (o *Object) SetBool(name string, value bool) {
	o.text, _ = sjson.Set(o.text, escapeKey(name), value)
}

// SetRaw sets (or replaces) a top-level member to an arbitrary JSON
// value given as already-encoded text, e.g. an object, array, or null.
func (o *Object) SetRaw(name, rawJSON string) error {
	if !gjson.Valid(rawJSON) {
		return ErrMalformedJSON
	}

	text, err := sjson.SetRaw(o.text, escapeKey(name), rawJSON)
	if err != nil {
		return err
	}

	o.text = text
	return nil
}

// Delete removes a top-level member, if present. Deleting an absent
// member is a no-op.
func (o *Object) Delete(name string) {
	o.text, _ = sjson.Delete(o.text, escapeKey(name))
}

// Keys returns the object's top-level member names in their on-the-wire
// order.
func (o *Object) Keys() []string {
	var names []string
	gjson.Parse(o.text).ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})
	return names
}

// Value is a read-only handle to a JSON value found within an Object.
type Value struct {
	result gjson.Result
}

// Type reports the JSON kind of the value.
func (v Value) Type() Type {
	switch v.result.Type {
	case gjson.False:
		return False
	case gjson.Number:
		return Number
	case gjson.String:
		return String
	case gjson.True:
		return True
	case gjson.JSON:
		if v.result.IsArray() {
			return Array
		}
		return ObjectKind
	default:
		return Null
	}
}

// String returns the value as a string, or "" if it is not a string.
func (v Value) String() string {
	if v.result.Type != gjson.String {
		return ""
	}
	return v.result.Str
}

// Number returns the value as a float64, or 0 if it is not a number.
func (v Value) Number() float64 {
	if v.result.Type != gjson.Number {
		return 0
	}
	return v.result.Num
}

// Raw returns the value's exact JSON text.
func (v Value) Raw() string {
	return v.result.Raw
}

// escapeKey escapes gjson/sjson path metacharacters in a flat member
// name so that arbitrary claim names (including ones containing "."
// such as "http://example.com/is_root") are treated as a single,
// shallow object key rather than a nested path.
func escapeKey(name string) string {
	needsEscape := false
	for _, r := range name {
		switch r {
		case '.', '*', '?', '|', '\\':
			needsEscape = true
		}
		if needsEscape {
			break
		}
	}
	if !needsEscape {
		return name
	}

	escaped := make([]byte, 0, len(name)+4)
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '.', '*', '?', '|', '\\':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, name[i])
	}

	return string(escaped)
}
