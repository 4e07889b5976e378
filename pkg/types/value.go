package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindReal
)

// Value is a closed tagged union over the runtime field value variants:
// text, integer, real, or null. The zero Value is Null. Every comparison
// and serialization site switches exhaustively on Kind so that type
// mismatches surface as errors rather than silent coercions.
type Value struct {
	kind    Kind
	text    string
	integer int64
	real    float64
}

// Null is the absent value. It is well-typed for every field type.
var Null = Value{}

// Text wraps a string value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Integer wraps an int64 value.
func Integer(i int64) Value { return Value{kind: KindInteger, integer: i} }

// Real wraps a float64 value.
func Real(f float64) Value { return Value{kind: KindReal, real: f} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// TextValue returns the text variant. Valid only when Kind is KindText.
func (v Value) TextValue() string { return v.text }

// IntegerValue returns the integer variant. Valid only when Kind is KindInteger.
func (v Value) IntegerValue() int64 { return v.integer }

// RealValue returns the real variant. Valid only when Kind is KindReal.
func (v Value) RealValue() float64 { return v.real }

// Matches reports whether the value is well-typed for a field of type t.
// Null matches every type.
func (v Value) Matches(t FieldType) bool {
	switch v.kind {
	case KindNull:
		return true
	case KindText:
		return t == FieldText
	case KindInteger:
		return t == FieldInteger
	case KindReal:
		return t == FieldReal
	default:
		return false
	}
}

// Render returns the canonical string form of the value. Null renders as
// the empty string. Reals use the shortest representation that round-trips
// exactly, so rendering then re-parsing preserves bit equality.
func (v Value) Render() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindReal:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	default:
		return ""
	}
}

// String implements fmt.Stringer via Render.
func (v Value) String() string { return v.Render() }

// Equal reports exact equality of tag and payload. Real equality is exact,
// not epsilon-tolerant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindText:
		return v.text == o.text
	case KindInteger:
		return v.integer == o.integer
	case KindReal:
		return v.real == o.real
	default:
		return false
	}
}

// Coerce parses raw caller input into a value of field type t. Blank input
// (after trimming) coerces to Null, which is how callers clear a field.
// Returns ErrTypeMismatch when the input cannot be parsed as t.
func Coerce(raw string, t FieldType) (Value, error) {
	if strings.TrimSpace(raw) == "" {
		return Null, nil
	}
	switch t {
	case FieldText:
		return Text(raw), nil
	case FieldInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Null, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, raw)
		}
		return Integer(i), nil
	case FieldReal:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Null, fmt.Errorf("%w: %q is not a real", ErrTypeMismatch, raw)
		}
		return Real(f), nil
	default:
		return Null, fmt.Errorf("%w: %v", ErrInvalidFieldType, t)
	}
}

// MarshalJSON renders the value as native JSON: null, string, or number.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindText:
		return json.Marshal(v.text)
	case KindInteger:
		return json.Marshal(v.integer)
	case KindReal:
		return json.Marshal(v.real)
	default:
		return nil, fmt.Errorf("marshaling value: unknown kind %d", v.kind)
	}
}
