package types

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType is the declared type of a catagory field. It fixes the
// validation and comparison semantics of every value stored under the field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldReal
)

// String returns the lower-case name of the type.
func (t FieldType) String() string {
	switch t {
	case FieldText:
		return "text"
	case FieldInteger:
		return "integer"
	case FieldReal:
		return "real"
	default:
		return fmt.Sprintf("fieldtype(%d)", int(t))
	}
}

// ParseFieldType parses a type name. Full names and the one-letter codes
// used in CLI field definitions (t, i, r) are accepted, case-insensitively.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(s) {
	case "text", "t":
		return FieldText, nil
	case "integer", "i":
		return FieldInteger, nil
	case "real", "r":
		return FieldReal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFieldType, s)
	}
}

// FieldDef declares a single named, typed field on a catagory.
type FieldDef struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

var nameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Field names reserved for entry scalars; they can never be declared.
var reservedNames = map[string]bool{
	"key":      true,
	"location": true,
	"quantity": true,
	"created":  true,
	"modified": true,
}

// CanonicalName lower-cases a field or catagory name. Names are
// case-insensitive everywhere; the canonical form is what gets stored.
func CanonicalName(name string) string {
	return strings.ToLower(name)
}

// ValidateName checks a field or catagory name against the naming rule:
// a letter or underscore followed by letters, digits, or underscores.
// Reserved entry scalar names are rejected as well.
func ValidateName(name string) error {
	if !nameRE.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
	}
	if reservedNames[CanonicalName(name)] {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidFieldName, name)
	}
	return nil
}

// NewFieldDef validates and canonicalizes a field definition.
func NewFieldDef(name string, t FieldType) (FieldDef, error) {
	if err := ValidateName(name); err != nil {
		return FieldDef{}, err
	}
	return FieldDef{Name: CanonicalName(name), Type: t}, nil
}

// ParseFieldDef parses the CLI field definition syntax "name:type",
// e.g. "max_volts:r" declares a real field named max_volts.
func ParseFieldDef(s string) (FieldDef, error) {
	name, typeStr, ok := strings.Cut(s, ":")
	if !ok {
		return FieldDef{}, fmt.Errorf("%w: %q (want name:type)", ErrInvalidFieldName, s)
	}
	t, err := ParseFieldType(typeStr)
	if err != nil {
		return FieldDef{}, err
	}
	return NewFieldDef(name, t)
}
