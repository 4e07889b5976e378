package types

import (
	"fmt"
	"strings"
	"time"
)

// Catagory is a user-defined schema: a case-insensitive id and an ordered
// set of typed fields. Existing fields are immutable once the catagory is
// created; schema evolution is additive-only so that every entry ever
// written stays readable.
type Catagory struct {
	ID        string     `json:"id"`
	Fields    []FieldDef `json:"fields"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewCatagory validates and canonicalizes a catagory definition. The id
// obeys the same naming rule as field names. At least one field is
// required, and field names must be unique case-insensitively.
func NewCatagory(id string, fields []FieldDef) (*Catagory, error) {
	if err := ValidateName(id); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySchema, id)
	}
	c := &Catagory{ID: CanonicalName(id)}
	for _, f := range fields {
		def, err := NewFieldDef(f.Name, f.Type)
		if err != nil {
			return nil, err
		}
		if c.HasField(def.Name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, def.Name)
		}
		c.Fields = append(c.Fields, def)
	}
	return c, nil
}

// Field resolves a declared field by case-insensitive name.
func (c *Catagory) Field(name string) (FieldDef, bool) {
	canon := CanonicalName(name)
	for _, f := range c.Fields {
		if f.Name == canon {
			return f, true
		}
	}
	return FieldDef{}, false
}

// HasField reports whether a field with the given name is declared.
func (c *Catagory) HasField(name string) bool {
	_, ok := c.Field(name)
	return ok
}

// AddField appends a new field to the schema. Additive-only: it never
// touches existing fields. Returns ErrDuplicateField on a name collision.
func (c *Catagory) AddField(name string, t FieldType) (FieldDef, error) {
	def, err := NewFieldDef(name, t)
	if err != nil {
		return FieldDef{}, err
	}
	if c.HasField(def.Name) {
		return FieldDef{}, fmt.Errorf("%w: %q", ErrDuplicateField, def.Name)
	}
	c.Fields = append(c.Fields, def)
	return def, nil
}

// String renders the catagory the way the CLI prints it:
//
//	CATAGORY resistors:
//	    resistance: real
//	    tolerance:  text
func (c *Catagory) String() string {
	pad := 0
	for _, f := range c.Fields {
		if len(f.Name) > pad {
			pad = len(f.Name)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "CATAGORY %s:", c.ID)
	for _, f := range c.Fields {
		fmt.Fprintf(&b, "\n    %s:%*s %s", f.Name, pad-len(f.Name), "", f.Type)
	}
	return b.String()
}
