// Package filter implements the constraint engine: typed comparison
// predicates over entries and the ordered, conjunctive filter set a search
// session accumulates. Constraints are type-checked against the catagory
// schema when built, so evaluation itself cannot fail.
package filter

import (
	"fmt"
	"strings"

	"github.com/openapeshop/pinv/pkg/types"
)

// Op is a comparison operator.
type Op int

const (
	OpEq Op = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpContains
)

var opTokens = map[Op]string{
	OpEq:       "=",
	OpNeq:      "!=",
	OpLt:       "<",
	OpLte:      "<=",
	OpGt:       ">",
	OpGte:      ">=",
	OpContains: "~",
}

// String returns the CLI token for the operator.
func (op Op) String() string {
	if s, ok := opTokens[op]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// ParseOp parses a CLI operator token.
func ParseOp(token string) (Op, error) {
	for op, s := range opTokens {
		if s == token {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", types.ErrUnsupportedOperator, token)
}

// supported reports whether the operator applies to the field type:
// ordering is numeric-only, Contains is text-only.
func (op Op) supported(t types.FieldType) bool {
	switch op {
	case OpEq, OpNeq:
		return true
	case OpLt, OpLte, OpGt, OpGte:
		return t == types.FieldInteger || t == types.FieldReal
	case OpContains:
		return t == types.FieldText
	default:
		return false
	}
}

// Constraint is one typed predicate: field op operand. The operand's type
// always matches the field's declared type.
type Constraint struct {
	Field   types.FieldDef
	Op      Op
	Operand types.Value
}

// Entry scalars addressable in constraints alongside declared fields.
var scalarFields = map[string]types.FieldType{
	"key":      types.FieldText,
	"location": types.FieldText,
	"quantity": types.FieldInteger,
}

// New builds a type-checked constraint against a catagory. The raw operand
// is coerced to the field's type. Besides declared fields, the entry
// scalars key, location, and quantity are addressable.
func New(cat *types.Catagory, fieldName string, op Op, raw string) (Constraint, error) {
	canon := types.CanonicalName(fieldName)
	var def types.FieldDef
	if t, ok := scalarFields[canon]; ok {
		def = types.FieldDef{Name: canon, Type: t}
	} else {
		var ok bool
		def, ok = cat.Field(canon)
		if !ok {
			return Constraint{}, fmt.Errorf("%w: %q in catagory %q", types.ErrUnknownField, fieldName, cat.ID)
		}
	}
	if !op.supported(def.Type) {
		return Constraint{}, fmt.Errorf("%w: %s on %s field %q", types.ErrUnsupportedOperator, op, def.Type, def.Name)
	}
	operand, err := types.Coerce(raw, def.Type)
	if err != nil {
		return Constraint{}, err
	}
	return Constraint{Field: def, Op: op, Operand: operand}, nil
}

// ParseToken builds a constraint from the CLI search syntax
// "field<op>value", e.g. "resistance>=100" or "tolerance~5%".
func ParseToken(cat *types.Catagory, token string) (Constraint, error) {
	// Longest operators first so "<=" is not read as "<" then "=value".
	for _, opStr := range []string{"<=", ">=", "!=", "=", "<", ">", "~"} {
		i := strings.Index(token, opStr)
		if i <= 0 {
			continue
		}
		op, err := ParseOp(opStr)
		if err != nil {
			return Constraint{}, err
		}
		return New(cat, token[:i], op, token[i+len(opStr):])
	}
	return Constraint{}, fmt.Errorf("%w: %q has no operator", types.ErrUnsupportedOperator, token)
}

// Matches evaluates the constraint against one entry. Null never satisfies
// any comparison, Neq included: a row either holds a value that passes or
// it is excluded. A Null operand likewise matches nothing.
func (c Constraint) Matches(e *types.Entry) bool {
	v := c.fieldValue(e)
	if v.IsNull() || c.Operand.IsNull() {
		return false
	}
	if v.Kind() != c.Operand.Kind() {
		// Drifted data; exclusion is the safe answer here, loads report it.
		return false
	}
	switch v.Kind() {
	case types.KindText:
		return compareText(v.TextValue(), c.Op, c.Operand.TextValue())
	case types.KindInteger:
		return compareOrdered(v.IntegerValue(), c.Op, c.Operand.IntegerValue())
	case types.KindReal:
		return compareOrdered(v.RealValue(), c.Op, c.Operand.RealValue())
	default:
		return false
	}
}

func (c Constraint) fieldValue(e *types.Entry) types.Value {
	switch c.Field.Name {
	case "key":
		return types.Text(e.Key)
	case "location":
		return types.Text(e.Location)
	case "quantity":
		return types.Integer(e.Quantity)
	}
	v, ok := e.FieldValue(c.Field.Name)
	if !ok {
		return types.Null
	}
	return v
}

func compareText(v string, op Op, operand string) bool {
	switch op {
	case OpEq:
		return v == operand
	case OpNeq:
		return v != operand
	case OpContains:
		return strings.Contains(v, operand)
	default:
		return false
	}
}

// compareOrdered covers the numeric operators. Real equality is exact.
func compareOrdered[T int64 | float64](v T, op Op, operand T) bool {
	switch op {
	case OpEq:
		return v == operand
	case OpNeq:
		return v != operand
	case OpLt:
		return v < operand
	case OpLte:
		return v <= operand
	case OpGt:
		return v > operand
	case OpGte:
		return v >= operand
	default:
		return false
	}
}

// Set is an ordered, conjunctive collection of constraints scoped to one
// search or browse session. Order is append-only with pop-last undo.
type Set struct {
	constraints []Constraint
}

// Push appends a constraint.
func (s *Set) Push(c Constraint) {
	s.constraints = append(s.constraints, c)
}

// PopLast removes the most recently pushed constraint. A no-op when empty.
func (s *Set) PopLast() {
	if len(s.constraints) > 0 {
		s.constraints = s.constraints[:len(s.constraints)-1]
	}
}

// Clear removes all constraints.
func (s *Set) Clear() {
	s.constraints = nil
}

// Len returns the number of active constraints.
func (s *Set) Len() int { return len(s.constraints) }

// Constraints returns the active constraints in push order.
func (s *Set) Constraints() []Constraint { return s.constraints }

// Apply returns the entries satisfying every constraint, preserving input
// order. Evaluation is pure; applying the same set twice yields identical
// results.
func (s *Set) Apply(entries []*types.Entry) []*types.Entry {
	out := make([]*types.Entry, 0, len(entries))
	for _, e := range entries {
		ok := true
		for _, c := range s.constraints {
			if !c.Matches(e) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}
