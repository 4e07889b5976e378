package types

import "errors"

// Schema registry errors.
var (
	ErrCatagoryNotFound  = errors.New("catagory not found")
	ErrDuplicateCatagory = errors.New("catagory already exists")
	ErrEmptySchema       = errors.New("catagory must declare at least one field")
	ErrInvalidFieldName  = errors.New("invalid field name")
	ErrInvalidFieldType  = errors.New("invalid field type")
	ErrDuplicateField    = errors.New("duplicate field name")
)

// Entry store errors.
var (
	ErrEntryNotFound        = errors.New("entry not found")
	ErrDuplicateKey         = errors.New("entry key already exists")
	ErrInvalidKey           = errors.New("invalid entry key")
	ErrUnknownField         = errors.New("field not declared by catagory")
	ErrTypeMismatch         = errors.New("value type does not match field type")
	ErrNegativeQuantity     = errors.New("quantity must not be negative")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrCorruptEntry         = errors.New("stored entry disagrees with its catagory schema")
)

// Constraint engine errors.
var (
	ErrUnsupportedOperator = errors.New("operator not supported for field type")
)

// Template engine errors.
var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrCorruptTemplate    = errors.New("template is corrupt")
	ErrUnboundPlaceholder = errors.New("template placeholder not bound by catagory")
)

// ErrStorage marks failures of the backing store itself (I/O, corruption),
// as opposed to validation errors. Callers test with errors.Is.
var ErrStorage = errors.New("storage failure")
