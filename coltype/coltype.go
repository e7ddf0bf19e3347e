// Package coltype describes the value types of mapped columns.
package coltype

import "fmt"

// Type is a column value type descriptor.
type Type interface {
	// TypeName returns a short, dialect-neutral name such as "datetime".
	TypeName() string
}

// Decorator wraps another Type, typically to attach application-level
// conversion to a storage type. Impl returns the wrapped type.
type Decorator interface {
	Type
	Impl() Type
}

// Typer can be implemented by Go field types to declare their column type
// instead of having it inferred.
type Typer interface {
	ColumnType() Type
}

type Integer struct{}

func (Integer) TypeName() string { return "integer" }

type BigInteger struct{}

func (BigInteger) TypeName() string { return "bigint" }

// String is a bounded character column. Length 0 means unbounded.
type String struct {
	Length int
}

func (s String) TypeName() string {
	if s.Length > 0 {
		return fmt.Sprintf("varchar(%d)", s.Length)
	}
	return "varchar"
}

type Text struct{}

func (Text) TypeName() string { return "text" }

type Boolean struct{}

func (Boolean) TypeName() string { return "boolean" }

type Float struct{}

func (Float) TypeName() string { return "float" }

type Numeric struct {
	Precision int
	Scale     int
}

func (n Numeric) TypeName() string {
	if n.Precision > 0 {
		return fmt.Sprintf("numeric(%d,%d)", n.Precision, n.Scale)
	}
	return "numeric"
}

type Date struct{}

func (Date) TypeName() string { return "date" }

// DateTime is a timestamp column, optionally zone-aware.
type DateTime struct {
	Timezone bool
}

func (d DateTime) TypeName() string {
	if d.Timezone {
		return "timestamptz"
	}
	return "datetime"
}

type Time struct{}

func (Time) TypeName() string { return "time" }

type Binary struct{}

func (Binary) TypeName() string { return "binary" }

type JSON struct{}

func (JSON) TypeName() string { return "json" }

// Unknown carries a type name no other descriptor covers.
type Unknown struct {
	Name string
}

func (u Unknown) TypeName() string { return u.Name }

// Decorate returns a Decorator named name that wraps impl.
func Decorate(name string, impl Type) Decorator {
	return decorated{name: name, impl: impl}
}

type decorated struct {
	name string
	impl Type
}

func (d decorated) TypeName() string { return d.name }
func (d decorated) Impl() Type       { return d.impl }
