package meta

import (
	"fmt"
	"strings"

	"github.com/mickamy/relkind/coltype"
	"github.com/mickamy/relkind/internal/naming"
)

// RelTag is the parsed form of a rel struct tag:
//
//	rel:"has_many,foreign_key:parent_id,back_populates:Parent"
//	rel:"belongs_to,foreign_key:parent_id,unique"
//	rel:"many_to_many,join_table:association,foreign_key:parent_id,references:neighbour_id"
type RelTag struct {
	Association   Association
	ForeignKey    string
	JoinTable     string
	References    string
	BackPopulates string
	Unique        bool // belongs_to only: the foreign key is unique, so the relation is one-to-one
}

// ParseRelTag parses the value of a rel tag.
func ParseRelTag(s string) (RelTag, error) {
	parts := strings.Split(s, ",")
	t := RelTag{Association: Association(strings.TrimSpace(parts[0]))}
	switch t.Association {
	case AssocHasOne, AssocHasMany, AssocBelongsTo, AssocManyToMany:
	default:
		return RelTag{}, fmt.Errorf("%w: unknown relation kind %q", ErrInvalidTag, parts[0])
	}

	for _, opt := range parts[1:] {
		opt = strings.TrimSpace(opt)
		key, value, _ := strings.Cut(opt, ":")
		switch key {
		case "foreign_key":
			t.ForeignKey = value
		case "join_table":
			t.JoinTable = value
		case "references":
			t.References = value
		case "back_populates":
			t.BackPopulates = value
		case "unique":
			t.Unique = true
		case "":
		default:
			return RelTag{}, fmt.Errorf("%w: unknown rel option %q", ErrInvalidTag, opt)
		}
	}

	if t.Association == AssocManyToMany && t.JoinTable == "" {
		return RelTag{}, fmt.Errorf("%w: many_to_many requires join_table", ErrInvalidTag)
	}
	if t.Association != AssocManyToMany && (t.JoinTable != "" || t.References != "") {
		return RelTag{}, fmt.Errorf("%w: join_table and references are only valid for many_to_many", ErrInvalidTag)
	}
	if t.Unique && t.Association != AssocBelongsTo {
		return RelTag{}, fmt.Errorf("%w: unique is only valid for belongs_to", ErrInvalidTag)
	}
	return t, nil
}

// Relation builds the descriptor for a field carrying this tag. isSlice
// reports whether the field holds a collection; it must agree with the
// declared kind.
func (t RelTag) Relation(field, target string, isSlice bool) (*Relation, error) {
	r := &Relation{
		Name:          naming.CamelToSnake(field),
		Field:         field,
		Target:        target,
		Association:   t.Association,
		ForeignKey:    t.ForeignKey,
		BackPopulates: t.BackPopulates,
	}

	switch t.Association {
	case AssocHasMany:
		r.UseList = true
	case AssocManyToMany:
		r.UseList = true
		r.JoinTable = t.JoinTable
		r.References = t.References
	case AssocBelongsTo:
		if !t.Unique {
			r.Direction = DirectionReferencing
		}
	}

	if r.UseList != isSlice {
		return nil, fmt.Errorf("%w: %s on field %s: collection mismatch", ErrInvalidTag, t.Association, field)
	}
	return r, nil
}

// FieldColumn builds the Column for a struct field. dbTag is the raw db tag
// value, empty when the field has none. ok is false when the tag skips the
// field.
//
// Without a tag the column name is the snake_case field name and a field
// named ID is the primary key.
func FieldColumn(field, dbTag string, typ coltype.Type, nullable bool) (c *Column, ok bool) {
	if dbTag == "-" {
		return nil, false
	}

	c = &Column{
		Name:       naming.CamelToSnake(field),
		Field:      field,
		Column:     naming.CamelToSnake(field),
		Type:       typ,
		PrimaryKey: field == "ID",
		Nullable:   nullable,
	}

	parts := strings.Split(dbTag, ",")
	if parts[0] != "" {
		c.Column = parts[0]
	}
	for _, opt := range parts[1:] {
		switch opt {
		case "primaryKey":
			c.PrimaryKey = true
		case "nullable":
			c.Nullable = true
		}
	}
	return c, true
}
