package meta

import (
	"fmt"

	"github.com/mickamy/relkind/coltype"
)

// Attribute is a named member of an Entity: either a *Column or a *Relation.
type Attribute interface {
	// AttrName returns the key the attribute is registered under.
	AttrName() string
	attribute()
}

// Column is a scalar attribute backed by a table column.
type Column struct {
	Name       string       // attribute key, e.g. "parent_id"
	Field      string       // Go field name, e.g. "ParentID"; empty when not built from a struct
	Column     string       // column name in the table
	Type       coltype.Type // value type descriptor
	PrimaryKey bool
	Nullable   bool
	References string // target entity name when the column is a foreign key
}

func (c *Column) AttrName() string { return c.Name }
func (*Column) attribute()         {}

// Association is the declared kind of a relation, as written in a rel tag.
type Association string

const (
	AssocHasOne     Association = "has_one"
	AssocHasMany    Association = "has_many"
	AssocBelongsTo  Association = "belongs_to"
	AssocManyToMany Association = "many_to_many"
)

// Direction records which end of a foreign-key association the near side is.
// It is set when the relation is declared and never inferred.
type Direction int

const (
	// DirectionReferenced is the side pointed at by a foreign key, or either
	// side of a one-to-one.
	DirectionReferenced Direction = iota
	// DirectionReferencing is the side holding a non-unique foreign key, the
	// "many" end of a many-to-one.
	DirectionReferencing
)

func (d Direction) String() string {
	if d == DirectionReferencing {
		return "referencing"
	}
	return "referenced"
}

// Relation is an association from one entity to another.
type Relation struct {
	Name          string      // attribute key, e.g. "children"
	Field         string      // Go field name, e.g. "Children"; empty when not built from a struct
	Target        string      // target entity name
	Association   Association // declared kind
	UseList       bool        // near side holds a collection
	JoinTable     string      // link table; non-empty only for many-to-many
	Direction     Direction
	ForeignKey    string // foreign key column; on the near side for belongs_to, on the target otherwise
	References    string // many-to-many only: link table column pointing at the target
	BackPopulates string // reciprocal attribute on the target, if declared
}

func (r *Relation) AttrName() string { return r.Name }
func (*Relation) attribute()         {}

// Entity is the metadata of one mapped record type. An Entity is immutable
// once built; all lookups are by attribute key or Go field name.
type Entity struct {
	Name  string
	Table string

	order   []string
	attrs   map[string]Attribute
	aliases map[string]string
}

// NewEntity builds an Entity from copies of its attributes. Belongs-to
// relations mark their foreign key column as referencing the relation
// target; when several share a column the first declared wins.
func NewEntity(name, table string, attrs ...Attribute) (*Entity, error) {
	e := &Entity{
		Name:    name,
		Table:   table,
		order:   make([]string, 0, len(attrs)),
		attrs:   make(map[string]Attribute, len(attrs)),
		aliases: make(map[string]string),
	}
	for i, a := range attrs {
		var field string
		switch v := a.(type) {
		case *Column:
			if v == nil {
				return nil, fmt.Errorf("%w: %s attribute %d", ErrNilAttr, name, i)
			}
			c := *v
			a, field = &c, c.Field
		case *Relation:
			if v == nil {
				return nil, fmt.Errorf("%w: %s attribute %d", ErrNilAttr, name, i)
			}
			r := *v
			a, field = &r, r.Field
		default:
			return nil, fmt.Errorf("%w: %s attribute %d", ErrNilAttr, name, i)
		}

		key := a.AttrName()
		if _, ok := e.attrs[key]; ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateAttr, name, key)
		}
		e.attrs[key] = a
		e.order = append(e.order, key)
		if field != "" && field != key {
			e.aliases[field] = key
		}
	}

	for _, key := range e.order {
		rel, ok := e.attrs[key].(*Relation)
		if !ok || rel.Association != AssocBelongsTo {
			continue
		}
		for _, other := range e.order {
			if col, ok := e.attrs[other].(*Column); ok && col.Column == rel.ForeignKey && col.References == "" {
				col.References = rel.Target
			}
		}
	}
	return e, nil
}

// Attr resolves name, an attribute key or Go field name, to its Attribute.
func (e *Entity) Attr(name string) (Attribute, bool) {
	if e == nil {
		return nil, false
	}
	if a, ok := e.attrs[name]; ok {
		return a, true
	}
	if key, ok := e.aliases[name]; ok {
		return e.attrs[key], true
	}
	return nil, false
}

// Column returns the named attribute if it is a column.
func (e *Entity) Column(name string) (*Column, bool) {
	a, _ := e.Attr(name)
	c, ok := a.(*Column)
	return c, ok
}

// Relation returns the named attribute if it is a relation.
func (e *Entity) Relation(name string) (*Relation, bool) {
	a, _ := e.Attr(name)
	r, ok := a.(*Relation)
	return r, ok
}

// Attrs returns all attributes in declaration order.
func (e *Entity) Attrs() []Attribute {
	out := make([]Attribute, len(e.order))
	for i, key := range e.order {
		out[i] = e.attrs[key]
	}
	return out
}

// ColumnNames returns the keys of all column attributes in declaration order.
func (e *Entity) ColumnNames() []string {
	var names []string
	for _, key := range e.order {
		if _, ok := e.attrs[key].(*Column); ok {
			names = append(names, key)
		}
	}
	return names
}

// RelationNames returns the keys of all relation attributes in declaration order.
func (e *Entity) RelationNames() []string {
	var names []string
	for _, key := range e.order {
		if _, ok := e.attrs[key].(*Relation); ok {
			names = append(names, key)
		}
	}
	return names
}

// PrimaryKey returns the first primary key column, if any.
func (e *Entity) PrimaryKey() (*Column, bool) {
	for _, key := range e.order {
		if c, ok := e.attrs[key].(*Column); ok && c.PrimaryKey {
			return c, true
		}
	}
	return nil, false
}

func (e *Entity) IsPK(name string) bool {
	c, ok := e.Column(name)
	return ok && c.PrimaryKey
}

func (e *Entity) IsFK(name string) bool {
	c, ok := e.Column(name)
	return ok && c.References != ""
}

func (e *Entity) IsNullable(name string) bool {
	c, ok := e.Column(name)
	return ok && c.Nullable
}

// RelatedEntity returns the target entity name of a relation attribute.
func (e *Entity) RelatedEntity(name string) (string, bool) {
	r, ok := e.Relation(name)
	if !ok {
		return "", false
	}
	return r.Target, true
}

// RelatedFK returns the foreign key column of a relation attribute.
func (e *Entity) RelatedFK(name string) (string, bool) {
	r, ok := e.Relation(name)
	if !ok || r.ForeignKey == "" {
		return "", false
	}
	return r.ForeignKey, true
}
