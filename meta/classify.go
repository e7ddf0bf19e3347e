package meta

// Kind is the cardinality class of a relation.
type Kind int

const (
	OneToOne Kind = iota + 1
	OneToMany
	ManyToOne
	ManyToMany
)

func (k Kind) String() string {
	switch k {
	case OneToOne:
		return "one_to_one"
	case OneToMany:
		return "one_to_many"
	case ManyToOne:
		return "many_to_one"
	case ManyToMany:
		return "many_to_many"
	default:
		return "none"
	}
}

// Classify returns the cardinality of r. The result depends only on the link
// table, UseList and Direction; names and reciprocal attributes play no part.
// A nil relation has no kind.
func Classify(r *Relation) Kind {
	switch {
	case r == nil:
		return 0
	case r.JoinTable != "":
		return ManyToMany
	case r.UseList:
		return OneToMany
	case r.Direction == DirectionReferencing:
		return ManyToOne
	default:
		return OneToOne
	}
}

// Kind classifies the named attribute. ok is false for unknown attributes
// and columns.
func (e *Entity) Kind(name string) (k Kind, ok bool) {
	r, ok := e.Relation(name)
	if !ok {
		return 0, false
	}
	return Classify(r), true
}

// IsRelation reports whether name resolves to a relation rather than a column.
func (e *Entity) IsRelation(name string) bool {
	_, ok := e.Relation(name)
	return ok
}

func (e *Entity) IsOneToOne(name string) bool   { return e.is(name, OneToOne) }
func (e *Entity) IsOneToMany(name string) bool  { return e.is(name, OneToMany) }
func (e *Entity) IsManyToOne(name string) bool  { return e.is(name, ManyToOne) }
func (e *Entity) IsManyToMany(name string) bool { return e.is(name, ManyToMany) }

func (e *Entity) is(name string, want Kind) bool {
	k, ok := e.Kind(name)
	return ok && k == want
}
