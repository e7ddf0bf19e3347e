package meta

import (
	"errors"
	"fmt"
	"sort"
)

// Registry holds the entities of one model set, keyed by entity name.
// It is populated at start-up and read-only afterwards.
type Registry struct {
	entities map[string]*Entity
}

func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]*Entity)}
}

// Register describes each model by reflection and adds it.
func (r *Registry) Register(models ...any) error {
	for _, m := range models {
		e, err := Describe(m)
		if err != nil {
			return err
		}
		if err := r.Add(e); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on error. Intended for package
// level model declarations.
func (r *Registry) MustRegister(models ...any) *Registry {
	if err := r.Register(models...); err != nil {
		panic(err)
	}
	return r
}

// Add adds already built entities.
func (r *Registry) Add(entities ...*Entity) error {
	for _, e := range entities {
		if e == nil {
			return ErrNilEntity
		}
		if _, ok := r.entities[e.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateEntity, e.Name)
		}
		r.entities[e.Name] = e
	}
	return nil
}

func (r *Registry) Entity(name string) (*Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// Entities returns all entities sorted by name.
func (r *Registry) Entities() []*Entity {
	out := make([]*Entity, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validate checks that every relation target is registered and that every
// back_populates names a relation on the target that points back.
func (r *Registry) Validate() error {
	var errs []error
	for _, e := range r.Entities() {
		for _, name := range e.RelationNames() {
			rel, _ := e.Relation(name)
			target, ok := r.entities[rel.Target]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s.%s -> %s", ErrUnknownTarget, e.Name, name, rel.Target))
				continue
			}
			if rel.BackPopulates == "" {
				continue
			}
			back, ok := target.Relation(rel.BackPopulates)
			if !ok || back.Target != e.Name {
				errs = append(errs, fmt.Errorf("%w: %s.%s -> %s.%s", ErrBackPopulates, e.Name, name, rel.Target, rel.BackPopulates))
				continue
			}
			if back.BackPopulates != "" {
				if self, ok := e.Relation(back.BackPopulates); !ok || self != rel {
					errs = append(errs, fmt.Errorf("%w: %s.%s -> %s.%s", ErrBackPopulates, rel.Target, back.Name, e.Name, back.BackPopulates))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Reciprocal returns the relation on the target entity that mirrors the
// named relation, either declared through back_populates on this side or
// back_populates on the other. Classification never consults it.
func (r *Registry) Reciprocal(entity, name string) (*Relation, bool) {
	e, ok := r.entities[entity]
	if !ok {
		return nil, false
	}
	rel, ok := e.Relation(name)
	if !ok {
		return nil, false
	}
	target, ok := r.entities[rel.Target]
	if !ok {
		return nil, false
	}
	if rel.BackPopulates != "" {
		back, ok := target.Relation(rel.BackPopulates)
		if ok && back.Target == e.Name {
			return back, true
		}
		return nil, false
	}
	for _, tn := range target.RelationNames() {
		back, _ := target.Relation(tn)
		if back.Target != e.Name || back.BackPopulates == "" {
			continue
		}
		if self, ok := e.Relation(back.BackPopulates); ok && self == rel {
			return back, true
		}
	}
	return nil, false
}
