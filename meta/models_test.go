package meta_test

import (
	"testing"
	"time"

	"github.com/mickamy/relkind/coltype"
	"github.com/mickamy/relkind/meta"
)

type Parent struct {
	ID            int
	Name          string
	FavoriteChild *FavoriteChild `rel:"has_one,foreign_key:parent_id,back_populates:Parent"`
	Children      []Child        `rel:"has_many,foreign_key:parent_id,back_populates:Parent"`
	Neighbours    []Neighbour    `rel:"many_to_many,join_table:association,foreign_key:parent_id,references:neighbour_id"`
}

type FavoriteChild struct {
	ID       int
	ParentID int
	Parent   *Parent `rel:"belongs_to,foreign_key:parent_id,unique,back_populates:FavoriteChild"`
}

type Child struct {
	ID       int
	ParentID int
	Parent   *Parent `rel:"belongs_to,foreign_key:parent_id,back_populates:Children"`
}

type Neighbour struct {
	ID      int
	Parents []Parent `rel:"many_to_many,join_table:association,foreign_key:neighbour_id,references:parent_id"`
}

// Headache points at Parent without any reciprocal attribute.
type Headache struct {
	ID       int
	ParentID *int
	Parent   *Parent `rel:"belongs_to,foreign_key:parent_id"`
}

type utcDateTime struct{}

func (utcDateTime) TypeName() string   { return "utc_datetime" }
func (utcDateTime) Impl() coltype.Type { return coltype.DateTime{Timezone: true} }

type createdAt time.Time

func (createdAt) ColumnType() coltype.Type { return utcDateTime{} }

type Event struct {
	ID        int64     `db:"event_id,primaryKey"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	Payload   []byte    `db:"payload"`
	Price     float64   `db:"price"`
	Done      bool      `db:"done"`
	StartsAt  time.Time `db:"starts_at"`
	CreatedAt createdAt `db:"created_at"`
	Secret    string    `db:"-"`
	internal  string
}

func (Event) TableName() string { return "calendar_events" }

func newRegistry(t *testing.T) *meta.Registry {
	t.Helper()

	r := meta.NewRegistry()
	if err := r.Register(Parent{}, FavoriteChild{}, &Child{}, Neighbour{}, Headache{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return r
}

func mustEntity(t *testing.T, r *meta.Registry, name string) *meta.Entity {
	t.Helper()

	e, ok := r.Entity(name)
	if !ok {
		t.Fatalf("entity %s not registered", name)
	}
	return e
}
