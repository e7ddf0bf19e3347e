package meta_test

import (
	"errors"
	"testing"

	"github.com/mickamy/relkind/coltype"
	"github.com/mickamy/relkind/meta"
)

func TestDescribe(t *testing.T) {
	t.Parallel()

	e, err := meta.Describe(&Parent{})
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if e.Name != "Parent" || e.Table != "parents" {
		t.Errorf("Name, Table = %q, %q", e.Name, e.Table)
	}

	wantCols := []string{"id", "name"}
	if got := e.ColumnNames(); !equalStrings(got, wantCols) {
		t.Errorf("ColumnNames() = %v, want %v", got, wantCols)
	}
	wantRels := []string{"favorite_child", "children", "neighbours"}
	if got := e.RelationNames(); !equalStrings(got, wantRels) {
		t.Errorf("RelationNames() = %v, want %v", got, wantRels)
	}

	rel, ok := e.Relation("neighbours")
	if !ok {
		t.Fatal("neighbours is not a relation")
	}
	if rel.Target != "Neighbour" || rel.JoinTable != "association" || rel.References != "neighbour_id" || !rel.UseList {
		t.Errorf("neighbours = %+v", rel)
	}
	if !e.IsPK("id") || e.IsPK("name") {
		t.Error("IsPK mismatch")
	}
}

func TestDescribeForeignKeys(t *testing.T) {
	t.Parallel()

	e, err := meta.DescribeType[Headache]()
	if err != nil {
		t.Fatalf("DescribeType: %v", err)
	}
	if !e.IsFK("parent_id") || !e.IsFK("ParentID") {
		t.Error("parent_id is not marked as a foreign key")
	}
	if e.IsFK("id") || e.IsFK("parent") {
		t.Error("IsFK reported a non foreign key")
	}
	if !e.IsNullable("parent_id") {
		t.Error("*int column is not nullable")
	}
	if target, ok := e.RelatedEntity("parent"); !ok || target != "Parent" {
		t.Errorf("RelatedEntity(parent) = %q, %v", target, ok)
	}
	if fk, ok := e.RelatedFK("parent"); !ok || fk != "parent_id" {
		t.Errorf("RelatedFK(parent) = %q, %v", fk, ok)
	}
	if _, ok := e.RelatedEntity("parent_id"); ok {
		t.Error("RelatedEntity on a column reported ok")
	}
}

func TestDescribeColumns(t *testing.T) {
	t.Parallel()

	e, err := meta.Describe(Event{})
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if e.Table != "calendar_events" {
		t.Errorf("Table = %q, want calendar_events", e.Table)
	}

	// Secret is db:"-", internal is unexported.
	if len(e.Attrs()) != 8 {
		t.Fatalf("len(Attrs()) = %d, want 8", len(e.Attrs()))
	}
	pk, ok := e.PrimaryKey()
	if !ok || pk.Column != "event_id" {
		t.Errorf("PrimaryKey() = %+v, %v", pk, ok)
	}

	tests := []struct {
		name  string
		check func(string) bool
		attr  string
	}{
		{"IsInteger", e.IsInteger, "id"},
		{"IsString", e.IsString, "title"},
		{"IsBinary", e.IsBinary, "payload"},
		{"IsFloat", e.IsFloat, "price"},
		{"IsBoolean", e.IsBoolean, "done"},
		{"IsDateTime", e.IsDateTime, "starts_at"},
		{"IsDateTime decorated", e.IsDateTime, "created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !tt.check(tt.attr) {
				t.Errorf("%s(%q) = false, want true", tt.name, tt.attr)
			}
		})
	}

	if e.IsDateTime("title") || e.IsString("missing") || e.IsText("title") {
		t.Error("type helper matched the wrong column")
	}
	if !meta.ColumnIs[utcDateTime](e, "created_at") {
		t.Error("ColumnIs[utcDateTime](created_at) = false")
	}
	col, _ := e.Column("created_at")
	if !coltype.Is[coltype.DateTime](col.Type) {
		t.Errorf("created_at type %T does not wrap DateTime", col.Type)
	}
}

type badHasMany struct {
	ID    int
	Child *Child `rel:"has_many,foreign_key:parent_id"`
}

type badBelongsTo struct {
	ID      int
	Parents []Parent `rel:"belongs_to,foreign_key:parent_id"`
}

type badTarget struct {
	ID   int
	Tags []string `rel:"has_many,foreign_key:owner_id"`
}

type badKind struct {
	ID     int
	Parent *Parent `rel:"owns,foreign_key:parent_id"`
}

func TestDescribeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		model any
		want  error
	}{
		{"not a struct", 42, meta.ErrNotStruct},
		{"nil", nil, meta.ErrNotStruct},
		{"has_many on pointer", badHasMany{}, meta.ErrInvalidTag},
		{"belongs_to on slice", badBelongsTo{}, meta.ErrInvalidTag},
		{"non-struct target", badTarget{}, meta.ErrInvalidTag},
		{"unknown kind", badKind{}, meta.ErrInvalidTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := meta.Describe(tt.model)
			if !errors.Is(err, tt.want) {
				t.Errorf("Describe() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
