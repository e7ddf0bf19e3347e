package introspect_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mickamy/relkind/introspect"
)

type recordingLogger struct {
	queries []string
}

func (l *recordingLogger) Log(_ context.Context, query string, _ ...any) {
	l.queries = append(l.queries, query)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	for _, d := range []introspect.Dialect{introspect.MySQL, introspect.PostgreSQL} {
		t.Run(d.Name(), func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock.New: %v", err)
			}
			t.Cleanup(func() { _ = db.Close() })

			mock.ExpectQuery(regexp.QuoteMeta(d.ColumnsQuery())).
				WithArgs("app").
				WillReturnRows(sqlmock.NewRows([]string{"table", "column", "type", "nullable"}).
					AddRow("parent", "id", "integer", false).
					AddRow("child", "id", "integer", false).
					AddRow("child", "parent_id", "integer", true))
			mock.ExpectQuery(regexp.QuoteMeta(d.KeysQuery())).
				WithArgs("app").
				WillReturnRows(sqlmock.NewRows([]string{"table", "column", "constraint", "type"}).
					AddRow("parent", "id", "parent_pkey", "PRIMARY KEY").
					AddRow("child", "id", "child_pkey", "PRIMARY KEY"))
			mock.ExpectQuery(regexp.QuoteMeta(d.ForeignKeysQuery())).
				WithArgs("app").
				WillReturnRows(sqlmock.NewRows([]string{"table", "column", "ref_table", "ref_column"}).
					AddRow("child", "parent_id", "parent", "id"))

			logger := &recordingLogger{}
			c, err := introspect.NewLoader(db, d).Debug(logger).Load(t.Context(), "app")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}

			if len(c.Columns) != 3 || len(c.Keys) != 2 || len(c.ForeignKeys) != 1 {
				t.Fatalf("Catalog = %+v", c)
			}
			if !c.Columns[2].Nullable || c.Columns[2].Table != "child" {
				t.Errorf("Columns[2] = %+v", c.Columns[2])
			}
			want := introspect.ForeignKey{Table: "child", Column: "parent_id", RefTable: "parent", RefColumn: "id"}
			if c.ForeignKeys[0] != want {
				t.Errorf("ForeignKeys[0] = %+v, want %+v", c.ForeignKeys[0], want)
			}
			if len(logger.queries) != 3 {
				t.Errorf("logged %d queries, want 3", len(logger.queries))
			}

			entities, err := introspect.Build(c)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if len(entities) != 2 || !entities[0].IsManyToOne("parent") {
				t.Errorf("Build() = %v", entities)
			}
		})
	}
}

func TestLoadError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	errDown := errors.New("connection refused")
	mock.ExpectQuery(regexp.QuoteMeta(introspect.PostgreSQL.ColumnsQuery())).
		WithArgs("public").
		WillReturnError(errDown)

	_, err = introspect.NewLoader(db, introspect.PostgreSQL).Load(t.Context(), "public")
	if !errors.Is(err, errDown) {
		t.Errorf("Load() error = %v, want %v", err, errDown)
	}
}

func TestLoadScanError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery(regexp.QuoteMeta(introspect.MySQL.ColumnsQuery())).
		WithArgs("app").
		WillReturnRows(sqlmock.NewRows([]string{"table", "column"}).AddRow("parent", "id"))

	if _, err := introspect.NewLoader(db, introspect.MySQL).Load(t.Context(), "app"); err == nil {
		t.Error("Load() error = nil, want scan error")
	}
}

func TestDialectFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  introspect.Dialect
		ok    bool
	}{
		{"mysql", introspect.MySQL, true},
		{"postgres", introspect.PostgreSQL, true},
		{"pgx", introspect.PostgreSQL, true},
		{"sqlite", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, ok := introspect.DialectFor(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("DialectFor(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDialectQueries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"postgres keys join on table", introspect.PostgreSQL.KeysQuery(), []string{"tc.table_name = kcu.table_name", "$1"}},
		{"postgres single column foreign keys", introspect.PostgreSQL.ForeignKeysQuery(), []string{"array_length(con.conkey, 1) = 1", "con.conrelid", "$1"}},
		{"mysql keys join on table", introspect.MySQL.KeysQuery(), []string{"tc.TABLE_NAME = kcu.TABLE_NAME", "?"}},
		{"mysql single column foreign keys", introspect.MySQL.ForeignKeysQuery(), []string{"COUNT(*)", "k2.TABLE_NAME = kcu.TABLE_NAME", "?"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, w := range tt.want {
				if !strings.Contains(tt.query, w) {
					t.Errorf("query %q does not contain %q", tt.query, w)
				}
			}
		})
	}
}
