package introspect

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Logger is the interface for catalog query logging.
type Logger interface {
	Log(ctx context.Context, query string, args ...any)
}

// ColumnInfo is one row of the columns catalog.
type ColumnInfo struct {
	Table    string
	Name     string
	DataType string
	Nullable bool
}

// KeyInfo is one column of a primary key or unique constraint.
type KeyInfo struct {
	Table      string
	Column     string
	Constraint string
	Type       string // "PRIMARY KEY" or "UNIQUE"
}

// ForeignKey is a single-column foreign key.
type ForeignKey struct {
	Table     string
	Column    string
	RefTable  string
	RefColumn string
}

// Catalog is the raw metadata of one schema.
type Catalog struct {
	Columns     []ColumnInfo
	Keys        []KeyInfo
	ForeignKeys []ForeignKey
}

// Loader reads a Catalog through a Dialect.
type Loader struct {
	db     Querier
	d      Dialect
	logger Logger
}

func NewLoader(db Querier, d Dialect) *Loader {
	return &Loader{db: db, d: d}
}

// Debug returns a new *Loader that logs every catalog query using the given
// Logger. The original Loader is not modified.
func (l *Loader) Debug(logger Logger) *Loader {
	return &Loader{db: l.db, d: l.d, logger: logger}
}

// Load reads columns, keys and foreign keys of schema.
func (l *Loader) Load(ctx context.Context, schema string) (Catalog, error) {
	var c Catalog

	err := l.query(ctx, l.d.ColumnsQuery(), schema, func(rows *sql.Rows) error {
		var ci ColumnInfo
		if err := rows.Scan(&ci.Table, &ci.Name, &ci.DataType, &ci.Nullable); err != nil {
			return err //nolint:wrapcheck // wrapped by query
		}
		c.Columns = append(c.Columns, ci)
		return nil
	})
	if err != nil {
		return Catalog{}, fmt.Errorf("introspect: columns: %w", err)
	}

	err = l.query(ctx, l.d.KeysQuery(), schema, func(rows *sql.Rows) error {
		var k KeyInfo
		if err := rows.Scan(&k.Table, &k.Column, &k.Constraint, &k.Type); err != nil {
			return err //nolint:wrapcheck // wrapped by query
		}
		c.Keys = append(c.Keys, k)
		return nil
	})
	if err != nil {
		return Catalog{}, fmt.Errorf("introspect: keys: %w", err)
	}

	err = l.query(ctx, l.d.ForeignKeysQuery(), schema, func(rows *sql.Rows) error {
		var fk ForeignKey
		if err := rows.Scan(&fk.Table, &fk.Column, &fk.RefTable, &fk.RefColumn); err != nil {
			return err //nolint:wrapcheck // wrapped by query
		}
		c.ForeignKeys = append(c.ForeignKeys, fk)
		return nil
	})
	if err != nil {
		return Catalog{}, fmt.Errorf("introspect: foreign keys: %w", err)
	}

	return c, nil
}

func (l *Loader) query(ctx context.Context, query, schema string, scan func(*sql.Rows) error) error {
	if l.logger != nil {
		l.logger.Log(ctx, query, schema)
	}
	rows, err := l.db.QueryContext(ctx, query, schema)
	if err != nil {
		return err //nolint:wrapcheck // wrapped by caller
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err() //nolint:wrapcheck // wrapped by caller
}
