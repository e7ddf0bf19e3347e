package introspect

// Dialect abstracts catalog differences between database engines.
// Each query takes the schema name as its only bind parameter.
type Dialect interface {
	// Name returns the database/sql driver name, e.g. "mysql" or "pgx".
	Name() string

	// ColumnsQuery selects (table, column, data type, nullable) for every
	// column in the schema, ordered by table and ordinal position.
	ColumnsQuery() string

	// KeysQuery selects (table, column, constraint name, constraint type)
	// for primary key and unique constraints.
	KeysQuery() string

	// ForeignKeysQuery selects (table, column, referenced table,
	// referenced column) for single-column foreign keys.
	ForeignKeysQuery() string
}

// MySQL is the Dialect for MySQL / MariaDB.
var MySQL Dialect = mysqlDialect{}

// PostgreSQL is the Dialect for PostgreSQL.
var PostgreSQL Dialect = postgresDialect{}

// DialectFor returns the Dialect for a driver flag value.
func DialectFor(name string) (Dialect, bool) {
	switch name {
	case "mysql", "mariadb":
		return MySQL, true
	case "postgres", "postgresql", "pgx":
		return PostgreSQL, true
	default:
		return nil, false
	}
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) ColumnsQuery() string {
	return "SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE = 'YES'" +
		" FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ?" +
		" ORDER BY TABLE_NAME, ORDINAL_POSITION"
}

func (mysqlDialect) KeysQuery() string {
	return "SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME, kcu.CONSTRAINT_NAME, tc.CONSTRAINT_TYPE" +
		" FROM information_schema.TABLE_CONSTRAINTS tc" +
		" JOIN information_schema.KEY_COLUMN_USAGE kcu" +
		" ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA AND tc.TABLE_NAME = kcu.TABLE_NAME" +
		" WHERE tc.CONSTRAINT_TYPE IN ('PRIMARY KEY', 'UNIQUE') AND tc.TABLE_SCHEMA = ?"
}

func (mysqlDialect) ForeignKeysQuery() string {
	return "SELECT kcu.TABLE_NAME, kcu.COLUMN_NAME, kcu.REFERENCED_TABLE_NAME, kcu.REFERENCED_COLUMN_NAME" +
		" FROM information_schema.KEY_COLUMN_USAGE kcu" +
		" WHERE kcu.TABLE_SCHEMA = ? AND kcu.REFERENCED_TABLE_NAME IS NOT NULL" +
		" AND (SELECT COUNT(*) FROM information_schema.KEY_COLUMN_USAGE k2" +
		" WHERE k2.TABLE_SCHEMA = kcu.TABLE_SCHEMA AND k2.TABLE_NAME = kcu.TABLE_NAME" +
		" AND k2.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME) = 1" +
		" ORDER BY kcu.TABLE_NAME, kcu.COLUMN_NAME"
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "pgx" }

func (postgresDialect) ColumnsQuery() string {
	return "SELECT table_name, column_name, data_type, is_nullable = 'YES'" +
		" FROM information_schema.columns WHERE table_schema = $1" +
		" ORDER BY table_name, ordinal_position"
}

func (postgresDialect) KeysQuery() string {
	return "SELECT kcu.table_name, kcu.column_name, kcu.constraint_name, tc.constraint_type" +
		" FROM information_schema.table_constraints tc" +
		" JOIN information_schema.key_column_usage kcu" +
		" ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema AND tc.table_name = kcu.table_name" +
		" WHERE tc.constraint_type IN ('PRIMARY KEY', 'UNIQUE') AND tc.table_schema = $1"
}

// ForeignKeysQuery reads pg_constraint directly: information_schema joins by
// constraint name, which postgres only keeps unique per table.
func (postgresDialect) ForeignKeysQuery() string {
	return "SELECT cl.relname, att.attname, rcl.relname, ratt.attname" +
		" FROM pg_catalog.pg_constraint con" +
		" JOIN pg_catalog.pg_class cl ON cl.oid = con.conrelid" +
		" JOIN pg_catalog.pg_namespace ns ON ns.oid = cl.relnamespace" +
		" JOIN pg_catalog.pg_attribute att ON att.attrelid = con.conrelid AND att.attnum = con.conkey[1]" +
		" JOIN pg_catalog.pg_class rcl ON rcl.oid = con.confrelid" +
		" JOIN pg_catalog.pg_attribute ratt ON ratt.attrelid = con.confrelid AND ratt.attnum = con.confkey[1]" +
		" WHERE con.contype = 'f' AND array_length(con.conkey, 1) = 1 AND ns.nspname = $1" +
		" ORDER BY cl.relname, att.attname"
}
