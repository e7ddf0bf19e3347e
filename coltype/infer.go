package coltype

import (
	"reflect"
	"strings"
)

var typerType = reflect.TypeFor[Typer]()

// FromGoType infers the column type of a Go field type. Pointers and
// sql.Null* wrappers are reported as nullable.
func FromGoType(rt reflect.Type) (t Type, nullable bool) {
	if rt.Kind() == reflect.Pointer {
		t, _ := FromGoType(rt.Elem())
		return t, true
	}
	if rt.Kind() != reflect.Interface {
		if rt.Implements(typerType) {
			return reflect.Zero(rt).Interface().(Typer).ColumnType(), false //nolint:forcetypeassert // checked by Implements
		}
		if reflect.PointerTo(rt).Implements(typerType) {
			return reflect.New(rt).Interface().(Typer).ColumnType(), false //nolint:forcetypeassert // checked by Implements
		}
	}
	name := rt.Name()
	if rt.PkgPath() != "" {
		name = rt.PkgPath()[strings.LastIndex(rt.PkgPath(), "/")+1:] + "." + name
	}
	if name == "" {
		// unnamed composite such as []byte
		name = rt.String()
	}
	if t, nullable, ok := fromGoName(name); ok {
		return t, nullable
	}
	return fromKind(rt), false
}

// FromGoName infers the column type from a Go type expression as written in
// source, e.g. "int64", "*string", "time.Time", "sql.NullString".
func FromGoName(name string) (t Type, nullable bool) {
	if strings.HasPrefix(name, "*") {
		t, _ := FromGoName(name[1:])
		return t, true
	}
	if t, nullable, ok := fromGoName(name); ok {
		return t, nullable
	}
	return Unknown{Name: name}, false
}

func fromGoName(name string) (Type, bool, bool) {
	switch name {
	case "int", "int8", "int16", "int32", "uint", "uint8", "uint16", "uint32":
		return Integer{}, false, true
	case "int64", "uint64":
		return BigInteger{}, false, true
	case "string":
		return String{}, false, true
	case "bool":
		return Boolean{}, false, true
	case "float32", "float64":
		return Float{}, false, true
	case "[]byte", "[]uint8":
		return Binary{}, false, true
	case "json.RawMessage":
		return JSON{}, false, true
	case "time.Time":
		return DateTime{}, false, true
	case "time.Duration":
		return BigInteger{}, false, true
	case "sql.NullString":
		return String{}, true, true
	case "sql.NullInt16", "sql.NullInt32", "sql.NullByte":
		return Integer{}, true, true
	case "sql.NullInt64":
		return BigInteger{}, true, true
	case "sql.NullBool":
		return Boolean{}, true, true
	case "sql.NullFloat64":
		return Float{}, true, true
	case "sql.NullTime":
		return DateTime{}, true, true
	}
	return nil, false, false
}

func fromKind(rt reflect.Type) Type {
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return Integer{}
	case reflect.Int64, reflect.Uint64:
		return BigInteger{}
	case reflect.String:
		return String{}
	case reflect.Bool:
		return Boolean{}
	case reflect.Float32, reflect.Float64:
		return Float{}
	case reflect.Map:
		return JSON{}
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return Binary{}
		}
		return JSON{}
	default:
		return Unknown{Name: rt.String()}
	}
}

// FromSQLName maps a catalog data type (information_schema DATA_TYPE or
// udt name) to a descriptor. Unrecognised names become Unknown.
func FromSQLName(name string) Type {
	n := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(n, '('); i >= 0 {
		n = strings.TrimSpace(n[:i])
	}
	switch n {
	case "int", "integer", "int4", "smallint", "int2", "tinyint", "mediumint", "serial", "smallserial":
		return Integer{}
	case "bigint", "int8", "bigserial":
		return BigInteger{}
	case "varchar", "character varying", "char", "character", "bpchar", "nvarchar", "citext", "uuid":
		return String{}
	case "text", "tinytext", "mediumtext", "longtext":
		return Text{}
	case "boolean", "bool", "bit":
		return Boolean{}
	case "real", "float", "float4", "float8", "double", "double precision":
		return Float{}
	case "numeric", "decimal", "money":
		return Numeric{}
	case "date":
		return Date{}
	case "timestamp with time zone", "timestamptz":
		return DateTime{Timezone: true}
	case "timestamp", "timestamp without time zone", "datetime":
		return DateTime{}
	case "time", "time without time zone", "time with time zone", "timetz":
		return Time{}
	case "bytea", "blob", "tinyblob", "mediumblob", "longblob", "binary", "varbinary":
		return Binary{}
	case "json", "jsonb":
		return JSON{}
	default:
		return Unknown{Name: n}
	}
}
