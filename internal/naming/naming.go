package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// CamelToSnake converts a CamelCase string to snake_case.
// Consecutive uppercase letters (acronyms) are kept together:
// "ID" → "id", "UserID" → "user_id", "CreatedAt" → "created_at".
func CamelToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				next := rune(0)
				if i+1 < len(runes) {
					next = runes[i+1]
				}
				if unicode.IsLower(prev) || (unicode.IsUpper(prev) && unicode.IsLower(next)) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SnakeToCamel converts a snake_case string to CamelCase.
// A trailing "id" segment is upper-cased: "user_id" → "UserID".
func SnakeToCamel(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		if part == "id" {
			b.WriteString("ID")
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// TableName derives a snake_case plural table name from a Go type name.
// e.g. "User" → "users", "FavoriteChild" → "favorite_children"
func TableName(typeName string) string {
	return inflection.Plural(CamelToSnake(typeName))
}

// EntityName derives a CamelCase singular type name from a table name.
// e.g. "users" → "User", "favorite_children" → "FavoriteChild"
func EntityName(table string) string {
	return SnakeToCamel(inflection.Singular(table))
}

// Plural returns the plural form of a snake_case word.
func Plural(s string) string { return inflection.Plural(s) }

// Singular returns the singular form of a snake_case word.
func Singular(s string) string { return inflection.Singular(s) }
