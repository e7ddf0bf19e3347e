package parse

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/mickamy/relkind/coltype"
	"github.com/mickamy/relkind/internal/naming"
	"github.com/mickamy/relkind/meta"
)

// Parse reads the Go file at path and returns an Entity for every struct
// that has at least one column. The file is not type-checked; column types
// are inferred from the type expressions as written.
func Parse(filePath string) ([]*meta.Entity, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	tableNames := collectTableNames(file)

	var (
		entities []*meta.Entity
		errs     []error
	)
	ast.Inspect(file, func(n ast.Node) bool {
		ts, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}

		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			return true
		}

		attrs, hasColumn, err := parseStructFields(st)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ts.Name.Name, err))
			return false
		}
		if !hasColumn {
			return true
		}

		table, ok := tableNames[ts.Name.Name]
		if !ok {
			table = naming.TableName(ts.Name.Name)
		}
		e, err := meta.NewEntity(ts.Name.Name, table, attrs...)
		if err != nil {
			errs = append(errs, err)
			return false
		}
		entities = append(entities, e)
		return true
	})
	if len(errs) > 0 {
		return nil, errs[0]
	}

	return entities, nil
}

// parseStructFields extracts columns and relations from an AST struct type.
func parseStructFields(st *ast.StructType) ([]meta.Attribute, bool, error) {
	attrs := make([]meta.Attribute, 0, len(st.Fields.List))
	hasColumn := false
	for _, field := range st.Fields.List {
		// A, B int declares two fields sharing one type and tag.
		for _, ident := range field.Names {
			attr, err := parseField(ident, field)
			if err != nil {
				return nil, false, err
			}
			if attr == nil {
				continue
			}
			if _, ok := attr.(*meta.Column); ok {
				hasColumn = true
			}
			attrs = append(attrs, attr)
		}
	}
	return attrs, hasColumn, nil
}

func parseField(ident *ast.Ident, field *ast.Field) (meta.Attribute, error) {
	// Skip unexported fields.
	if !ident.IsExported() {
		return nil, nil
	}
	name := ident.Name

	var tag reflect.StructTag
	if field.Tag != nil {
		tag = reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
	}

	if relTag, ok := tag.Lookup("rel"); ok {
		rt, err := meta.ParseRelTag(relTag)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		target, isSlice := relationTarget(field.Type)
		rel, err := rt.Relation(name, target, isSlice)
		if err != nil {
			return nil, err
		}
		return rel, nil
	}

	typ, nullable := coltype.FromGoName(typeToString(field.Type))
	col, ok := meta.FieldColumn(name, tag.Get("db"), typ, nullable)
	if !ok {
		return nil, nil // explicitly skipped
	}
	return col, nil
}

// relationTarget returns the struct name a relation field points at, e.g.
// "Post" for []Post, *Post, []*model.Post.
func relationTarget(expr ast.Expr) (string, bool) {
	isSlice := false
	if at, ok := expr.(*ast.ArrayType); ok && at.Len == nil {
		isSlice = true
		expr = at.Elt
	}
	if se, ok := expr.(*ast.StarExpr); ok {
		expr = se.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, isSlice
	case *ast.SelectorExpr:
		return t.Sel.Name, isSlice
	default:
		return typeToString(expr), isSlice
	}
}

// collectTableNames finds TableName methods that return a string literal.
func collectTableNames(file *ast.File) map[string]string {
	names := make(map[string]string)
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) != 1 || fd.Name.Name != "TableName" || fd.Body == nil {
			continue
		}
		recv := strings.TrimPrefix(typeToString(fd.Recv.List[0].Type), "*")
		for _, stmt := range fd.Body.List {
			ret, ok := stmt.(*ast.ReturnStmt)
			if !ok || len(ret.Results) != 1 {
				continue
			}
			lit, ok := ret.Results[0].(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				continue
			}
			if s, err := strconv.Unquote(lit.Value); err == nil {
				names[recv] = s
			}
		}
	}
	return names
}

func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return typeToString(t.X) + "." + t.Sel.Name
	case *ast.StarExpr:
		return "*" + typeToString(t.X)
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + typeToString(t.Elt)
		}
		return fmt.Sprintf("[%s]%s", typeToString(t.Len), typeToString(t.Elt))
	case *ast.BasicLit:
		return t.Value
	case *ast.MapType:
		return "map[" + typeToString(t.Key) + "]" + typeToString(t.Value)
	default:
		return fmt.Sprintf("%T", expr)
	}
}
