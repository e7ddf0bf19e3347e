package meta

import (
	"fmt"
	"reflect"

	"github.com/mickamy/relkind/coltype"
	"github.com/mickamy/relkind/internal/naming"
)

// Describe builds an Entity from a struct value or pointer by reading the db
// and rel tags of its exported fields.
//
//	type Child struct {
//		ID       int
//		ParentID int
//		Parent   *Parent `rel:"belongs_to,foreign_key:parent_id,back_populates:Children"`
//	}
func Describe(model any) (*Entity, error) {
	rt := reflect.TypeOf(model)
	if rt == nil {
		return nil, ErrNotStruct
	}
	return describe(rt)
}

// DescribeType is the generic form of Describe.
func DescribeType[T any]() (*Entity, error) {
	return describe(reflect.TypeFor[T]())
}

func describe(rt reflect.Type) (*Entity, error) {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, rt)
	}

	attrs := make([]Attribute, 0, rt.NumField())
	for i := range rt.NumField() {
		f := rt.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}

		if relTag, ok := f.Tag.Lookup("rel"); ok {
			rel, err := fieldRelation(f, relTag)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", rt.Name(), f.Name, err)
			}
			attrs = append(attrs, rel)
			continue
		}

		typ, nullable := coltype.FromGoType(f.Type)
		if col, ok := FieldColumn(f.Name, f.Tag.Get("db"), typ, nullable); ok {
			attrs = append(attrs, col)
		}
	}

	table := resolveTableName(rt, naming.TableName(rt.Name()))
	return NewEntity(rt.Name(), table, attrs...)
}

func fieldRelation(f reflect.StructField, relTag string) (*Relation, error) {
	tag, err := ParseRelTag(relTag)
	if err != nil {
		return nil, err
	}

	ft := f.Type
	isSlice := ft.Kind() == reflect.Slice
	if isSlice {
		ft = ft.Elem()
	}
	for ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	if ft.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: relation target %s is not a struct", ErrInvalidTag, f.Type)
	}
	return tag.Relation(f.Name, ft.Name(), isSlice)
}
