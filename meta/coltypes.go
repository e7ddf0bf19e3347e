package meta

import "github.com/mickamy/relkind/coltype"

// ColumnIs reports whether the named column's type is T, directly or through
// one level of decoration. Relations and unknown names report false.
func ColumnIs[T coltype.Type](e *Entity, name string) bool {
	c, ok := e.Column(name)
	return ok && coltype.Is[T](c.Type)
}

func (e *Entity) IsString(name string) bool   { return ColumnIs[coltype.String](e, name) }
func (e *Entity) IsText(name string) bool     { return ColumnIs[coltype.Text](e, name) }
func (e *Entity) IsBoolean(name string) bool  { return ColumnIs[coltype.Boolean](e, name) }
func (e *Entity) IsFloat(name string) bool    { return ColumnIs[coltype.Float](e, name) }
func (e *Entity) IsNumeric(name string) bool  { return ColumnIs[coltype.Numeric](e, name) }
func (e *Entity) IsDate(name string) bool     { return ColumnIs[coltype.Date](e, name) }
func (e *Entity) IsDateTime(name string) bool { return ColumnIs[coltype.DateTime](e, name) }
func (e *Entity) IsBinary(name string) bool   { return ColumnIs[coltype.Binary](e, name) }

// IsInteger covers both Integer and BigInteger columns.
func (e *Entity) IsInteger(name string) bool {
	return ColumnIs[coltype.Integer](e, name) || ColumnIs[coltype.BigInteger](e, name)
}
