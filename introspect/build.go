package introspect

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/mickamy/relkind/coltype"
	"github.com/mickamy/relkind/internal/naming"
	"github.com/mickamy/relkind/meta"
)

type draft struct {
	name  string
	table string
	attrs []meta.Attribute
	used  map[string]bool
}

// claim reserves an attribute name on d, falling back to
// "<table>_by_<column>" and then a numeric suffix when base is taken.
func (d *draft) claim(base, table, column string) string {
	name := base
	if d.used[name] {
		name = table + "_by_" + column
	}
	for i := 2; d.used[name]; i++ {
		name = fmt.Sprintf("%s_by_%s_%d", table, column, i)
	}
	d.used[name] = true
	return name
}

// Build turns a Catalog into entities, one per table except junction tables.
//
// A foreign key child.x_id -> parent yields child.x (belongs_to) and a
// parent relation named after the child table: plural has_many, or singular
// has_one when the foreign key column is unique. A junction table, holding
// exactly two foreign keys and no other non-key columns, yields a
// many_to_many on both referenced tables instead of an entity.
func Build(c Catalog) ([]*meta.Entity, error) {
	// Catalog rows may repeat; every set below keeps the first occurrence.
	columns := make(map[string][]ColumnInfo)
	seenColumn := make(map[[2]string]bool)
	for _, ci := range c.Columns {
		key := [2]string{ci.Table, ci.Name}
		if seenColumn[key] {
			continue
		}
		seenColumn[key] = true
		columns[ci.Table] = append(columns[ci.Table], ci)
	}

	pk := make(map[string]map[string]bool)
	uniqueCols := make(map[string]map[string][]string) // table -> constraint -> columns
	for _, k := range c.Keys {
		switch k.Type {
		case "PRIMARY KEY":
			if pk[k.Table] == nil {
				pk[k.Table] = make(map[string]bool)
			}
			pk[k.Table][k.Column] = true
		case "UNIQUE":
			if uniqueCols[k.Table] == nil {
				uniqueCols[k.Table] = make(map[string][]string)
			}
			if !slices.Contains(uniqueCols[k.Table][k.Constraint], k.Column) {
				uniqueCols[k.Table][k.Constraint] = append(uniqueCols[k.Table][k.Constraint], k.Column)
			}
		}
	}

	fks := make([]ForeignKey, 0, len(c.ForeignKeys))
	seenFK := make(map[[3]string]bool)
	for _, fk := range c.ForeignKeys {
		key := [3]string{fk.Table, fk.Column, fk.RefTable}
		if seenFK[key] {
			continue
		}
		seenFK[key] = true
		fks = append(fks, fk)
	}
	sort.Slice(fks, func(i, j int) bool {
		if fks[i].Table != fks[j].Table {
			return fks[i].Table < fks[j].Table
		}
		return fks[i].Column < fks[j].Column
	})
	fksByTable := make(map[string][]ForeignKey)
	referenced := make(map[string]bool)
	for _, fk := range fks {
		fksByTable[fk.Table] = append(fksByTable[fk.Table], fk)
		referenced[fk.RefTable] = true
	}

	isUnique := func(table, column string) bool {
		for _, cols := range uniqueCols[table] {
			if len(cols) == 1 && cols[0] == column {
				return true
			}
		}
		// a foreign key that is the whole primary key is a shared-key one-to-one
		return pk[table][column] && len(pk[table]) == 1
	}

	isJunction := func(table string) bool {
		tfks := fksByTable[table]
		if len(tfks) != 2 || referenced[table] {
			return false
		}
		fkCols := map[string]bool{tfks[0].Column: true, tfks[1].Column: true}
		for _, ci := range columns[table] {
			if !fkCols[ci.Name] && !pk[table][ci.Name] {
				return false
			}
		}
		return true
	}

	tables := make([]string, 0, len(columns))
	for table := range columns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	drafts := make(map[string]*draft)
	var junctions []string
	for _, table := range tables {
		if isJunction(table) {
			junctions = append(junctions, table)
			continue
		}
		d := &draft{name: naming.EntityName(table), table: table, used: make(map[string]bool)}
		for _, ci := range columns[table] {
			typ := coltype.FromSQLName(ci.DataType)
			d.attrs = append(d.attrs, &meta.Column{
				Name:       ci.Name,
				Column:     ci.Name,
				Type:       typ,
				PrimaryKey: pk[table][ci.Name],
				Nullable:   ci.Nullable,
			})
			d.used[ci.Name] = true
		}
		drafts[table] = d
	}

	for _, fk := range fks {
		child, parent := drafts[fk.Table], drafts[fk.RefTable]
		if child == nil || parent == nil {
			continue
		}

		unique := isUnique(fk.Table, fk.Column)
		base := strings.TrimSuffix(fk.Column, "_id")
		if base == fk.Column {
			base = naming.Singular(fk.RefTable)
		}
		near := &meta.Relation{
			Name:        child.claim(base, fk.RefTable, fk.Column),
			Target:      parent.name,
			Association: meta.AssocBelongsTo,
			ForeignKey:  fk.Column,
		}
		if !unique {
			near.Direction = meta.DirectionReferencing
		}

		far := &meta.Relation{
			Target:     child.name,
			ForeignKey: fk.Column,
		}
		if unique {
			far.Association = meta.AssocHasOne
			far.Name = parent.claim(naming.Singular(fk.Table), fk.Table, fk.Column)
		} else {
			far.Association = meta.AssocHasMany
			far.UseList = true
			far.Name = parent.claim(naming.Plural(fk.Table), fk.Table, fk.Column)
		}
		near.BackPopulates, far.BackPopulates = far.Name, near.Name

		child.attrs = append(child.attrs, near)
		parent.attrs = append(parent.attrs, far)
	}

	for _, j := range junctions {
		a, b := fksByTable[j][0], fksByTable[j][1]
		da, db := drafts[a.RefTable], drafts[b.RefTable]
		if da == nil || db == nil {
			continue
		}
		ra := &meta.Relation{
			Name:        da.claim(naming.Plural(naming.Singular(b.RefTable)), j, b.Column),
			Target:      db.name,
			Association: meta.AssocManyToMany,
			UseList:     true,
			JoinTable:   j,
			ForeignKey:  a.Column,
			References:  b.Column,
		}
		rb := &meta.Relation{
			Name:        db.claim(naming.Plural(naming.Singular(a.RefTable)), j, a.Column),
			Target:      da.name,
			Association: meta.AssocManyToMany,
			UseList:     true,
			JoinTable:   j,
			ForeignKey:  b.Column,
			References:  a.Column,
		}
		ra.BackPopulates, rb.BackPopulates = rb.Name, ra.Name
		da.attrs = append(da.attrs, ra)
		db.attrs = append(db.attrs, rb)
	}

	entities := make([]*meta.Entity, 0, len(drafts))
	for _, table := range tables {
		d, ok := drafts[table]
		if !ok {
			continue
		}
		e, err := meta.NewEntity(d.name, d.table, d.attrs...)
		if err != nil {
			return nil, fmt.Errorf("introspect: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}
