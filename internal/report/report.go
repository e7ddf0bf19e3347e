// Package report renders the classification of a set of entities.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/mickamy/relkind/meta"
)

// Row is the classification of one attribute.
type Row struct {
	Entity    string `yaml:"entity"`
	Attribute string `yaml:"attribute"`
	Kind      string `yaml:"kind"`             // "column" or a relation kind
	Target    string `yaml:"target,omitempty"` // related entity or referenced entity for foreign keys
	Type      string `yaml:"type,omitempty"`   // column type name
	Details   string `yaml:"details,omitempty"`
}

// Rows returns one Row per attribute, in entity then declaration order.
func Rows(entities []*meta.Entity) []Row {
	var rows []Row
	for _, e := range entities {
		for _, a := range e.Attrs() {
			rows = append(rows, row(e, a))
		}
	}
	return rows
}

func row(e *meta.Entity, a meta.Attribute) Row {
	r := Row{Entity: e.Name, Attribute: a.AttrName()}
	switch a := a.(type) {
	case *meta.Column:
		r.Kind = "column"
		r.Target = a.References
		if a.Type != nil {
			r.Type = a.Type.TypeName()
		}
		var flags []string
		if a.PrimaryKey {
			flags = append(flags, "pk")
		}
		if a.References != "" {
			flags = append(flags, "fk")
		}
		if a.Nullable {
			flags = append(flags, "nullable")
		}
		r.Details = strings.Join(flags, ",")
	case *meta.Relation:
		r.Kind = meta.Classify(a).String()
		r.Target = a.Target
		var details []string
		if a.JoinTable != "" {
			details = append(details, "via "+a.JoinTable)
		}
		if a.ForeignKey != "" {
			details = append(details, "fk "+a.ForeignKey)
		}
		if a.BackPopulates != "" {
			details = append(details, "back "+a.BackPopulates)
		}
		r.Details = strings.Join(details, ", ")
	}
	return r
}

// Table writes rows as a boxed terminal table.
func Table(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(0 attributes)")
		return err //nolint:wrapcheck // pass through
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Entity", "Attribute", "Kind", "Target", "Type", "Details"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Entity, r.Attribute, r.Kind, r.Target, r.Type, r.Details})
	}
	t.Render()
	return nil
}

// YAML writes rows as a YAML sequence.
func YAML(w io.Writer, rows []Row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close() //nolint:wrapcheck // pass through
}

// Write renders rows in the named format: "table" or "yaml".
func Write(w io.Writer, format string, rows []Row) error {
	switch format {
	case "", "table":
		return Table(w, rows)
	case "yaml", "yml":
		return YAML(w, rows)
	default:
		return fmt.Errorf("report: unknown format %q", format)
	}
}
