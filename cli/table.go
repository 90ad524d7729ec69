package cli

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"go.hackfix.me/migres/resolver"
)

// column is a single column of a migration table.
type column struct {
	header string
	value  func(*resolver.Migration) string
}

var (
	versionColumn = column{"Version", func(m *resolver.Migration) string {
		return m.Version.String()
	}}
	descriptionColumn = column{"Description", func(m *resolver.Migration) string {
		return m.Description
	}}
	scriptColumn = column{"Script", func(m *resolver.Migration) string {
		return m.Script
	}}
	locationColumn = column{"Location", func(m *resolver.Migration) string {
		return m.Location.String()
	}}
)

// renderMigrations writes one row per migration to w, in the order given.
// Nothing is written if migs is empty.
func renderMigrations(w io.Writer, migs []*resolver.Migration, cols ...column) error {
	if len(migs) == 0 {
		return nil
	}

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.header
	}

	rows := make([][]string, len(migs))
	for i, m := range migs {
		row := make([]string, len(cols))
		for j, col := range cols {
			row[j] = col.value(m)
		}
		rows[i] = row
	}

	table := newTable(w)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err //nolint:wrapcheck // This is wrapped by the caller.
	}

	return table.Render() //nolint:wrapcheck // This is wrapped by the caller.
}

// newTable returns a borderless table with left aligned cells. Script paths
// can be long, so rows are never wrapped.
func newTable(w io.Writer) *tablewriter.Table {
	off := tw.Lines{
		ShowHeaderLine: tw.Off,
		ShowFooterLine: tw.Off,
		ShowTop:        tw.Off,
		ShowBottom:     tw.Off,
	}
	noSeparators := tw.Separators{
		ShowHeader:     tw.Off,
		ShowFooter:     tw.Off,
		BetweenRows:    tw.Off,
		BetweenColumns: tw.Off,
	}
	left := tw.CellAlignment{Global: tw.AlignLeft}

	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders:  tw.BorderNone,
			Symbols:  tw.NewSymbols(tw.StyleASCII),
			Settings: tw.Settings{Lines: off, Separators: noSeparators},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{Alignment: left},
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  left,
			},
		}),
	)
}
