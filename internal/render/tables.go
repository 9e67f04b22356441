package render

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable returns a borderless go-pretty writer sized to width.
func newTable(width int) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = true
	tbl.Style().Format.Header = text.FormatDefault
	if width > 0 {
		tbl.SetAllowedRowLength(width)
	}
	return tbl
}

// renderMatrix renders a header row plus body rows. style, when non-nil,
// may recolor a whole body row.
func renderMatrix(rows [][]string, width int, style func(i int, row []string) []string) string {
	if len(rows) == 0 {
		return ""
	}
	tbl := newTable(width)
	alignNumbers(tbl, len(rows[0]))
	tbl.AppendHeader(toRow(rows[0]))
	for i, r := range rows[1:] {
		if style != nil {
			r = style(i, r)
		}
		tbl.AppendRow(toRow(r))
	}
	return tbl.Render()
}

// alignNumbers right-aligns every column after the first.
func alignNumbers(tbl table.Writer, columns int) {
	configs := make([]table.ColumnConfig, 0, columns)
	for i := 2; i <= columns; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	tbl.SetColumnConfigs(configs)
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
