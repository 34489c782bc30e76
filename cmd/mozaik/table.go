package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableSpec describes one rendered table. Headers may be empty for
// key/value listings; the column count then follows the first row.
type tableSpec struct {
	Title   string
	Headers []string
	Rows    [][]string
	Aligns  []columnAlignment
	// MaxWidth wraps cells of the given column numbers (1-based).
	MaxWidth map[int]int
}

func renderTable(spec tableSpec) string {
	columns := len(spec.Headers)
	if columns == 0 && len(spec.Rows) > 0 {
		columns = len(spec.Rows[0])
	}
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if spec.Title != "" {
		tw.SetTitle("%s", spec.Title)
	}

	if len(spec.Headers) > 0 {
		header := make(table.Row, columns)
		for i := range columns {
			header[i] = spec.Headers[i]
		}
		tw.AppendHeader(header)
	}

	for _, row := range spec.Rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(spec.Aligns) && spec.Aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    spec.MaxWidth[i+1],
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
