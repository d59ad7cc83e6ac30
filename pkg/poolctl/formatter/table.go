package formatter

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Output is where tables are rendered
var Output io.Writer = os.Stdout

func buildDefaultTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(Output)

	// Set the header's and footer's format
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func PrintTable(title string, header table.Row, rows []table.Row) {
	t := buildDefaultTable()
	// Set the table's title
	if title != "" {
		t.SetTitle(title)
	}
	// Set the table's header and rows
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}
