package poolview

import (
	"strconv"
	"strings"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/tasklist"
)

// Column is one column of the pool table
type Column struct {
	Header string
	// AlignRight for numeric columns
	AlignRight bool
	Value      func(row tasklist.DisplayRow[api.Pool]) string
}

// Columns of the pool list, in display order
var Columns = []Column{
	{Header: "Name", Value: nameCell},
	{Header: "Type", Value: field(func(p api.Pool) string { return p.Type })},
	{Header: "Applications", Value: field(func(p api.Pool) string { return strings.Join(p.ApplicationMetadata, ", ") })},
	{Header: "Placement Groups", AlignRight: true, Value: field(func(p api.Pool) string { return number(int64(p.PgPlacementNum)) })},
	{Header: "Replica Size", AlignRight: true, Value: field(func(p api.Pool) string { return number(int64(p.Size)) })},
	{Header: "Last Change", AlignRight: true, Value: field(func(p api.Pool) string { return number(p.LastChange) })},
	{Header: "Erasure Coded Profile", Value: field(func(p api.Pool) string { return p.ErasureCodeProfile })},
	{Header: "Crush Ruleset", Value: field(func(p api.Pool) string { return p.CrushRule })},
}

// Headers of Columns
func Headers() []string {
	headers := make([]string, 0, len(Columns))
	for _, c := range Columns {
		headers = append(headers, c.Header)
	}
	return headers
}

// Cells renders one row
func Cells(row tasklist.DisplayRow[api.Pool]) []string {
	cells := make([]string, 0, len(Columns))
	for _, c := range Columns {
		cells = append(cells, c.Value(row))
	}
	return cells
}

// nameCell appends the executing marker, e.g. "images (Deleting...)"
func nameCell(row tasklist.DisplayRow[api.Pool]) string {
	name := row.Item.PoolName
	if executing := row.Executing(); executing != "" {
		if row.Task.Progress > 0 {
			return name + " (" + executing + "... " + strconv.Itoa(row.Task.Progress) + "%)"
		}
		return name + " (" + executing + "...)"
	}
	return name
}

// field leaves placeholder rows blank apart from the name
func field(get func(api.Pool) string) func(tasklist.DisplayRow[api.Pool]) string {
	return func(row tasklist.DisplayRow[api.Pool]) string {
		if row.Placeholder {
			return ""
		}
		return get(row.Item)
	}
}

func number(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}
