package formatter

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/poolctl/utils"
	"github.com/hwameistor/poolconsole/pkg/poolview"
	"github.com/hwameistor/poolconsole/pkg/tasklist"
)

// PrintPools renders a pool snapshot, with an error banner above the table when the
// last fetch failed
func PrintPools(snapshot tasklist.Snapshot[api.Pool]) {
	if snapshot.ViewState == tasklist.ViewStateErrorDegraded {
		err := snapshot.Err
		if err == nil {
			err = errors.New("failed to fetch resources")
		}
		fmt.Fprintln(Output, text.FgRed.Sprintf("! %v, showing the last known pools", err))
	}

	t := buildDefaultTable()
	t.SetTitle("Pools")

	header := table.Row{"#"}
	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignRight}}
	for i, c := range poolview.Columns {
		header = append(header, c.Header)
		if c.AlignRight {
			configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
		}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for i, row := range snapshot.Rows {
		r := table.Row{i + 1}
		for _, cell := range poolview.Cells(row) {
			r = append(r, cell)
		}
		t.AppendRow(r)
	}
	if len(snapshot.Rows) == 0 {
		t.AppendFooter(table.Row{"", "No pools"})
	}
	t.Render()
}

// PrintTasks renders the executing and finished tasks
func PrintTasks(summary *api.TaskSummary) {
	executingRows := make([]table.Row, 0, len(summary.ExecutingTasks))
	for i, task := range summary.ExecutingTasks {
		executingRows = append(executingRows, table.Row{i + 1, task.Name, utils.FormatMetadata(task.Metadata),
			utils.FormatTime(task.BeginTime), fmt.Sprintf("%d%%", task.Progress)})
	}
	PrintTable("Executing tasks", table.Row{"#", "Name", "Metadata", "BeginTime", "Progress"}, executingRows)

	finishedRows := make([]table.Row, 0, len(summary.FinishedTasks))
	for i, task := range summary.FinishedTasks {
		result := text.FgGreen.Sprint("Success")
		if !task.Success {
			result = text.FgRed.Sprint("Failed")
		}
		finishedRows = append(finishedRows, table.Row{i + 1, task.Name, utils.FormatMetadata(task.Metadata),
			utils.FormatTime(task.EndTime), utils.FormatDuration(task.Duration), result, task.Exception})
	}
	PrintTable("Finished tasks", table.Row{"#", "Name", "Metadata", "EndTime", "Duration", "Result", "Exception"}, finishedRows)
}
