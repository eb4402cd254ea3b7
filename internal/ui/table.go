package ui

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RunRow is one line of `stepdsl list`.
type RunRow struct {
	ID        string
	Source    string
	Executed  int
	Failed    int
	StartedAt string
}

// RunTable renders runs as a rounded table followed by a total row.
func RunTable(w io.Writer, rows []RunRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"RUN", "SOURCE", "EXECUTED", "FAILED", "STARTED"})

	executed, failed := 0, 0
	for _, r := range rows {
		t.AppendRow(table.Row{r.ID, r.Source, r.Executed, r.Failed, r.StartedAt})
		executed += r.Executed
		failed += r.Failed
	}
	t.AppendFooter(table.Row{"TOTAL", len(rows), executed, failed, ""})
	t.Render()
}
