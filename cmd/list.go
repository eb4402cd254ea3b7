package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepdsl/internal/config"
	"github.com/chriserin/stepdsl/internal/ui"
)

var failedFlag bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), cfg, failedFlag)
	},
}

func init() {
	listCmd.Flags().BoolVar(&failedFlag, "failed", false, "Show only runs with at least one failed step")
	rootCmd.AddCommand(listCmd)
}

// shortIDLen is the length of the run ID prefix shown by list.
const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func RunList(w io.Writer, c config.Config, failedOnly bool) error {
	sqlDB, err := openProject(c)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT r.id, r.source, r.step_count,
			(SELECT COUNT(*) FROM failures WHERE run_id = r.id) AS failed,
			r.started_at
		FROM runs r
		ORDER BY r.started_at, r.rowid
	`)
	if err != nil {
		return fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var results []ui.RunRow
	for rows.Next() {
		var r ui.RunRow
		if err := rows.Scan(&r.ID, &r.Source, &r.Executed, &r.Failed, &r.StartedAt); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		if failedOnly && r.Failed == 0 {
			continue
		}
		r.ID = shortID(r.ID)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return nil
	}

	ui.RunTable(w, results)
	return nil
}
