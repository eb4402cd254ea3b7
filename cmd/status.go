package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepdsl/internal/config"
)

// topFailures caps the failing-step breakdown in the status report.
const topFailures = 5

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show run totals and the most frequently failing steps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer, c config.Config) error {
	sqlDB, err := openProject(c)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var runs, executed, failed, features int
	err = sqlDB.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM runs),
			(SELECT COALESCE(SUM(step_count), 0) FROM runs),
			(SELECT COUNT(*) FROM failures),
			(SELECT COUNT(*) FROM files)
	`).Scan(&runs, &executed, &failed, &features)
	if err != nil {
		return fmt.Errorf("counting runs: %w", err)
	}

	fmt.Fprintf(w, "Features: %d\n", features)
	fmt.Fprintf(w, "Runs: %d\n", runs)
	fmt.Fprintf(w, "Steps executed: %d\n", executed)
	fmt.Fprintf(w, "Steps failed: %d\n", failed)

	if failed == 0 {
		return nil
	}

	rows, err := sqlDB.Query(`
		SELECT step, COUNT(*) AS cnt
		FROM failures
		GROUP BY step
		ORDER BY cnt DESC, step
		LIMIT ?
	`, topFailures)
	if err != nil {
		return fmt.Errorf("querying failure counts: %w", err)
	}
	defer rows.Close()

	fmt.Fprintln(w, "Most failed:")
	for rows.Next() {
		var step string
		var cnt int
		if err := rows.Scan(&step, &cnt); err != nil {
			return fmt.Errorf("scanning failure row: %w", err)
		}
		fmt.Fprintf(w, "  %s: %d\n", step, cnt)
	}

	return rows.Err()
}
