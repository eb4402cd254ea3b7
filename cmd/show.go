package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepdsl/internal/config"
	"github.com/chriserin/stepdsl/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the steps of a recorded run",
	Long:  `Show the steps of a recorded run, marking failed steps with ✗.

Failures are recorded by step text. A step failed once but executed several
times is marked at its first position only; each recorded failure marks one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// RunShow prints one run. rawID may be any unique prefix of the run ID.
func RunShow(w io.Writer, c config.Config, rawID string) error {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return fmt.Errorf("invalid run ID: %q", rawID)
	}

	sqlDB, err := openProject(c)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`SELECT id, source, started_at FROM runs WHERE id = ? OR substr(id, 1, ?) = ?`,
		rawID, len(rawID), rawID)
	if err != nil {
		return fmt.Errorf("querying run: %w", err)
	}
	var ids []string
	var id, source, startedAt string
	for rows.Next() {
		var rid, rsource, rstarted string
		if err := rows.Scan(&rid, &rsource, &rstarted); err != nil {
			rows.Close()
			return fmt.Errorf("scanning run: %w", err)
		}
		ids = append(ids, rid)
		id, source, startedAt = rid, rsource, rstarted
		if rid == rawID {
			ids = []string{rid}
			break
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating runs: %w", err)
	}
	switch len(ids) {
	case 0:
		return fmt.Errorf("run %s not found", rawID)
	case 1:
	default:
		return fmt.Errorf("run ID %s is ambiguous (%d matches)", rawID, len(ids))
	}

	// remaining failures per step text, consumed in position order
	failed := map[string]int{}
	total := 0
	frows, err := sqlDB.Query(`SELECT step FROM failures WHERE run_id = ?`, id)
	if err != nil {
		return fmt.Errorf("querying failures: %w", err)
	}
	for frows.Next() {
		var step string
		if err := frows.Scan(&step); err != nil {
			frows.Close()
			return fmt.Errorf("scanning failure: %w", err)
		}
		failed[step]++
		total++
	}
	frows.Close()
	if err := frows.Err(); err != nil {
		return fmt.Errorf("iterating failures: %w", err)
	}

	srows, err := sqlDB.Query(`SELECT position, step FROM run_steps WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return fmt.Errorf("querying steps: %w", err)
	}
	defer srows.Close()

	ui.ShowHeader(w, id, source, startedAt)
	fmt.Fprintln(w)
	for srows.Next() {
		var pos int
		var step string
		if err := srows.Scan(&pos, &step); err != nil {
			return fmt.Errorf("scanning step: %w", err)
		}
		marked := failed[step] > 0
		if marked {
			failed[step]--
		}
		ui.ShowStep(w, pos, step, marked)
	}
	if err := srows.Err(); err != nil {
		return fmt.Errorf("iterating steps: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Failed: %d\n", total)
	return nil
}
