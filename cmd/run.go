package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/chriserin/stepdsl/internal/config"
	"github.com/chriserin/stepdsl/internal/logger"
	"github.com/chriserin/stepdsl/internal/parser"
	"github.com/chriserin/stepdsl/internal/runner"
	"github.com/chriserin/stepdsl/internal/stepfile"
	"github.com/chriserin/stepdsl/internal/ui"
)

// newRunID is swapped out in tests for a deterministic source.
var newRunID = uuid.NewString

var failFlags []string

var runCmd = &cobra.Command{
	Use:   "run <file>...",
	Short: "Run the steps of .feature files or YAML step plans and record the run",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSteps(cmd.OutOrStdout(), cfg, args, failFlags)
	},
}

func init() {
	runCmd.Flags().StringArrayVar(&failFlags, "fail", nil, "Mark an executed step as failed (repeatable)")
	rootCmd.AddCommand(runCmd)
}

// collectSteps loads the steps of one input file, plus any failures the file declares.
func collectSteps(w io.Writer, path string) (steps, fails []string, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".feature":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		doc, parseErrors := parser.Parse(path, content)
		pf := parser.Transform(doc, path, parseErrors)
		for _, pe := range pf.Errors {
			ui.WarnLine(w, fmt.Sprintf("%s:%d: %s", path, pe.Line, pe.Message))
		}
		return pf.AllSteps(), nil, nil
	case ".yaml", ".yml":
		plan, err := stepfile.Load(path)
		if err != nil {
			return nil, nil, err
		}
		return plan.Steps, plan.Fail, nil
	default:
		return nil, nil, fmt.Errorf("%s: unsupported file type (want .feature, .yaml or .yml)", path)
	}
}

func RunSteps(w io.Writer, c config.Config, paths []string, fails []string) error {
	sqlDB, err := openProject(c)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	sp := parser.NewStepParser()
	r := runner.New()
	var labels []string
	var sources []string
	for _, path := range paths {
		steps, declared, err := collectSteps(w, path)
		if err != nil {
			return err
		}
		for _, s := range steps {
			if !sp.ValidateStep(s) {
				ui.WarnLine(w, fmt.Sprintf("%s: %q does not start with a step keyword", path, s))
			}
		}
		labels = append(labels, r.Run(steps)...)
		fails = append(fails, declared...)
		sources = append(sources, filepath.Base(path))
	}

	for _, f := range fails {
		if err := r.MarkFailed(f); err != nil {
			return fmt.Errorf("marking %q failed: %w", f, err)
		}
	}

	runID := newRunID()
	executed := r.ExecutedSteps()
	failed := r.FailedSteps()

	tx, err := sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("beginning run %s: %w", runID, err)
	}
	_, err = tx.Exec(`INSERT INTO runs (id, source, step_count, language, browser, headless) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, strings.Join(sources, ", "), r.ExecutionCount(), c.Language, c.Browser, c.Headless)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("inserting run: %w", err)
	}
	for i, step := range executed {
		if _, err := tx.Exec(`INSERT INTO run_steps (run_id, position, step, label) VALUES (?, ?, ?, ?)`,
			runID, i+1, step, labels[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting step %d: %w", i+1, err)
		}
	}
	for _, step := range failed {
		if _, err := tx.Exec(`INSERT INTO failures (run_id, step) VALUES (?, ?)`, runID, step); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting failure: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run %s: %w", runID, err)
	}

	for _, label := range labels {
		ui.RunLine(w, label)
	}
	for _, step := range failed {
		ui.FailLine(w, step)
	}
	ui.RunSummary(w, runID, r.ExecutionCount(), len(failed))

	logger.Info("run recorded", "run", runID, "executed", r.ExecutionCount(), "failed", len(failed))
	return nil
}
