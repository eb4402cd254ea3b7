package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/chriserin/stepdsl/internal/config"
	"github.com/chriserin/stepdsl/internal/logger"
	"github.com/chriserin/stepdsl/internal/parser"
	"github.com/chriserin/stepdsl/internal/ui"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan the feature directory and register .feature files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer, c config.Config) error {
	sqlDB, err := openProject(c)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	matches, err := filepath.Glob(filepath.Join(c.Dir, "*.feature"))
	if err != nil {
		return fmt.Errorf("scanning %s/: %w", c.Dir, err)
	}
	sort.Strings(matches)

	fp := parser.NewFeatureParser()
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		path = filepath.ToSlash(path)

		text, err := fp.ParseFeature(string(content))
		if err != nil {
			ui.WarnLine(w, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		doc, _ := parser.Parse(path, []byte(text))
		name := doc.Feature.Header.Name

		var id int
		err = sqlDB.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&id)
		if err == sql.ErrNoRows {
			_, err = sqlDB.Exec(`INSERT INTO files (file_path, feature) VALUES (?, ?)`, path, name)
			if err != nil {
				return fmt.Errorf("inserting %s: %w", path, err)
			}
			ui.NewLine(w, path)
		} else if err != nil {
			return fmt.Errorf("querying %s: %w", path, err)
		} else {
			_, err = sqlDB.Exec(`UPDATE files SET feature = ?, updated_at = datetime('now') WHERE id = ?`, name, id)
			if err != nil {
				return fmt.Errorf("updating %s: %w", path, err)
			}
			ui.TrkLine(w, path)
		}
	}

	logger.Info("sync finished", "features", fp.FeatureCount(), "files", len(matches))
	ui.SummaryLine(w, fp.FeatureCount())
	return nil
}
