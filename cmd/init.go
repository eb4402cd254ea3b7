package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepdsl/internal/config"
	"github.com/chriserin/stepdsl/internal/db"
)

// configFileName is the project config that config.Load picks up by default.
const configFileName = "stepdsl.yaml"

// sqliteSidecars are the files WAL mode keeps next to the database.
var sqliteSidecars = []string{"-wal", "-shm"}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the feature directory, run database and stepdsl.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer, c config.Config) error {
	dir := filepath.ToSlash(c.Dir)
	_, err := os.Stat(c.Dir)
	dirExists := err == nil
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", dir, err)
	}
	if dirExists {
		fmt.Fprintf(w, "%s/ already exists\n", dir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", dir)
	}

	dbPath := filepath.ToSlash(c.DBPath())
	_, err = os.Stat(c.DBPath())
	dbExists := err == nil
	sqlDB, err := db.Open(c.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", dbPath)
	} else {
		fmt.Fprintf(w, "%s created\n", dbPath)
	}

	if err := writeProjectConfig(w, c); err != nil {
		return err
	}

	entries := []string{dbPath}
	for _, suffix := range sqliteSidecars {
		entries = append(entries, dbPath+suffix)
	}
	msgs, err := ensureGitignore(dir, entries)
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

// writeProjectConfig records c as stepdsl.yaml unless one already exists.
func writeProjectConfig(w io.Writer, c config.Config) error {
	if _, err := os.Stat(configFileName); err == nil {
		fmt.Fprintf(w, "%s already exists\n", configFileName)
		return nil
	}
	var buf bytes.Buffer
	if err := RunConfig(&buf, c); err != nil {
		return err
	}
	if err := os.WriteFile(configFileName, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", configFileName, err)
	}
	fmt.Fprintf(w, "%s created\n", configFileName)
	return nil
}

// ensureGitignore appends the database entries that .gitignore does not
// already cover. An ignored feature directory covers all of them.
func ensureGitignore(dir string, entries []string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(strings.Join(entries, "\n")+"\n"), 0o644); err != nil {
			return nil, err
		}
		msgs := []string{".gitignore created"}
		for _, e := range entries {
			msgs = append(msgs, e+" added to .gitignore")
		}
		return msgs, nil
	}
	if err != nil {
		return nil, err
	}

	present := map[string]bool{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.Trim(line, "/") == dir {
			return []string{dir + "/ already ignored in .gitignore"}, nil
		}
		present[line] = true
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	var msgs []string
	added := false
	for _, e := range entries {
		if present[e] {
			msgs = append(msgs, e+" already in .gitignore")
			continue
		}
		content += e + "\n"
		msgs = append(msgs, e+" added to .gitignore")
		added = true
	}
	if !added {
		return msgs, nil
	}

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return msgs, nil
}
