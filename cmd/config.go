package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/stepdsl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunConfig(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configView is the YAML shape of a Config, readable back as stepdsl.yaml.
type configView struct {
	Dir      string `yaml:"dir"`
	Database string `yaml:"database"`
	LogLevel string `yaml:"log-level"`
	LogFile  string `yaml:"log-file,omitempty"`
	Language string `yaml:"language"`
	Browser  string `yaml:"browser"`
	Timeout  string `yaml:"timeout"`
	Headless bool   `yaml:"headless"`
}

func RunConfig(w io.Writer, c config.Config) error {
	out, err := yaml.Marshal(configView{
		Dir:      c.Dir,
		Database: c.Database,
		LogLevel: c.LogLevel,
		LogFile:  c.LogFile,
		Language: c.Language,
		Browser:  c.Browser,
		Timeout:  c.Timeout.String(),
		Headless: c.Headless,
	})
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = w.Write(out)
	return err
}
