package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepdsl/internal/config"
	"github.com/chriserin/stepdsl/internal/db"
	"github.com/chriserin/stepdsl/internal/logger"
)

var (
	cfgFile string
	envFile string
	cfg     = config.Defaults()
	v       = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:           "stepdsl",
	Short:         "stepdsl — parse, run and record Given/When/Then steps",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ./stepdsl.yaml)")
	flags.StringVar(&envFile, "env-file", ".env", "Environment file applied before reading STEPDSL_* variables")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.String("dir", "", "Directory holding .feature files and the run database")
	flags.String("language", "", "Step language (en|es|fr)")
	flags.String("browser", "", "Browser recorded with each run (chrome|firefox)")
	flags.Duration("timeout", 0, "Step timeout recorded with each run")
	flags.Bool("headless", false, "Record runs as headless")

	for _, name := range []string{"log-level", "log-file", "dir", "language", "browser", "timeout", "headless"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func loadConfig() error {
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}
	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	logger.Debug("config loaded", "dir", cfg.Dir, "database", cfg.Database)
	return nil
}

// openProject opens the run database of an initialized project.
func openProject(c config.Config) (*sql.DB, error) {
	if _, err := os.Stat(c.Dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("run `stepdsl init` first")
	}
	sqlDB, err := db.Open(c.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return sqlDB, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
