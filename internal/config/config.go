// Package config holds the settings a stepdsl invocation runs with.
//
// A Config is a plain value: Defaults builds one, the With* methods return
// modified copies, and Load overlays a config file, STEPDSL_* environment
// variables and bound CLI flags through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/chriserin/stepdsl/internal/dslerr"
)

const (
	DefaultDir      = "features"
	DefaultDatabase = "stepdsl.db"
	DefaultTimeout  = 30 * time.Second
	MinTimeout      = time.Second
)

var envKeyReplacer = strings.NewReplacer("-", "_")

var (
	Languages = []string{"en", "es", "fr"}
	Browsers  = []string{"chrome", "firefox"}
)

type Config struct {
	Dir      string        `mapstructure:"dir"`
	Database string        `mapstructure:"database"`
	LogLevel string        `mapstructure:"log-level"`
	LogFile  string        `mapstructure:"log-file"`
	Language string        `mapstructure:"language"`
	Browser  string        `mapstructure:"browser"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Headless bool          `mapstructure:"headless"`
}

func Defaults() Config {
	return Config{
		Dir:      DefaultDir,
		Database: DefaultDatabase,
		LogLevel: "warn",
		Language: "en",
		Browser:  "chrome",
		Timeout:  DefaultTimeout,
		Headless: false,
	}
}

func (c Config) WithLanguage(lang string) (Config, error) {
	if !slices.Contains(Languages, lang) {
		return c, dslerr.Precondition("language", fmt.Sprintf("unsupported language %q", lang))
	}
	c.Language = lang
	return c, nil
}

func (c Config) WithBrowser(browser string) (Config, error) {
	if !slices.Contains(Browsers, browser) {
		return c, dslerr.Precondition("browser", fmt.Sprintf("unsupported browser %q", browser))
	}
	c.Browser = browser
	return c, nil
}

func (c Config) WithTimeout(d time.Duration) (Config, error) {
	if d <= 0 {
		return c, dslerr.Precondition("timeout", "timeout must be positive")
	}
	// A unitless YAML or env value decodes as nanoseconds.
	if d < MinTimeout {
		return c, dslerr.Precondition("timeout", fmt.Sprintf("timeout %s is below %s; give a unit, e.g. 30s", d, MinTimeout))
	}
	c.Timeout = d
	return c, nil
}

func (c Config) WithHeadless(headless bool) Config {
	c.Headless = headless
	return c
}

// Validate checks every field a With* builder would check.
func (c Config) Validate() error {
	if err := dslerr.RequireNonBlank("dir", "dir cannot be empty", c.Dir); err != nil {
		return err
	}
	if err := dslerr.RequireNonBlank("database", "database cannot be empty", c.Database); err != nil {
		return err
	}
	if _, err := c.WithLanguage(c.Language); err != nil {
		return err
	}
	if _, err := c.WithBrowser(c.Browser); err != nil {
		return err
	}
	if _, err := c.WithTimeout(c.Timeout); err != nil {
		return err
	}
	return nil
}

// DBPath is where the run database lives.
func (c Config) DBPath() string {
	return filepath.Join(c.Dir, c.Database)
}

// NewViper returns a viper instance seeded with Defaults and reading
// STEPDSL_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("dir", d.Dir)
	v.SetDefault("database", d.Database)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-file", d.LogFile)
	v.SetDefault("language", d.Language)
	v.SetDefault("browser", d.Browser)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("headless", d.Headless)
	v.SetEnvPrefix("STEPDSL")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	return v
}

// Load reads configFile when set, otherwise an optional stepdsl.yaml in the
// working directory, and returns the validated result.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("stepdsl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadEnvFile exports the variables of a .env file into the process
// environment without overriding ones already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	env, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for k, val := range env {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}
	return nil
}
