package cmd

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/stepdsl/internal/config"
)

func TestConfig_PrintsDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunConfig(&buf, config.Defaults()))

	assert.Equal(t, `dir: features
database: stepdsl.db
log-level: warn
language: en
browser: chrome
timeout: 30s
headless: false
`, buf.String())
}

func TestConfig_OutputLoadsBack(t *testing.T) {
	inTempDir(t)
	c, err := config.Defaults().WithLanguage("fr")
	require.NoError(t, err)
	c, err = c.WithTimeout(5 * time.Second)
	require.NoError(t, err)
	c = c.WithHeadless(true)

	var buf bytes.Buffer
	require.NoError(t, RunConfig(&buf, c))
	require.NoError(t, os.WriteFile("stepdsl.yaml", buf.Bytes(), 0o644))

	loaded, err := config.Load(config.NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestRoot_FlagsOverrideConfig(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("stepdsl.yaml", []byte("browser: chrome\nlanguage: es\n"), 0o644))

	origCfg, origV := cfg, v
	t.Cleanup(func() { cfg, v = origCfg, origV })
	v = config.NewViper()
	flags := rootCmd.PersistentFlags()
	require.NoError(t, v.BindPFlag("browser", flags.Lookup("browser")))
	require.NoError(t, flags.Set("browser", "firefox"))
	t.Cleanup(func() {
		flags.Set("browser", "")
		flags.Lookup("browser").Changed = false
	})

	require.NoError(t, loadConfig())

	assert.Equal(t, "firefox", cfg.Browser)
	assert.Equal(t, "es", cfg.Language)
}
