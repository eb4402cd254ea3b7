package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/stepdsl/internal/config"
)

func runStatus(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunStatus(&buf, config.Defaults()))
	return buf.String()
}

func TestStatus_EmptyProject(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runStatus(t)

	assert.Equal(t, "Features: 0\nRuns: 0\nSteps executed: 0\nSteps failed: 0\n", out)
}

func TestStatus_CountsRunsAndSteps(t *testing.T) {
	inTempDir(t)
	runInit(t)
	deterministicRunIDs(t)
	require.NoError(t, os.WriteFile("features/login.feature", []byte(loginFeature), 0o644))
	runSync(t)
	runSteps(t, []string{"features/login.feature"})
	runSteps(t, []string{"features/login.feature"}, "Then an error is shown")

	out := runStatus(t)

	assert.Contains(t, out, "Features: 1\n")
	assert.Contains(t, out, "Runs: 2\n")
	assert.Contains(t, out, "Steps executed: 12\n")
	assert.Contains(t, out, "Steps failed: 1\n")
	assert.Contains(t, out, "Most failed:\n  Then an error is shown: 1\n")
}

func TestStatus_MostFailedOrdering(t *testing.T) {
	inTempDir(t)
	runInit(t)
	deterministicRunIDs(t)
	require.NoError(t, os.WriteFile("plan.yaml", []byte("steps:\n  - Given a\n  - When b\n"), 0o644))
	runSteps(t, []string{"plan.yaml"}, "When b")
	runSteps(t, []string{"plan.yaml"}, "When b", "Given a")

	out := runStatus(t)

	assert.Less(t, strings.Index(out, "When b: 2"), strings.Index(out, "Given a: 1"))
}

func TestStatus_LimitsFailureBreakdown(t *testing.T) {
	inTempDir(t)
	runInit(t)
	deterministicRunIDs(t)
	var plan strings.Builder
	plan.WriteString("steps:\n")
	var fails []string
	for i := 1; i <= topFailures+2; i++ {
		step := fmt.Sprintf("Then check %d", i)
		fmt.Fprintf(&plan, "  - %s\n", step)
		fails = append(fails, step)
	}
	require.NoError(t, os.WriteFile("plan.yaml", []byte(plan.String()), 0o644))
	runSteps(t, []string{"plan.yaml"}, fails...)

	out := runStatus(t)
	_, breakdown, ok := strings.Cut(out, "Most failed:\n")
	require.True(t, ok)

	assert.Equal(t, topFailures, strings.Count(breakdown, "\n"))
}

func TestStatus_RequiresInit(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	err := RunStatus(&buf, config.Defaults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run `stepdsl init` first")
}
