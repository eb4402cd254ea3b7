package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunLine(t *testing.T) {
	var buf bytes.Buffer
	RunLine(&buf, "RUN: Given a user")
	assert.Equal(t, "RUN: Given a user\n", buf.String())
}

func TestParseReport_NoKeywordNoParams(t *testing.T) {
	var buf bytes.Buffer
	ParseReport(&buf, []string{"click", "button"}, "", false, nil)
	out := buf.String()
	assert.Contains(t, out, "Tokens:     click | button")
	assert.Contains(t, out, "Keyword:    (none)")
	assert.Contains(t, out, "Valid:      false")
	assert.Contains(t, out, "Parameters: (none)")
}

func TestParseReport_Params(t *testing.T) {
	var buf bytes.Buffer
	ParseReport(&buf, []string{"Given", `"Alice"`}, "Given", true, []string{"Alice", "secret"})
	assert.Contains(t, buf.String(), `Parameters: "Alice", "secret"`)
}

func TestRunTable_Totals(t *testing.T) {
	var buf bytes.Buffer
	RunTable(&buf, []RunRow{
		{ID: "r1", Source: "login.feature", Executed: 3, Failed: 1, StartedAt: "2026-01-01 10:00:00"},
		{ID: "r2", Source: "cart.yaml", Executed: 2, Failed: 0, StartedAt: "2026-01-01 11:00:00"},
	})
	out := buf.String()
	assert.Contains(t, out, "login.feature")
	assert.Contains(t, out, "cart.yaml")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "╭")
}

func TestShowStep_MarksFailures(t *testing.T) {
	var buf bytes.Buffer
	ShowStep(&buf, 1, "Given a user", false)
	ShowStep(&buf, 2, "When it breaks", true)
	assert.Contains(t, buf.String(), "    1  Given a user")
	assert.Contains(t, buf.String(), "✗   2  When it breaks")
}
