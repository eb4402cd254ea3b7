package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	trkStyle     = lipgloss.NewStyle().Faint(true)
	runStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func SummaryLine(w io.Writer, count int) {
	fmt.Fprintf(w, "synced %d features\n", count)
}

// RunLine prints one label returned by the runner, e.g. "RUN: Given a user".
func RunLine(w io.Writer, label string) {
	prefix, rest, ok := strings.Cut(label, ": ")
	if !ok {
		fmt.Fprintln(w, label)
		return
	}
	fmt.Fprintln(w, runStyle.Render(prefix+":")+" "+rest)
}

func FailLine(w io.Writer, step string) {
	fmt.Fprintln(w, failStyle.Render("FAIL:")+" "+step)
}

func WarnLine(w io.Writer, msg string) {
	fmt.Fprintln(w, warnStyle.Render("warn")+"  "+msg)
}

func RunSummary(w io.Writer, runID string, executed, failed int) {
	fmt.Fprintf(w, "run %s: %d executed, %d failed\n", runID, executed, failed)
}

// ShowHeader prints the heading of `stepdsl show`.
func ShowHeader(w io.Writer, runID, source, startedAt string) {
	fmt.Fprintln(w, headerStyle.Render("Run "+runID)+"  "+source)
	fmt.Fprintf(w, "Started: %s\n", startedAt)
}

// ShowStep prints one recorded step, marked when it failed.
func ShowStep(w io.Writer, position int, step string, failed bool) {
	marker := "  "
	if failed {
		marker = failStyle.Render("✗ ")
	}
	fmt.Fprintf(w, "%s%3d  %s\n", marker, position, step)
}

// ParseReport prints the decomposition of a single step line.
func ParseReport(w io.Writer, tokens []string, keyword string, valid bool, params []string) {
	if keyword == "" {
		keyword = "(none)"
	} else {
		keyword = keywordStyle.Render(keyword)
	}
	fmt.Fprintf(w, "Tokens:     %s\n", strings.Join(tokens, " | "))
	fmt.Fprintf(w, "Keyword:    %s\n", keyword)
	fmt.Fprintf(w, "Valid:      %t\n", valid)
	if len(params) == 0 {
		fmt.Fprintln(w, "Parameters: (none)")
		return
	}
	quoted := make([]string, len(params))
	for i, p := range params {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	fmt.Fprintf(w, "Parameters: %s\n", strings.Join(quoted, ", "))
}
