package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/stepdsl/internal/parser"
	"github.com/chriserin/stepdsl/internal/ui"
)

var parseCmd = &cobra.Command{
	Use:   "parse <step>",
	Short: "Tokenize a step and show its keyword and quoted parameters",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunParse(cmd.OutOrStdout(), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func RunParse(w io.Writer, line string) error {
	sp := parser.NewStepParser()
	tokens, err := sp.Parse(line)
	if err != nil {
		return err
	}
	keyword, _ := sp.ExtractKeyword(line)
	ui.ParseReport(w, tokens, keyword, sp.ValidateStep(line), sp.ParseParameters(line))
	return nil
}
