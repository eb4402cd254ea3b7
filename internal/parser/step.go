package parser

import (
	"regexp"
	"strings"

	"github.com/chriserin/stepdsl/internal/dslerr"
)

// Keywords is the closed set of leading tokens a step may start with.
var Keywords = []string{"Given", "When", "Then", "And", "But"}

var paramPattern = regexp.MustCompile(`"([^"]*)"`)

// StepParser classifies and decomposes single step lines. It holds no state
// beyond the keyword set, so one value can be reused freely.
type StepParser struct {
	keywords map[string]struct{}
}

func NewStepParser() *StepParser {
	kw := make(map[string]struct{}, len(Keywords))
	for _, k := range Keywords {
		kw[k] = struct{}{}
	}
	return &StepParser{keywords: kw}
}

// Parse splits text into whitespace-delimited tokens.
func (p *StepParser) Parse(text string) ([]string, error) {
	if err := dslerr.RequireNonBlank("parse", "step cannot be empty", text); err != nil {
		return nil, err
	}
	return strings.Fields(text), nil
}

// ValidateStep reports whether the first token of step is a keyword.
// A blank step is not valid.
func (p *StepParser) ValidateStep(step string) bool {
	_, ok := p.ExtractKeyword(step)
	return ok
}

// ExtractKeyword returns the leading keyword of step. ok is false when the
// step is blank or starts with anything else.
func (p *StepParser) ExtractKeyword(step string) (keyword string, ok bool) {
	words := strings.Fields(step)
	if len(words) == 0 {
		return "", false
	}
	if _, known := p.keywords[words[0]]; !known {
		return "", false
	}
	return words[0], true
}

// ParseParameters returns the contents of every double-quoted span in step,
// left to right.
func (p *StepParser) ParseParameters(step string) []string {
	params := []string{}
	for _, m := range paramPattern.FindAllStringSubmatch(step, -1) {
		params = append(params, m[1])
	}
	return params
}

// splitStep separates a step line into its keyword and the remaining text.
func (p *StepParser) splitStep(line string) (keyword, text string, ok bool) {
	keyword, ok = p.ExtractKeyword(line)
	if !ok {
		return "", "", false
	}
	trimmed := strings.TrimSpace(line)
	return keyword, strings.TrimSpace(strings.TrimPrefix(trimmed, keyword)), true
}
