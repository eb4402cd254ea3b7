package parser

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`@[^@\s]+`)

// Parse reads a .feature file and returns its Document and any parse errors.
// Step lines inside Background and Scenario blocks are classified with a
// StepParser; other text before the first step becomes the description.
func Parse(filename string, content []byte) (*Document, []ParseError) {
	content = []byte(strings.ReplaceAll(string(content), "\r\n", "\n"))
	lines := strings.Split(string(content), "\n")
	sp := NewStepParser()
	var errors []ParseError

	doc := &Document{}
	feature := &Feature{}
	doc.Feature = feature

	i := 0

	// Skip leading blanks and comments
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			i++
			continue
		}
		break
	}

	// Feature-level tags
	var featureTags []Tag
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if isTagLine(trimmed) {
			featureTags = append(featureTags, parseTags(trimmed)...)
			i++
			continue
		}
		break
	}
	feature.Header.Tags = featureTags

	if i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "Feature:") {
		trimmed := strings.TrimSpace(lines[i])
		feature.Header.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, "Feature:"))
		i++

		var descLines []string
		for i < len(lines) {
			trimmed := strings.TrimSpace(lines[i])
			if isKeyword(trimmed) || isTagLine(trimmed) {
				break
			}
			descLines = append(descLines, lines[i])
			i++
		}
		feature.Header.Description = strings.TrimSpace(strings.Join(descLines, "\n"))
	} else {
		// No Feature: line, name it after the file
		feature.Header.Name = filenameWithoutExt(filename)
	}

	var pendingTags []Tag
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		if isDocStringDelimiter(trimmed) {
			i = skipDocString(lines, i)
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			i++
			continue
		}

		if isTagLine(trimmed) {
			pendingTags = append(pendingTags, parseTags(trimmed)...)
			i++
			continue
		}

		if strings.HasPrefix(trimmed, "Background:") {
			pendingTags = nil // Background doesn't get tags
			bg := &Background{Line: i + 1}
			i++
			bg.Steps, _, i = collectSteps(sp, lines, i)
			feature.Background = bg
			continue
		}

		if strings.HasPrefix(trimmed, "Scenario:") {
			sd := ScenarioDefinition{
				Tags:     pendingTags,
				Scenario: Scenario{Name: strings.TrimSpace(strings.TrimPrefix(trimmed, "Scenario:"))},
				Line:     i + 1,
			}
			pendingTags = nil
			i++
			sd.Scenario.Steps, sd.Scenario.Description, i = collectSteps(sp, lines, i)
			feature.Scenarios = append(feature.Scenarios, sd)
			continue
		}

		if msg, ok := unsupported(trimmed); ok {
			errors = append(errors, ParseError{Line: i + 1, Message: msg})
			pendingTags = nil
			i++
			_, _, i = collectSteps(sp, lines, i)
			continue
		}

		// Stray content outside any block
		i++
	}

	return doc, errors
}

// collectSteps consumes the body of a block starting at i. It returns the
// step lines found, the description text that precedes the first step, and
// the index of the first line that belongs to the next block.
func collectSteps(sp *StepParser, lines []string, i int) ([]Step, string, int) {
	var steps []Step
	var descLines []string
	for i < len(lines) {
		t := strings.TrimSpace(lines[i])
		if isDocStringDelimiter(t) {
			i = skipDocString(lines, i)
			continue
		}
		if isKeyword(t) {
			break
		}
		if isTagLine(t) && tagPrecedesKeyword(lines, i) {
			break
		}
		if t == "" || strings.HasPrefix(t, "#") {
			i++
			continue
		}
		if kw, text, ok := sp.splitStep(t); ok {
			steps = append(steps, Step{
				Keyword: kw,
				Text:    text,
				Params:  sp.ParseParameters(text),
				Line:    i + 1,
			})
		} else if len(steps) == 0 {
			descLines = append(descLines, t)
		} else if !strings.HasPrefix(t, "|") {
			// Unknown keyword; kept so callers can warn and still run it.
			steps = append(steps, Step{
				Text:   t,
				Params: sp.ParseParameters(t),
				Line:   i + 1,
			})
		}
		i++
	}
	return steps, strings.Join(descLines, "\n"), i
}

func unsupported(trimmed string) (string, bool) {
	switch {
	case strings.HasPrefix(trimmed, "Scenario Outline:"):
		return "Scenario Outline is not supported", true
	case strings.HasPrefix(trimmed, "Rule:"):
		return "Rule is not supported", true
	case strings.HasPrefix(trimmed, "Examples:"):
		return "Examples is not supported", true
	}
	return "", false
}

func parseTags(line string) []Tag {
	matches := tagPattern.FindAllString(line, -1)
	var tags []Tag
	for _, m := range matches {
		tags = append(tags, Tag{Name: m})
	}
	return tags
}

func isTagLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "@")
}

func isKeyword(trimmed string) bool {
	return strings.HasPrefix(trimmed, "Feature:") ||
		strings.HasPrefix(trimmed, "Background:") ||
		strings.HasPrefix(trimmed, "Scenario:") ||
		strings.HasPrefix(trimmed, "Scenario Outline:") ||
		strings.HasPrefix(trimmed, "Rule:") ||
		strings.HasPrefix(trimmed, "Examples:")
}

func isDocStringDelimiter(trimmed string) bool {
	return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "```")
}

// skipDocString advances past a doc string block. i points at the opening delimiter.
// Returns the index of the line after the closing delimiter.
func skipDocString(lines []string, i int) int {
	opener := strings.TrimSpace(lines[i])
	delimiter := `"""`
	if strings.HasPrefix(opener, "```") {
		delimiter = "```"
	}
	i++
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == delimiter {
			return i + 1
		}
		i++
	}
	return i // EOF without closing delimiter
}

// tagPrecedesKeyword checks if a tag line at index i is followed by a block keyword.
func tagPrecedesKeyword(lines []string, i int) bool {
	for j := i + 1; j < len(lines); j++ {
		t := strings.TrimSpace(lines[j])
		if t == "" || strings.HasPrefix(t, "#") || isTagLine(t) {
			continue
		}
		return isKeyword(t) && !strings.HasPrefix(t, "Feature:")
	}
	return false
}

func filenameWithoutExt(filename string) string {
	name := filename
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[:idx]
	}
	return name
}
