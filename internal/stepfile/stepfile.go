// Package stepfile decodes YAML step plans:
//
//	name: login
//	steps:
//	  - Given user "alice" opens the login page
//	  - When she submits
//	fail:
//	  - When she submits
package stepfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chriserin/stepdsl/internal/dslerr"
	"github.com/chriserin/stepdsl/internal/parser"
)

type Plan struct {
	Name  string
	Steps []string
	Fail  []string
}

type rawPlan struct {
	Name  string    `yaml:"name"`
	Steps yaml.Node `yaml:"steps"`
	Fail  yaml.Node `yaml:"fail"`
}

// Decode parses a plan. Steps and fail entries must be YAML sequences of
// strings; anything else is a TypeMismatch. Blank steps are rejected.
func Decode(data []byte) (*Plan, error) {
	var raw rawPlan
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}

	steps, err := stringList("steps", &raw.Steps)
	if err != nil {
		return nil, err
	}
	fail, err := stringList("fail", &raw.Fail)
	if err != nil {
		return nil, err
	}

	sp := parser.NewStepParser()
	for _, list := range [][]string{steps, fail} {
		for _, s := range list {
			if _, err := sp.Parse(s); err != nil {
				return nil, err
			}
		}
	}

	return &Plan{Name: raw.Name, Steps: steps, Fail: fail}, nil
}

// Load reads and decodes the plan at path. A plan without a name is named
// after the file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	plan, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if plan.Name == "" {
		plan.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return plan, nil
}

func stringList(field string, n *yaml.Node) ([]string, error) {
	if n.Kind == 0 {
		return []string{}, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, dslerr.Type(field, fmt.Sprintf("%s must be a list (line %d)", field, n.Line))
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			return nil, dslerr.Type(field, fmt.Sprintf("step must be a string (line %d)", item.Line))
		}
		out = append(out, item.Value)
	}
	return out, nil
}
