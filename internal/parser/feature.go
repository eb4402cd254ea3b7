package parser

import (
	"strings"
	"sync"

	"github.com/chriserin/stepdsl/internal/dslerr"
	"github.com/chriserin/stepdsl/internal/logger"
)

// FeatureParser accumulates feature texts across calls.
type FeatureParser struct {
	mu       sync.Mutex
	features []string
}

func NewFeatureParser() *FeatureParser {
	return &FeatureParser{}
}

// ParseFeature stores text trimmed as a whole block and returns it.
// Inner lines are left untouched.
func (f *FeatureParser) ParseFeature(text string) (string, error) {
	if err := dslerr.RequireNonBlank("parse_feature", "feature cannot be empty", text); err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(text)

	f.mu.Lock()
	f.features = append(f.features, trimmed)
	count := len(f.features)
	f.mu.Unlock()

	logger.Component("feature-parser").Debug("feature accepted", "count", count, "bytes", len(trimmed))
	return trimmed, nil
}

func (f *FeatureParser) FeatureCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.features)
}

// Features returns a copy of every accepted feature, oldest first.
func (f *FeatureParser) Features() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.features))
	copy(out, f.features)
	return out
}
