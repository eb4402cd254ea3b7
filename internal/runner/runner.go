// Package runner records batches of steps as if they had been executed.
package runner

import (
	"slices"
	"sync"

	"github.com/chriserin/stepdsl/internal/dslerr"
	"github.com/chriserin/stepdsl/internal/logger"
)

// LabelPrefix is prepended to every step Run reports back.
const LabelPrefix = "RUN: "

// StepRunner owns one execution history. The zero value is ready to use.
type StepRunner struct {
	mu       sync.Mutex
	executed []string
	failed   []string
	count    int
}

// ScenarioRunner is the older name for StepRunner.
//
// Deprecated: use StepRunner.
type ScenarioRunner = StepRunner

func New() *StepRunner {
	return &StepRunner{}
}

// Run appends steps to the history in order and returns one label per step.
func (r *StepRunner) Run(steps []string) []string {
	labels := make([]string, len(steps))
	for i, s := range steps {
		labels[i] = LabelPrefix + s
	}

	r.mu.Lock()
	r.executed = append(r.executed, steps...)
	r.count += len(steps)
	total := r.count
	r.mu.Unlock()

	logger.Component("runner").Debug("steps recorded", "batch", len(steps), "total", total)
	return labels
}

func (r *StepRunner) ExecutedSteps() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSteps(r.executed)
}

func (r *StepRunner) FailedSteps() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSteps(r.failed)
}

// MarkFailed records step as failed. The step must already be in the
// history; marking the same step twice records it twice.
func (r *StepRunner) MarkFailed(step string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.executed, step) {
		return dslerr.Precondition("mark_failed", "step was not executed")
	}
	r.failed = append(r.failed, step)
	return nil
}

// Reset clears the history, the failed list and the execution count.
func (r *StepRunner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executed = nil
	r.failed = nil
	r.count = 0
}

func (r *StepRunner) ExecutionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func cloneSteps(steps []string) []string {
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}
