package engine

import (
	"context"
	"fmt"

	"github.com/custodia-labs/dupecheck/internal/logger"
)

// Stage is one step of the analysis pipeline.
type Stage interface {
	// Name returns the stage name for logging and error messages.
	Name() string

	// Run reads and extends the shared run state.
	Run(ctx context.Context, r *run) error
}

// Pipeline chains stages and runs them in order.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline with the given stages.
// Stages are executed in the order provided.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Execute runs every stage, stopping at the first failure.
func (p *Pipeline) Execute(ctx context.Context, r *run) error {
	for _, stage := range p.stages {
		done := logger.Timed("stage " + stage.Name())
		err := stage.Run(ctx, r)
		done()
		if err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
	}
	return nil
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}
