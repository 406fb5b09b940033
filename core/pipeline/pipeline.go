package pipeline

import (
	"context"
	"fmt"
	"time"

	"dataset-reconciler/core/dataset"

	"go.uber.org/zap"
)

// Transform derives a new dataset from d. Implementations must not modify d.
type Transform func(d *dataset.Dataset) (*dataset.Dataset, error)

// Step is a named group of transforms applied in order.
type Step struct {
	Name       string
	Transforms []Transform
}

// Pipeline runs steps in order.
type Pipeline struct {
	Steps  []Step
	logger *zap.Logger
}

// New creates a pipeline. A nil logger disables logging.
func New(logger *zap.Logger, steps ...Step) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{Steps: steps, logger: logger}
}

// Then appends a step and returns the pipeline.
func (p *Pipeline) Then(name string, transforms ...Transform) *Pipeline {
	p.Steps = append(p.Steps, Step{Name: name, Transforms: transforms})
	return p
}

// Run applies every step to d and returns the result. The input is never modified.
// The context is checked between transforms.
func (p *Pipeline) Run(ctx context.Context, d *dataset.Dataset) (*dataset.Dataset, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil dataset", dataset.ErrMalformed)
	}

	cur := d
	for _, step := range p.Steps {
		start := time.Now()
		before := cur.Shape()

		for i, t := range step.Transforms {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			next, err := t(cur)
			if err != nil {
				return nil, fmt.Errorf("step %s transform %d: %w", step.Name, i, err)
			}
			cur = next
		}

		p.logger.Debug("Pipeline step complete",
			zap.String("step", step.Name),
			zap.Stringer("shape_before", before),
			zap.Stringer("shape_after", cur.Shape()),
			zap.Duration("duration", time.Since(start)),
		)
	}

	if err := cur.Validate(); err != nil {
		return nil, err
	}
	return cur, nil
}
