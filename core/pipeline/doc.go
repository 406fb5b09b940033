// Package pipeline runs ordered preparation steps over a dataset before it
// is reconciled.
//
// A Step is a named list of Transform functions. A Pipeline runs its steps in
// order and stops at the first error. Typical pipelines load, transform and
// clean:
//
//	p := pipeline.New(logger,
//	    pipeline.Step{Name: "transform", Transforms: []pipeline.Transform{pipeline.RenameColumns(renames)}},
//	    pipeline.Step{Name: "clean", Transforms: []pipeline.Transform{pipeline.DropMissingRows()}},
//	)
//	prepared, err := p.Run(ctx, d)
package pipeline
