package reconcile

import (
	"fmt"

	"dataset-reconciler/core/dataset"
)

// Stage is one comparison pass over two normalized datasets.
type Stage func(a, b *dataset.Dataset, cfg Config) []Finding

// stages run in order; each appends its findings regardless of earlier stages.
var stages = []Stage{
	func(a, b *dataset.Dataset, _ Config) []Finding { return CompareStructure(a, b) },
	func(a, b *dataset.Dataset, _ Config) []Finding { return CompareSchema(a, b) },
	CompareCells,
}

// Reconcile compares two datasets and returns a report describing how they
// differ. Structural and content differences are findings, not errors; an
// error wrapping ErrInvalidInput is returned only when a dataset is nil or
// malformed, or when cfg is invalid. Neither dataset is modified.
//
// cfg is used as given. A zero Config does not mean DefaultConfig; see Config.
func Reconcile(a, b *dataset.Dataset, cfg Config) (*Report, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: dataset a is nil", ErrInvalidInput)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: dataset b is nil", ErrInvalidInput)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w: dataset a: %v", ErrInvalidInput, err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: dataset b: %v", ErrInvalidInput, err)
	}

	na, nb := Normalize(a, cfg), Normalize(b, cfg)

	report := &Report{
		NormalizedPeriods: cfg.NormalizePeriods,
		Findings:          []Finding{},
	}
	for _, stage := range stages {
		report.Findings = append(report.Findings, stage(na, nb, cfg)...)
	}

	report.Identical = len(report.Findings) == 0
	report.Summary = summarize(report.Findings, na.Shape(), nb.Shape())
	return report, nil
}

// summarize builds aggregate counts for a list of findings.
func summarize(findings []Finding, shapeA, shapeB dataset.Shape) Summary {
	s := Summary{ShapeA: shapeA, ShapeB: shapeB}
	for _, f := range findings {
		switch f := f.(type) {
		case ShapeMismatch:
			s.Shape++
		case IndexMismatch:
			s.Index++
		case ColumnMismatch:
			s.Columns++
		case TypeMismatch:
			s.Types++
		case ValueMismatch:
			s.Values++
			s.TotalDiffs++
		case Overflow:
			s.Overflowed = true
			s.TotalDiffs = f.TotalDiffCount
		}
	}
	return s
}
