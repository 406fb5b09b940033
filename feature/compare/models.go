package compare

import (
	"fmt"

	"dataset-reconciler/core/dataset"
	"dataset-reconciler/core/pipeline"
	"dataset-reconciler/core/reconcile"
)

// Request is the body of POST /compare.
type Request struct {
	// A and B are dataset references (path, s3://, db://).
	A string `json:"a" example:"s3://prices/expected.csv"`
	B string `json:"b" example:"db://prices?index=day"`
	// Options override the configured reconciliation defaults.
	Options Options `json:"options"`
	// Read overrides the configured CSV/JSON decoding defaults.
	Read ReadOverrides `json:"read"`
	// Prepare is applied to both datasets before comparing.
	Prepare pipeline.Options `json:"prepare"`
	// Refresh drops cached copies of A and B before loading them.
	Refresh bool `json:"refresh,omitempty"`
}

// Options are per-request reconciliation overrides. Nil fields keep the defaults.
type Options struct {
	NormalizePeriods *bool    `json:"normalize_periods,omitempty"`
	MaxReportedDiffs *int     `json:"max_reported_diffs,omitempty"`
	Tolerance        *float64 `json:"tolerance,omitempty"`
}

// Apply returns cfg with the overrides applied.
func (o Options) Apply(cfg reconcile.Config) reconcile.Config {
	if o.NormalizePeriods != nil {
		cfg.NormalizePeriods = *o.NormalizePeriods
	}
	if o.MaxReportedDiffs != nil {
		cfg.MaxReportedDiffs = *o.MaxReportedDiffs
	}
	if o.Tolerance != nil {
		cfg.Tolerance = *o.Tolerance
	}
	return cfg
}

// ReadOverrides are per-request decoding overrides. Nil and empty fields keep the defaults.
type ReadOverrides struct {
	HeaderRows  *int              `json:"header_rows,omitempty"`
	IndexColumn *int              `json:"index_column,omitempty"`
	IndexKind   dataset.IndexKind `json:"index_kind,omitempty"`
	PeriodFreq  dataset.Freq      `json:"period_freq,omitempty"`
	Decimal     *bool             `json:"decimal,omitempty"`
}

// Apply returns opts with the overrides applied. An unknown index kind or
// period frequency is rejected with ErrInvalidInput.
func (r ReadOverrides) Apply(opts dataset.ReadOptions) (dataset.ReadOptions, error) {
	if r.HeaderRows != nil {
		opts.HeaderRows = *r.HeaderRows
	}
	if r.IndexColumn != nil {
		opts.IndexColumn = *r.IndexColumn
	}
	if r.IndexKind != "" {
		switch r.IndexKind {
		case dataset.IndexAuto, dataset.IndexInstant, dataset.IndexPeriod, dataset.IndexInt, dataset.IndexLabel:
			opts.IndexKind = r.IndexKind
		default:
			return opts, fmt.Errorf("%w: unknown index kind %q", reconcile.ErrInvalidInput, r.IndexKind)
		}
	}
	if r.PeriodFreq != "" {
		freq, err := dataset.ParseFreq(string(r.PeriodFreq))
		if err != nil {
			return opts, fmt.Errorf("%w: %v", reconcile.ErrInvalidInput, err)
		}
		opts.PeriodFreq = freq
	}
	if r.Decimal != nil {
		opts.Decimal = *r.Decimal
	}
	return opts, nil
}

// Inspection summarizes one dataset.
type Inspection struct {
	Ref         string          `json:"ref"`
	Shape       dataset.Shape   `json:"shape"`
	IndexKind   string          `json:"index_kind"`
	Freq        dataset.Freq    `json:"freq,omitempty"`
	Columns     []ColumnSummary `json:"columns"`
	Fingerprint string          `json:"fingerprint"`
}

// ColumnSummary describes one column of an inspected dataset.
type ColumnSummary struct {
	ID      dataset.ColumnID `json:"id"`
	Type    dataset.DType    `json:"type"`
	Missing int              `json:"missing"`
}
