package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"dataset-reconciler/core/dataset"
)

// ErrInvalidInput is returned when the API is misused: a missing dataset,
// a malformed configuration or a dataset that violates its invariants.
// Data disagreement is never an error.
var ErrInvalidInput = errors.New("invalid input")

// Config holds the options recognized by a reconciliation. The zero Config
// is valid but is not the default: it leaves period indices alone and has a
// MaxReportedDiffs of 0, so any cell difference is reported as an Overflow.
// Start from DefaultConfig and override fields.
type Config struct {
	// NormalizePeriods converts period row indices to the instants of their
	// start before comparing.
	NormalizePeriods bool `json:"normalize_periods" mapstructure:"normalize_periods" default:"true"`

	// MaxReportedDiffs is the ceiling on individual cell differences reported
	// before the report switches to a single overflow summary.
	MaxReportedDiffs int `json:"max_reported_diffs" mapstructure:"max_reported_diffs" default:"1000"`

	// Tolerance is the absolute difference under which two numeric cells are
	// considered equal. Zero means exact equality.
	Tolerance float64 `json:"tolerance" mapstructure:"tolerance" default:"0"`
}

// DefaultConfig returns the default reconciliation options.
func DefaultConfig() Config {
	return Config{
		NormalizePeriods: true,
		MaxReportedDiffs: 1000,
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.MaxReportedDiffs < 0 {
		return fmt.Errorf("%w: max_reported_diffs must not be negative, got %d", ErrInvalidInput, c.MaxReportedDiffs)
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be a finite non-negative number, got %v", ErrInvalidInput, c.Tolerance)
	}
	return nil
}

// FindingKind discriminates findings.
type FindingKind string

const (
	KindShape    FindingKind = "shape_mismatch"
	KindIndex    FindingKind = "index_mismatch"
	KindColumns  FindingKind = "column_mismatch"
	KindType     FindingKind = "type_mismatch"
	KindValue    FindingKind = "value_mismatch"
	KindOverflow FindingKind = "overflow"
)

// Finding is one typed diagnostic fact about a difference between two datasets.
type Finding interface {
	Kind() FindingKind
	String() string
}

// ShapeMismatch reports differing (rows, columns) sizes.
type ShapeMismatch struct {
	ShapeA dataset.Shape `json:"shape_a"`
	ShapeB dataset.Shape `json:"shape_b"`
}

func (ShapeMismatch) Kind() FindingKind { return KindShape }

func (f ShapeMismatch) String() string {
	return fmt.Sprintf("Shape difference: a %s, b %s", f.ShapeA, f.ShapeB)
}

// IndexMismatch reports row-index keys present on one side only, and whether
// the keys common to both appear in a different order.
type IndexMismatch struct {
	OnlyInA      []dataset.Key `json:"only_in_a"`
	OnlyInB      []dataset.Key `json:"only_in_b"`
	OrderDiffers bool          `json:"order_differs"`
}

func (IndexMismatch) Kind() FindingKind { return KindIndex }

func (f IndexMismatch) String() string {
	return "Index difference: " + describeSets(joinKeys(f.OnlyInA), joinKeys(f.OnlyInB), f.OrderDiffers)
}

// ColumnMismatch reports column ids present on one side only, and whether the
// columns common to both appear in a different order.
type ColumnMismatch struct {
	OnlyInA      []dataset.ColumnID `json:"only_in_a"`
	OnlyInB      []dataset.ColumnID `json:"only_in_b"`
	OrderDiffers bool               `json:"order_differs"`
}

func (ColumnMismatch) Kind() FindingKind { return KindColumns }

func (f ColumnMismatch) String() string {
	return "Columns difference: " + describeSets(joinColumns(f.OnlyInA), joinColumns(f.OnlyInB), f.OrderDiffers)
}

// TypeMismatch reports a column declared with different value types.
type TypeMismatch struct {
	Column dataset.ColumnID `json:"column"`
	TypeA  dataset.DType    `json:"type_a"`
	TypeB  dataset.DType    `json:"type_b"`
}

func (TypeMismatch) Kind() FindingKind { return KindType }

func (f TypeMismatch) String() string {
	return fmt.Sprintf("Column type difference on %s: a %s, b %s", f.Column, f.TypeA, f.TypeB)
}

// ValueMismatch reports one unequal cell in the aligned subset.
type ValueMismatch struct {
	Row    dataset.Key      `json:"row"`
	Column dataset.ColumnID `json:"column"`
	ValueA dataset.Value    `json:"value_a"`
	ValueB dataset.Value    `json:"value_b"`
}

func (ValueMismatch) Kind() FindingKind { return KindValue }

func (f ValueMismatch) String() string {
	return fmt.Sprintf("Value difference at [%s, %s]: a %s, b %s", f.Row, f.Column, f.ValueA, f.ValueB)
}

// Overflow replaces individual value mismatches when there are more than the
// configured ceiling. TotalDiffCount is the true number of unequal cells.
type Overflow struct {
	TotalDiffCount int `json:"total_diff_count"`
	ReportedCount  int `json:"reported_count"`
}

func (Overflow) Kind() FindingKind { return KindOverflow }

func (f Overflow) String() string {
	return fmt.Sprintf("Too many element-wise differences to display: %d cells differ.", f.TotalDiffCount)
}

// Summary provides aggregate counts over a report's findings.
type Summary struct {
	ShapeA     dataset.Shape `json:"shape_a"`
	ShapeB     dataset.Shape `json:"shape_b"`
	Shape      int           `json:"shape"`
	Index      int           `json:"index"`
	Columns    int           `json:"columns"`
	Types      int           `json:"types"`
	Values     int           `json:"values"`
	TotalDiffs int           `json:"total_diffs"`
	Overflowed bool          `json:"overflowed"`
}

// Report is the outcome of one reconciliation. Findings are ordered by stage:
// structure, schema, cells.
type Report struct {
	Identical bool      `json:"identical"`
	Findings  []Finding `json:"findings"`
	Summary   Summary   `json:"summary"`

	// NormalizedPeriods records whether period indices were normalized.
	NormalizedPeriods bool `json:"normalized_periods"`
}

// FindingsOf returns the findings of the given kind in report order.
func (r *Report) FindingsOf(kind FindingKind) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind() == kind {
			out = append(out, f)
		}
	}
	return out
}

// MarshalJSON encodes each finding with its kind discriminator.
func (r *Report) MarshalJSON() ([]byte, error) {
	type wireFinding struct {
		Kind    FindingKind `json:"kind"`
		Message string      `json:"message"`
		Detail  Finding     `json:"detail"`
	}
	findings := make([]wireFinding, len(r.Findings))
	for i, f := range r.Findings {
		findings[i] = wireFinding{Kind: f.Kind(), Message: f.String(), Detail: f}
	}
	return json.Marshal(struct {
		Identical         bool          `json:"identical"`
		NormalizedPeriods bool          `json:"normalized_periods"`
		Findings          []wireFinding `json:"findings"`
		Summary           Summary       `json:"summary"`
	}{r.Identical, r.NormalizedPeriods, findings, r.Summary})
}

func describeSets(onlyA, onlyB string, orderDiffers bool) string {
	var parts []string
	if onlyA != "" {
		parts = append(parts, "only in a ["+onlyA+"]")
	}
	if onlyB != "" {
		parts = append(parts, "only in b ["+onlyB+"]")
	}
	if orderDiffers {
		parts = append(parts, "order differs")
	}
	return strings.Join(parts, "; ")
}

func joinKeys(keys []dataset.Key) string {
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = k.String()
	}
	return strings.Join(s, ", ")
}

func joinColumns(ids []dataset.ColumnID) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = id.String()
	}
	return strings.Join(s, ", ")
}
