package pipeline

import "go.uber.org/zap"

// Options describes the builtin preparation applied to both sides of a
// comparison. The zero value prepares nothing.
type Options struct {
	// Group keeps one column group of a two-level dataset and flattens its ids.
	Group string `json:"group,omitempty"`
	// NormalizeNames rewrites column names as lowercase ASCII identifiers.
	// It runs after Group and before Rename.
	NormalizeNames bool `json:"normalize_names,omitempty"`
	// Rename maps old column names to new ones.
	Rename map[string]string `json:"rename,omitempty"`
	// Select keeps only these columns, in this order.
	Select []string `json:"select,omitempty"`
	// DropMissing removes rows where every cell is missing.
	DropMissing bool `json:"drop_missing,omitempty"`
	// Sort orders rows by index key.
	Sort bool `json:"sort,omitempty"`
}

// IsZero reports whether o prepares nothing.
func (o Options) IsZero() bool {
	return o.Group == "" && !o.NormalizeNames && len(o.Rename) == 0 && len(o.Select) == 0 && !o.DropMissing && !o.Sort
}

// Build returns the pipeline for o: a transform step (group, names,
// rename, select) followed by a clean step (drop missing, sort).
func (o Options) Build(logger *zap.Logger) *Pipeline {
	var transform, clean []Transform
	if o.Group != "" {
		transform = append(transform, FilterGroup(o.Group))
	}
	if o.NormalizeNames {
		transform = append(transform, NormalizeColumnNames())
	}
	if len(o.Rename) > 0 {
		transform = append(transform, RenameColumns(o.Rename))
	}
	if len(o.Select) > 0 {
		transform = append(transform, SelectColumns(o.Select...))
	}
	if o.DropMissing {
		clean = append(clean, DropMissingRows())
	}
	if o.Sort {
		clean = append(clean, SortIndex())
	}

	p := New(logger)
	if len(transform) > 0 {
		p.Then("transform", transform...)
	}
	if len(clean) > 0 {
		p.Then("clean", clean...)
	}
	return p
}
