package reconcile

import "dataset-reconciler/core/dataset"

// Normalize returns a copy of d whose period row index, if any, is replaced by
// the instants of each period's start. Other index kinds and a disabled
// NormalizePeriods option yield an unchanged copy. d is never modified.
func Normalize(d *dataset.Dataset, cfg Config) *dataset.Dataset {
	out := d.Clone()
	if !cfg.NormalizePeriods || !out.Index.IsPeriod() {
		return out
	}
	for i, k := range out.Index {
		out.Index[i] = k.ToInstant()
	}
	return out
}
