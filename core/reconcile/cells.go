package reconcile

import "dataset-reconciler/core/dataset"

// CompareCells compares every cell of the aligned subset: rows and columns
// present in both datasets, ordered by key and column id. When more than
// cfg.MaxReportedDiffs cells differ a single Overflow carrying the true count
// replaces the individual mismatches.
func CompareCells(a, b *dataset.Dataset, cfg Config) []Finding {
	rows := intersectSorted(a.Index, b.Index, dataset.Key.Compare)
	cols := intersectSorted(a.ColumnIDs(), b.ColumnIDs(), dataset.ColumnID.Compare)
	if len(rows) == 0 || len(cols) == 0 {
		return nil
	}

	posA, posB := a.RowPositions(), b.RowPositions()
	valuesA := make([][]dataset.Value, len(cols))
	valuesB := make([][]dataset.Value, len(cols))
	for j, id := range cols {
		colA, _ := a.Column(id)
		colB, _ := b.Column(id)
		valuesA[j], valuesB[j] = colA.Values, colB.Values
	}

	var (
		candidates []Finding
		total      int
	)
	for _, row := range rows {
		ra, rb := posA[row], posB[row]
		for j, id := range cols {
			va, vb := valuesA[j][ra], valuesB[j][rb]
			if va.EqualWithin(vb, cfg.Tolerance) {
				continue
			}
			total++
			// Only materialize up to the ceiling; the scan continues for the count.
			if total <= cfg.MaxReportedDiffs {
				candidates = append(candidates, ValueMismatch{Row: row, Column: id, ValueA: va, ValueB: vb})
			}
		}
	}

	if total > cfg.MaxReportedDiffs {
		return []Finding{Overflow{TotalDiffCount: total, ReportedCount: 0}}
	}
	return candidates
}
