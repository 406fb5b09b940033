// Package reconcile compares two in-memory datasets that are expected to hold
// the same data and explains how they differ.
//
// A reconciliation is a fixed sequence of diagnostic stages. Every stage
// appends its findings to the report independently of the others:
//
//  1. Normalize: period row indices become the instants of their start, on
//     comparator-owned copies (Config.NormalizePeriods).
//  2. Structure: shape, row-index membership and order, column membership and
//     order (two-level column ids compare by full identity).
//  3. Schema: declared value types of columns present in both datasets.
//  4. Cells: element-wise comparison of the aligned subset (common rows and
//     columns, each in a shared total order). When more than
//     Config.MaxReportedDiffs cells differ, a single Overflow with the true
//     count replaces the individual mismatches.
//
// Differences are data, not failures. Reconcile only returns an error, wrapping
// ErrInvalidInput, when it is called with a nil or malformed dataset or an
// invalid Config.
//
// # Usage Example
//
//	report, err := reconcile.Reconcile(a, b, reconcile.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if !report.Identical {
//	    _ = reconcile.Render(os.Stdout, report)
//	}
//
// Reconcile holds no state between calls and is safe for concurrent use.
package reconcile
