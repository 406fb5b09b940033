package reconcile

import "dataset-reconciler/core/dataset"

// CompareSchema compares the declared value type of every column present in
// both datasets, in the column order of a. Columns on one side only are left
// to CompareStructure.
func CompareSchema(a, b *dataset.Dataset) []Finding {
	var findings []Finding
	schemaB := b.Schema()
	for _, col := range a.Columns {
		typeB, ok := schemaB[col.ID]
		if !ok || typeB == col.Type {
			continue
		}
		findings = append(findings, TypeMismatch{Column: col.ID, TypeA: col.Type, TypeB: typeB})
	}
	return findings
}
