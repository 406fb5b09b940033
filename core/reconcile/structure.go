package reconcile

import (
	"slices"

	"dataset-reconciler/core/dataset"
)

// CompareStructure compares shape, row-index membership and order, and column
// membership and order. It never fails; datasets without any overlap simply
// produce findings.
func CompareStructure(a, b *dataset.Dataset) []Finding {
	var findings []Finding

	if shapeA, shapeB := a.Shape(), b.Shape(); shapeA != shapeB {
		findings = append(findings, ShapeMismatch{ShapeA: shapeA, ShapeB: shapeB})
	}

	onlyA, onlyB, reordered := diffSequences(a.Index, b.Index)
	if len(onlyA) > 0 || len(onlyB) > 0 || reordered {
		findings = append(findings, IndexMismatch{OnlyInA: onlyA, OnlyInB: onlyB, OrderDiffers: reordered})
	}

	colsA, colsB, colsReordered := diffSequences(a.ColumnIDs(), b.ColumnIDs())
	if len(colsA) > 0 || len(colsB) > 0 || colsReordered {
		findings = append(findings, ColumnMismatch{OnlyInA: colsA, OnlyInB: colsB, OrderDiffers: colsReordered})
	}

	return findings
}

// diffSequences returns the elements of a missing from b and of b missing from
// a, each in its own sequence order, and whether the elements common to both
// appear in a different relative order.
func diffSequences[T comparable](a, b []T) (onlyA, onlyB []T, orderDiffers bool) {
	inA := make(map[T]struct{}, len(a))
	for _, v := range a {
		inA[v] = struct{}{}
	}
	inB := make(map[T]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}

	commonA := make([]T, 0, len(a))
	for _, v := range a {
		if _, ok := inB[v]; ok {
			commonA = append(commonA, v)
		} else {
			onlyA = append(onlyA, v)
		}
	}

	i := 0
	for _, v := range b {
		if _, ok := inA[v]; !ok {
			onlyB = append(onlyB, v)
			continue
		}
		if !orderDiffers && commonA[i] != v {
			orderDiffers = true
		}
		i++
	}

	return onlyA, onlyB, orderDiffers
}

// intersectSorted returns the elements common to a and b, sorted with cmp.
func intersectSorted[T comparable](a, b []T, cmp func(x, y T) int) []T {
	inB := make(map[T]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}
	common := make([]T, 0, len(a))
	for _, v := range a {
		if _, ok := inB[v]; ok {
			common = append(common, v)
		}
	}
	slices.SortFunc(common, cmp)
	return common
}
