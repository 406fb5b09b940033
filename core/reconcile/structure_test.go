package reconcile

import (
	"testing"

	"dataset-reconciler/core/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareStructure(t *testing.T) {
	t.Run("IndexOrderOnly", func(t *testing.T) {
		a := mustDataset(t, instants("2020-01-01", "2020-01-02"), intColumn(dataset.Col("v"), 1, 2))
		b := mustDataset(t, instants("2020-01-02", "2020-01-01"), intColumn(dataset.Col("v"), 2, 1))

		findings := CompareStructure(a, b)
		require.Len(t, findings, 1)
		assert.Equal(t, IndexMismatch{OrderDiffers: true}, findings[0])

		// Cells align by key, so reordering alone produces no value mismatches.
		assert.Empty(t, CompareCells(a, b, DefaultConfig()))
	})

	t.Run("ColumnOrderOnly", func(t *testing.T) {
		a := mustDataset(t, instants("2020-01-01"), intColumn(dataset.Col("x"), 1), intColumn(dataset.Col("y"), 2))
		b := mustDataset(t, instants("2020-01-01"), intColumn(dataset.Col("y"), 2), intColumn(dataset.Col("x"), 1))

		findings := CompareStructure(a, b)
		require.Len(t, findings, 1)
		assert.Equal(t, ColumnMismatch{OrderDiffers: true}, findings[0])
	})

	t.Run("HierarchicalColumns", func(t *testing.T) {
		a := mustDataset(t, instants("2020-01-01"),
			intColumn(dataset.Col2("Close", "AAPL"), 1),
			intColumn(dataset.Col2("Close", "MSFT"), 2),
		)
		b := mustDataset(t, instants("2020-01-01"),
			intColumn(dataset.Col2("Close", "AAPL"), 1),
			intColumn(dataset.Col2("Open", "MSFT"), 2),
		)

		findings := CompareStructure(a, b)
		require.Len(t, findings, 1)
		assert.Equal(t, ColumnMismatch{
			OnlyInA: []dataset.ColumnID{dataset.Col2("Close", "MSFT")},
			OnlyInB: []dataset.ColumnID{dataset.Col2("Open", "MSFT")},
		}, findings[0])
	})

	t.Run("MembershipAndOrder", func(t *testing.T) {
		onlyA, onlyB, reordered := diffSequences([]string{"a", "b", "c", "d"}, []string{"c", "b", "e"})
		assert.Equal(t, []string{"a", "d"}, onlyA)
		assert.Equal(t, []string{"e"}, onlyB)
		assert.True(t, reordered)
	})
}

func TestCompareSchema(t *testing.T) {
	a := mustDataset(t, instants("2020-01-01"),
		intColumn(dataset.Col("x"), 1),
		intColumn(dataset.Col("only_a"), 1),
	)
	b := mustDataset(t, instants("2020-01-01"),
		dataset.Column{ID: dataset.Col("x"), Type: dataset.TypeString, Values: []dataset.Value{dataset.String("1")}},
		dataset.Column{ID: dataset.Col("only_b"), Type: dataset.TypeString, Values: []dataset.Value{dataset.String("1")}},
	)

	findings := CompareSchema(a, b)
	require.Len(t, findings, 1)
	assert.Equal(t, TypeMismatch{Column: dataset.Col("x"), TypeA: dataset.TypeInt64, TypeB: dataset.TypeString}, findings[0])
}

func TestCompareCells(t *testing.T) {
	t.Run("MissingMarkers", func(t *testing.T) {
		col := func(vs ...dataset.Value) dataset.Column {
			return dataset.Column{ID: dataset.Col("v"), Type: dataset.TypeFloat64, Values: vs}
		}
		a := mustDataset(t, instants("2020-01-01", "2020-01-02"), col(dataset.Null(), dataset.Null()))
		b := mustDataset(t, instants("2020-01-01", "2020-01-02"), col(dataset.Null(), dataset.Float(1)))

		findings := CompareCells(a, b, DefaultConfig())
		require.Len(t, findings, 1)
		assert.Equal(t, dataset.Instant(day("2020-01-02")), findings[0].(ValueMismatch).Row)
	})

	t.Run("SortedByRowThenColumn", func(t *testing.T) {
		a := mustDataset(t, instants("2020-01-02", "2020-01-01"),
			intColumn(dataset.Col("y"), 1, 1),
			intColumn(dataset.Col("x"), 1, 1),
		)
		b := mustDataset(t, instants("2020-01-01", "2020-01-02"),
			intColumn(dataset.Col("x"), 2, 2),
			intColumn(dataset.Col("y"), 2, 2),
		)

		findings := CompareCells(a, b, DefaultConfig())
		require.Len(t, findings, 4)
		var got []string
		for _, f := range findings {
			vm := f.(ValueMismatch)
			got = append(got, vm.Row.String()+"/"+vm.Column.String())
		}
		assert.Equal(t, []string{"2020-01-01/x", "2020-01-01/y", "2020-01-02/x", "2020-01-02/y"}, got)
	})

	t.Run("EmptyAlignedSubset", func(t *testing.T) {
		a := mustDataset(t, instants("2020-01-01"), intColumn(dataset.Col("x"), 1))
		b := mustDataset(t, instants("2020-01-01"), intColumn(dataset.Col("y"), 1))
		assert.Empty(t, CompareCells(a, b, DefaultConfig()))
	})
}
