package pipeline

import (
	"context"
	"errors"
	"testing"

	"dataset-reconciler/core/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sample(t *testing.T) *dataset.Dataset {
	t.Helper()
	d, err := dataset.New(
		dataset.Index{dataset.IntKey(3), dataset.IntKey(1), dataset.IntKey(2)},
		dataset.Column{ID: dataset.Col2("Close", "AAPL"), Type: dataset.TypeInt64,
			Values: []dataset.Value{dataset.Int(30), dataset.Null(), dataset.Int(20)}},
		dataset.Column{ID: dataset.Col2("Open", "AAPL"), Type: dataset.TypeInt64,
			Values: []dataset.Value{dataset.Int(29), dataset.Null(), dataset.Int(19)}},
	)
	require.NoError(t, err)
	return d
}

// apply runs transforms as a single step.
func apply(d *dataset.Dataset, transforms ...Transform) (*dataset.Dataset, error) {
	return New(nil, Step{Name: "apply", Transforms: transforms}).Run(context.Background(), d)
}

func TestPipeline_Run(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	in := sample(t)

	p := New(zap.New(core),
		Step{Name: "transform", Transforms: []Transform{FilterGroup("Close"), RenameColumns(map[string]string{"AAPL": "price"})}},
	).Then("clean", DropMissingRows(), SortIndex())

	out, err := p.Run(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, dataset.Index{dataset.IntKey(2), dataset.IntKey(3)}, out.Index)
	assert.Equal(t, []dataset.ColumnID{dataset.Col("price")}, out.ColumnIDs())
	assert.Equal(t, []dataset.Value{dataset.Int(20), dataset.Int(30)}, out.Columns[0].Values)

	assert.Equal(t, dataset.Shape{Rows: 3, Columns: 2}, in.Shape(), "input must be untouched")
	assert.Equal(t, 2, logs.FilterMessage("Pipeline step complete").Len())
}

func TestPipeline_Errors(t *testing.T) {
	t.Run("StopsAtFirstError", func(t *testing.T) {
		called := false
		p := New(nil).
			Then("select", SelectColumns("missing")).
			Then("after", func(d *dataset.Dataset) (*dataset.Dataset, error) {
				called = true
				return d, nil
			})

		_, err := p.Run(context.Background(), sample(t))
		assert.True(t, errors.Is(err, dataset.ErrMalformed))
		assert.Contains(t, err.Error(), "step select")
		assert.False(t, called)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(nil).Then("sort", SortIndex()).Run(ctx, sample(t))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("RenameMatchesNamesOnly", func(t *testing.T) {
		out, err := apply(sample(t), RenameColumns(map[string]string{"Close": "Open"}))
		require.NoError(t, err)
		assert.Equal(t, sample(t).ColumnIDs(), out.ColumnIDs())
	})

	t.Run("UnknownGroup", func(t *testing.T) {
		_, err := apply(sample(t), FilterGroup("Volume"))
		assert.True(t, errors.Is(err, dataset.ErrMalformed))
	})

	t.Run("NilDataset", func(t *testing.T) {
		_, err := New(nil).Run(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestSelectColumns(t *testing.T) {
	d, err := dataset.New(dataset.Index{dataset.Label("a")},
		dataset.Column{ID: dataset.Col("x"), Values: []dataset.Value{dataset.Int(1)}},
		dataset.Column{ID: dataset.Col("y"), Values: []dataset.Value{dataset.Int(2)}},
		dataset.Column{ID: dataset.Col("z"), Values: []dataset.Value{dataset.Int(3)}},
	)
	require.NoError(t, err)

	out, err := apply(d, SelectColumns("z", "x"))
	require.NoError(t, err)
	assert.Equal(t, []dataset.ColumnID{dataset.Col("z"), dataset.Col("x")}, out.ColumnIDs())
}

func TestRenameColumns_Collision(t *testing.T) {
	d, err := dataset.New(dataset.Index{dataset.Label("a")},
		dataset.Column{ID: dataset.Col("x"), Values: []dataset.Value{dataset.Int(1)}},
		dataset.Column{ID: dataset.Col("y"), Values: []dataset.Value{dataset.Int(2)}},
	)
	require.NoError(t, err)

	_, err = apply(d, RenameColumns(map[string]string{"x": "y"}))
	assert.True(t, errors.Is(err, dataset.ErrMalformed))
}

func TestOptions_Build(t *testing.T) {
	assert.True(t, Options{}.IsZero())
	assert.Empty(t, Options{}.Build(nil).Steps)

	opts := Options{Group: "Close", Rename: map[string]string{"AAPL": "price"}, DropMissing: true, Sort: true}
	assert.False(t, opts.IsZero())

	p := opts.Build(nil)
	require.Len(t, p.Steps, 2)
	assert.Equal(t, "transform", p.Steps[0].Name)
	assert.Len(t, p.Steps[0].Transforms, 2)
	assert.Equal(t, "clean", p.Steps[1].Name)

	out, err := p.Run(context.Background(), sample(t))
	require.NoError(t, err)
	assert.Equal(t, dataset.Index{dataset.IntKey(2), dataset.IntKey(3)}, out.Index)
	assert.Equal(t, []dataset.ColumnID{dataset.Col("price")}, out.ColumnIDs())
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Close Price", "close_price"},
		{"  Adj. Close  ", "adj_close"},
		{"Café-Crème", "cafe_creme"},
		{"volume__24h", "volume_24h"},
		{"%%%", "col"},
		{"already_ok", "already_ok"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNormalizeColumnNames(t *testing.T) {
	out, err := apply(sample(t), NormalizeColumnNames())
	require.NoError(t, err)
	assert.Equal(t, []dataset.ColumnID{dataset.Col2("close", "aapl"), dataset.Col2("open", "aapl")}, out.ColumnIDs())

	d, err := dataset.New(
		dataset.Index{dataset.IntKey(1)},
		dataset.Column{ID: dataset.Col("Close Price"), Type: dataset.TypeInt64, Values: []dataset.Value{dataset.Int(1)}},
		dataset.Column{ID: dataset.Col("close_price"), Type: dataset.TypeInt64, Values: []dataset.Value{dataset.Int(1)}},
	)
	require.NoError(t, err)
	_, err = apply(d, NormalizeColumnNames())
	assert.ErrorIs(t, err, dataset.ErrMalformed)
}
