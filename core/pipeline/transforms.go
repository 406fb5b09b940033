package pipeline

import (
	"fmt"
	"slices"

	"dataset-reconciler/core/dataset"
)

// RenameColumns renames columns by name. Two-level ids keep their group.
// Renaming onto an existing id is an error.
func RenameColumns(renames map[string]string) Transform {
	return func(d *dataset.Dataset) (*dataset.Dataset, error) {
		out := d.Clone()
		for i, c := range out.Columns {
			if to, ok := renames[c.ID.Name]; ok {
				out.Columns[i].ID.Name = to
			}
		}
		if err := out.Validate(); err != nil {
			return nil, fmt.Errorf("rename columns: %w", err)
		}
		return out, nil
	}
}

// SelectColumns keeps only the named columns, in the order given. Names match
// the column name at any group. Unknown names are an error.
func SelectColumns(names ...string) Transform {
	return func(d *dataset.Dataset) (*dataset.Dataset, error) {
		out := &dataset.Dataset{Index: append(dataset.Index(nil), d.Index...)}
		for _, name := range names {
			found := false
			for _, c := range d.Columns {
				if c.ID.Name == name {
					out.Columns = append(out.Columns, cloneColumn(c))
					found = true
				}
			}
			if !found {
				return nil, fmt.Errorf("%w: select columns: no column named %q", dataset.ErrMalformed, name)
			}
		}
		return out, nil
	}
}

// FilterGroup keeps the columns of one group of a two-level dataset and
// flattens their ids to one level.
func FilterGroup(group string) Transform {
	return func(d *dataset.Dataset) (*dataset.Dataset, error) {
		out := &dataset.Dataset{Index: append(dataset.Index(nil), d.Index...)}
		for _, c := range d.Columns {
			if c.ID.Group != group {
				continue
			}
			col := cloneColumn(c)
			col.ID = dataset.Col(c.ID.Name)
			out.Columns = append(out.Columns, col)
		}
		if len(out.Columns) == 0 && len(d.Columns) > 0 {
			return nil, fmt.Errorf("%w: filter group: no columns in group %q", dataset.ErrMalformed, group)
		}
		return out, nil
	}
}

// DropMissingRows removes rows where every cell is missing.
func DropMissingRows() Transform {
	return func(d *dataset.Dataset) (*dataset.Dataset, error) {
		var keep []int
		for row := range d.Index {
			for _, c := range d.Columns {
				if !c.Values[row].IsNull() {
					keep = append(keep, row)
					break
				}
			}
		}
		return selectRows(d, keep), nil
	}
}

// SortIndex orders rows by key.
func SortIndex() Transform {
	return func(d *dataset.Dataset) (*dataset.Dataset, error) {
		order := make([]int, len(d.Index))
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(x, y int) int {
			return d.Index[x].Compare(d.Index[y])
		})
		return selectRows(d, order), nil
	}
}

func selectRows(d *dataset.Dataset, rows []int) *dataset.Dataset {
	out := &dataset.Dataset{
		Index:   make(dataset.Index, len(rows)),
		Columns: make([]dataset.Column, len(d.Columns)),
	}
	for i, row := range rows {
		out.Index[i] = d.Index[row]
	}
	for ci, c := range d.Columns {
		values := make([]dataset.Value, len(rows))
		for i, row := range rows {
			values[i] = c.Values[row]
		}
		out.Columns[ci] = dataset.Column{ID: c.ID, Type: c.Type, Values: values}
	}
	return out
}

func cloneColumn(c dataset.Column) dataset.Column {
	return dataset.Column{ID: c.ID, Type: c.Type, Values: append([]dataset.Value(nil), c.Values...)}
}
