package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/zeebo/xxh3"
)

// ErrMalformed is returned when a dataset violates its structural invariants.
var ErrMalformed = errors.New("malformed dataset")

// ColumnID identifies a column. Flat columns leave Group empty; two-level
// columns (e.g. price field and ticker) use both parts.
type ColumnID struct {
	Group string `json:"group,omitempty"`
	Name  string `json:"name"`
}

// Col returns a flat column id.
func Col(name string) ColumnID {
	return ColumnID{Name: name}
}

// Col2 returns a two-level column id.
func Col2(group, name string) ColumnID {
	return ColumnID{Group: group, Name: name}
}

// Compare orders column ids by group, then name.
func (c ColumnID) Compare(o ColumnID) int {
	if r := strings.Compare(c.Group, o.Group); r != 0 {
		return r
	}
	return strings.Compare(c.Name, o.Name)
}

// String renders the id as name or (group, name).
func (c ColumnID) String() string {
	if c.Group == "" {
		return c.Name
	}
	return "(" + c.Group + ", " + c.Name + ")"
}

// Shape is the (rows, columns) size of a dataset.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// String renders the shape as (rows, columns).
func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Columns)
}

// Index is the ordered row index of a dataset.
type Index []Key

// IsPeriod reports whether every key of a non-empty index is a period.
func (ix Index) IsPeriod() bool {
	if len(ix) == 0 {
		return false
	}
	for _, k := range ix {
		if k.Kind != KeyPeriod {
			return false
		}
	}
	return true
}

// Column is a named, typed sequence of values aligned to the row index.
type Column struct {
	ID     ColumnID
	Type   DType
	Values []Value
}

// Dataset is an in-memory table: a row index and ordered columns.
// Datasets are treated as immutable; transforms return new datasets.
type Dataset struct {
	Index   Index
	Columns []Column
}

// New builds a dataset and validates it.
func New(index Index, columns ...Column) (*Dataset, error) {
	d := &Dataset{Index: index, Columns: columns}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks that every column has one value per row and that index keys
// and column ids are unique.
func (d *Dataset) Validate() error {
	keys := make(map[Key]struct{}, len(d.Index))
	for _, k := range d.Index {
		if _, dup := keys[k]; dup {
			return fmt.Errorf("%w: duplicate index key %s", ErrMalformed, k)
		}
		keys[k] = struct{}{}
	}

	ids := make(map[ColumnID]struct{}, len(d.Columns))
	for _, c := range d.Columns {
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("%w: duplicate column %s", ErrMalformed, c.ID)
		}
		ids[c.ID] = struct{}{}
		if len(c.Values) != len(d.Index) {
			return fmt.Errorf("%w: column %s has %d values, index has %d rows",
				ErrMalformed, c.ID, len(c.Values), len(d.Index))
		}
	}
	return nil
}

// Shape returns the (rows, columns) size.
func (d *Dataset) Shape() Shape {
	return Shape{Rows: len(d.Index), Columns: len(d.Columns)}
}

// ColumnIDs returns the column ids in order.
func (d *Dataset) ColumnIDs() []ColumnID {
	ids := make([]ColumnID, len(d.Columns))
	for i, c := range d.Columns {
		ids[i] = c.ID
	}
	return ids
}

// Schema maps each column id to its declared type.
func (d *Dataset) Schema() map[ColumnID]DType {
	schema := make(map[ColumnID]DType, len(d.Columns))
	for _, c := range d.Columns {
		schema[c.ID] = c.Type
	}
	return schema
}

// Column returns the column with the given id.
func (d *Dataset) Column(id ColumnID) (*Column, bool) {
	for i := range d.Columns {
		if d.Columns[i].ID == id {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// RowPositions maps each index key to its row position.
func (d *Dataset) RowPositions() map[Key]int {
	pos := make(map[Key]int, len(d.Index))
	for i, k := range d.Index {
		pos[k] = i
	}
	return pos
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Index:   append(Index(nil), d.Index...),
		Columns: make([]Column, len(d.Columns)),
	}
	for i, c := range d.Columns {
		out.Columns[i] = Column{
			ID:     c.ID,
			Type:   c.Type,
			Values: append([]Value(nil), c.Values...),
		}
	}
	return out
}

// Fingerprint hashes the canonical encoding of the dataset (index, column ids,
// types and values in order). Equal datasets have equal fingerprints.
func (d *Dataset) Fingerprint() uint64 {
	h := xxh3.New()
	var buf [8]byte
	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	writeStr := func(s string) {
		writeInt(int64(len(s)))
		_, _ = h.WriteString(s)
	}

	writeInt(int64(len(d.Index)))
	for _, k := range d.Index {
		writeInt(int64(k.Kind))
		writeInt(k.Sec)
		writeInt(int64(k.Nsec))
		writeInt(k.Int)
		writeStr(string(k.Freq))
		writeStr(k.Label)
	}
	writeInt(int64(len(d.Columns)))
	for _, c := range d.Columns {
		writeStr(c.ID.Group)
		writeStr(c.ID.Name)
		writeStr(string(c.Type))
		for _, v := range c.Values {
			writeInt(int64(v.kind))
			switch v.kind {
			case KindFloat:
				writeInt(int64(math.Float64bits(v.f)))
			case KindDecimal:
				writeStr(v.d.String())
			case KindString:
				writeStr(v.s)
			default:
				writeInt(v.i)
				writeInt(int64(v.ns))
			}
		}
	}
	return h.Sum64()
}
