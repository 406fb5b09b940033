package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// IndexKind selects how row-index cells are parsed.
type IndexKind string

const (
	IndexAuto    IndexKind = "auto"
	IndexInstant IndexKind = "instant"
	IndexPeriod  IndexKind = "period"
	IndexInt     IndexKind = "int"
	IndexLabel   IndexKind = "label"
)

// ReadOptions controls how tabular text is turned into a Dataset.
type ReadOptions struct {
	// HeaderRows is the number of header rows: 1 for flat columns, 2 for
	// two-level (group, name) columns. Zero means 1.
	HeaderRows int `json:"header_rows" mapstructure:"header_rows" default:"1"`

	// IndexColumn is the position of the row-index column. A negative value
	// means the dataset has no index column and rows are keyed by position.
	IndexColumn int `json:"index_column" mapstructure:"index_column" default:"0"`

	// IndexKind selects the key representation of the index column.
	IndexKind IndexKind `json:"index_kind" mapstructure:"index_kind" default:"auto"`

	// PeriodFreq is the span of period keys when IndexKind is period.
	PeriodFreq Freq `json:"period_freq" mapstructure:"period_freq" default:"D"`

	// Decimal reads fractional numeric columns as exact decimals.
	Decimal bool `json:"decimal" mapstructure:"decimal" default:"false"`

	// Comma is the field delimiter. Zero means ','.
	Comma rune `json:"-" mapstructure:"-"`
}

// DefaultReadOptions returns options for a flat CSV with the index in the first column.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{HeaderRows: 1, IndexKind: IndexAuto, PeriodFreq: FreqDay}
}

// ReadCSV reads a CSV document into a Dataset. Column types are inferred per column.
func ReadCSV(r io.Reader, opts ReadOptions) (*Dataset, error) {
	headerRows := opts.HeaderRows
	if headerRows <= 0 {
		headerRows = 1
	}
	if headerRows > 2 {
		return nil, fmt.Errorf("%w: at most 2 header rows are supported, got %d", ErrMalformed, headerRows)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) < headerRows {
		return nil, fmt.Errorf("%w: expected %d header rows, got %d", ErrMalformed, headerRows, len(records))
	}

	headers := records[:headerRows]
	headers[0] = StripHeaderBOM(headers[0])
	body := records[headerRows:]

	width := len(headers[0])
	for i, rec := range records {
		if len(rec) != width {
			return nil, fmt.Errorf("%w: record %d has %d fields, header has %d", ErrMalformed, i+1, len(rec), width)
		}
	}
	if opts.IndexColumn >= width {
		return nil, fmt.Errorf("%w: index column %d out of range", ErrMalformed, opts.IndexColumn)
	}

	cells := func(col int) []string {
		out := make([]string, len(body))
		for i, rec := range body {
			out[i] = rec[col]
		}
		return out
	}

	var index Index
	if opts.IndexColumn < 0 {
		index = make(Index, len(body))
		for i := range body {
			index[i] = IntKey(int64(i))
		}
	} else {
		index, err = ParseIndex(cells(opts.IndexColumn), opts.IndexKind, opts.PeriodFreq)
		if err != nil {
			return nil, err
		}
	}

	var columns []Column
	for col := 0; col < width; col++ {
		if col == opts.IndexColumn {
			continue
		}
		id := Col(strings.TrimSpace(headers[0][col]))
		if headerRows == 2 {
			id = Col2(strings.TrimSpace(headers[0][col]), strings.TrimSpace(headers[1][col]))
		}

		raw := cells(col)
		dtype := InferType(raw, opts.Decimal)
		values := make([]Value, len(raw))
		for i, s := range raw {
			if values[i], err = ParseValue(s, dtype); err != nil {
				return nil, fmt.Errorf("column %s row %d: %w", id, i+1, err)
			}
		}
		columns = append(columns, Column{ID: id, Type: dtype, Values: values})
	}

	return New(index, columns...)
}

// ParseIndex parses raw index cells into keys of the requested kind.
// IndexAuto picks int when every cell is an integer, instant when every cell
// is a timestamp, and label otherwise.
func ParseIndex(raw []string, kind IndexKind, freq Freq) (Index, error) {
	if kind == "" {
		kind = IndexAuto
	}
	index := make(Index, len(raw))

	switch kind {
	case IndexLabel:
		for i, s := range raw {
			index[i] = Label(s)
		}
		return index, nil

	case IndexInt:
		for i, s := range raw {
			v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: index cell %q is not an integer", ErrMalformed, s)
			}
			index[i] = IntKey(v)
		}
		return index, nil

	case IndexInstant, IndexPeriod:
		for i, s := range raw {
			t, err := ParseTime(s)
			if err != nil {
				return nil, fmt.Errorf("index row %d: %w", i+1, err)
			}
			if kind == IndexPeriod {
				index[i] = Period(t, freq)
			} else {
				index[i] = Instant(t)
			}
		}
		return index, nil

	case IndexAuto:
		if ix, err := ParseIndex(raw, IndexInt, freq); err == nil {
			return ix, nil
		}
		if ix, err := ParseIndex(raw, IndexInstant, freq); err == nil {
			return ix, nil
		}
		return ParseIndex(raw, IndexLabel, freq)

	default:
		return nil, fmt.Errorf("%w: unknown index kind %q", ErrMalformed, kind)
	}
}

// WriteCSV writes d as CSV with the index in the first column.
// Two-level column ids produce two header rows.
func WriteCSV(w io.Writer, d *Dataset) error {
	writer := csv.NewWriter(w)

	twoLevel := false
	for _, c := range d.Columns {
		if c.ID.Group != "" {
			twoLevel = true
			break
		}
	}

	names := []string{"index"}
	groups := []string{"index"}
	for _, c := range d.Columns {
		groups = append(groups, c.ID.Group)
		names = append(names, c.ID.Name)
	}
	if twoLevel {
		if err := writer.Write(groups); err != nil {
			return err
		}
	}
	if err := writer.Write(names); err != nil {
		return err
	}

	for row, k := range d.Index {
		rec := make([]string, 0, len(d.Columns)+1)
		if k.Kind == KeyPeriod {
			rec = append(rec, k.Time().Format(time.DateOnly))
		} else {
			rec = append(rec, k.String())
		}
		for _, c := range d.Columns {
			v := c.Values[row]
			if v.IsNull() {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, v.String())
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

const utf8BOM = "\uFEFF"

// StripHeaderBOM removes a UTF-8 BOM from the first header cell if present.
func StripHeaderBOM(headers []string) []string {
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}
	return headers
}
