package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Document is the JSON wire form of a dataset.
//
//	{
//	  "index":   {"kind": "period", "freq": "D", "keys": ["2020-01-01", "2020-01-02"]},
//	  "columns": [{"id": ["Close", "AAPL"], "type": "float64", "values": [1.5, null]}]
//	}
type Document struct {
	Index   IndexDocument    `json:"index"`
	Columns []ColumnDocument `json:"columns"`
}

// IndexDocument describes the row index.
type IndexDocument struct {
	Kind IndexKind         `json:"kind"`
	Freq Freq              `json:"freq,omitempty"`
	Keys []json.RawMessage `json:"keys"`
}

// ColumnDocument describes one column. ID holds one or two levels.
type ColumnDocument struct {
	ID     []string          `json:"id"`
	Type   DType             `json:"type"`
	Values []json.RawMessage `json:"values"`
}

// ReadJSON decodes a Document into a Dataset.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc.Dataset()
}

// Dataset converts the document into a validated Dataset.
func (doc Document) Dataset() (*Dataset, error) {
	rawKeys := make([]string, len(doc.Index.Keys))
	for i, k := range doc.Index.Keys {
		s, err := rawText(k)
		if err != nil {
			return nil, fmt.Errorf("index key %d: %w", i, err)
		}
		rawKeys[i] = s
	}

	freq := doc.Index.Freq
	if doc.Index.Kind == IndexPeriod {
		var err error
		if freq, err = ParseFreq(string(freq)); err != nil {
			return nil, err
		}
	}
	index, err := ParseIndex(rawKeys, doc.Index.Kind, freq)
	if err != nil {
		return nil, err
	}

	columns := make([]Column, 0, len(doc.Columns))
	for _, cd := range doc.Columns {
		var id ColumnID
		switch len(cd.ID) {
		case 1:
			id = Col(cd.ID[0])
		case 2:
			id = Col2(cd.ID[0], cd.ID[1])
		default:
			return nil, fmt.Errorf("%w: column id must have 1 or 2 levels, got %d", ErrMalformed, len(cd.ID))
		}

		raw := make([]string, len(cd.Values))
		for i, v := range cd.Values {
			if raw[i], err = rawText(v); err != nil {
				return nil, fmt.Errorf("column %s row %d: %w", id, i, err)
			}
		}

		dtype := cd.Type
		if dtype == "" {
			dtype = InferType(raw, false)
		}
		values := make([]Value, len(raw))
		for i, s := range raw {
			if values[i], err = ParseValue(s, dtype); err != nil {
				return nil, fmt.Errorf("column %s row %d: %w", id, i, err)
			}
		}
		columns = append(columns, Column{ID: id, Type: dtype, Values: values})
	}

	return New(index, columns...)
}

// rawText returns the text of a JSON scalar. null becomes the empty string.
func rawText(m json.RawMessage) (string, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(m))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("%w: expected a scalar, got %s", ErrMalformed, string(m))
	}
}

// WriteJSON encodes d as a Document.
func WriteJSON(w io.Writer, d *Dataset) error {
	doc := Document{Index: IndexDocument{Kind: IndexLabel}}
	if len(d.Index) > 0 {
		switch d.Index[0].Kind {
		case KeyInt:
			doc.Index.Kind = IndexInt
		case KeyInstant:
			doc.Index.Kind = IndexInstant
		case KeyPeriod:
			doc.Index.Kind = IndexPeriod
			doc.Index.Freq = d.Index[0].Freq
		}
	}
	for _, k := range d.Index {
		text := k.String()
		switch k.Kind {
		case KeyPeriod, KeyInstant:
			text = k.Time().Format(time.RFC3339Nano)
		}
		b, err := json.Marshal(text)
		if err != nil {
			return err
		}
		doc.Index.Keys = append(doc.Index.Keys, b)
	}

	for _, c := range d.Columns {
		cd := ColumnDocument{ID: []string{c.ID.Name}, Type: c.Type}
		if c.ID.Group != "" {
			cd.ID = []string{c.ID.Group, c.ID.Name}
		}
		for _, v := range c.Values {
			b, err := encodeCell(v)
			if err != nil {
				return err
			}
			cd.Values = append(cd.Values, b)
		}
		doc.Columns = append(doc.Columns, cd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// encodeCell writes decimals as strings so they round-trip exactly.
func encodeCell(v Value) (json.RawMessage, error) {
	if v.Kind() == KindDecimal {
		return json.Marshal(v.AsDecimal().String())
	}
	return json.Marshal(v)
}
