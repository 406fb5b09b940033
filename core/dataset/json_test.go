package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	in := `{
	  "index": {"kind": "period", "freq": "D", "keys": ["2020-01-01", "2020-01-02"]},
	  "columns": [
	    {"id": ["price"], "type": "int64", "values": [10, null]},
	    {"id": ["Close", "AAPL"], "type": "decimal", "values": ["1.10", 2.5]},
	    {"id": ["note"], "values": ["a", "b"]}
	  ]
	}`

	d, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)

	assert.True(t, d.Index.IsPeriod())
	assert.Equal(t, []ColumnID{Col("price"), Col2("Close", "AAPL"), Col("note")}, d.ColumnIDs())

	price, _ := d.Column(Col("price"))
	assert.Equal(t, Int(10), price.Values[0])
	assert.True(t, price.Values[1].IsNull())

	note, _ := d.Column(Col("note"))
	assert.Equal(t, TypeString, note.Type)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, d))
	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, d.Fingerprint(), back.Fingerprint())
}

func TestReadJSON_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":      `{`,
		"ragged":        `{"index":{"kind":"int","keys":[1,2]},"columns":[{"id":["x"],"values":[1]}]}`,
		"three levels":  `{"index":{"kind":"int","keys":[1]},"columns":[{"id":["a","b","c"],"values":[1]}]}`,
		"bad int":       `{"index":{"kind":"int","keys":[1]},"columns":[{"id":["x"],"type":"int64","values":["x"]}]}`,
		"nested values": `{"index":{"kind":"int","keys":[1]},"columns":[{"id":["x"],"values":[[1]]}]}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(in))
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}
