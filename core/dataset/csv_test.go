package dataset

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Run("InferTypes", func(t *testing.T) {
		in := "Date,price,volume,ticker,active,listed\n" +
			"2020-01-01,10,1.5,AAPL,true,2019-12-31\n" +
			"2020-01-02,20,,MSFT,false,2019-12-30\n"

		d, err := ReadCSV(strings.NewReader(in), DefaultReadOptions())
		require.NoError(t, err)

		assert.Equal(t, Shape{Rows: 2, Columns: 5}, d.Shape())
		assert.Equal(t, KeyInstant, d.Index[0].Kind)
		assert.Equal(t, map[ColumnID]DType{
			Col("price"):  TypeInt64,
			Col("volume"): TypeFloat64,
			Col("ticker"): TypeString,
			Col("active"): TypeBool,
			Col("listed"): TypeDatetime,
		}, d.Schema())

		volume, ok := d.Column(Col("volume"))
		require.True(t, ok)
		assert.True(t, volume.Values[1].IsNull())
	})

	t.Run("TwoLevelHeader", func(t *testing.T) {
		in := "Price,Close,Close,Open\n" +
			"Ticker,AAPL,MSFT,AAPL\n" +
			"2020-01-01,1.5,2.5,1.0\n"

		d, err := ReadCSV(strings.NewReader(in), ReadOptions{HeaderRows: 2})
		require.NoError(t, err)
		assert.Equal(t, []ColumnID{Col2("Close", "AAPL"), Col2("Close", "MSFT"), Col2("Open", "AAPL")}, d.ColumnIDs())
	})

	t.Run("PeriodIndex", func(t *testing.T) {
		in := "month,v\n2020-01,1\n2020-02,2\n"
		d, err := ReadCSV(strings.NewReader(in), ReadOptions{IndexKind: IndexPeriod, PeriodFreq: FreqMonth})
		require.NoError(t, err)
		assert.True(t, d.Index.IsPeriod())
		assert.Equal(t, "2020-02", d.Index[1].String())
	})

	t.Run("Decimal", func(t *testing.T) {
		in := "id,price\n1,10.10\n2,20.20\n"
		d, err := ReadCSV(strings.NewReader(in), ReadOptions{Decimal: true})
		require.NoError(t, err)
		assert.Equal(t, KeyInt, d.Index[0].Kind)
		col, _ := d.Column(Col("price"))
		assert.Equal(t, TypeDecimal, col.Type)
		assert.Equal(t, "10.1", col.Values[0].String())
	})

	t.Run("NoIndexColumn", func(t *testing.T) {
		d, err := ReadCSV(strings.NewReader("a,b\nx,1\ny,2\n"), ReadOptions{IndexColumn: -1})
		require.NoError(t, err)
		assert.Equal(t, Index{IntKey(0), IntKey(1)}, d.Index)
		assert.Len(t, d.Columns, 2)
	})

	t.Run("SentinelDate", func(t *testing.T) {
		in := "day,expiry\n2020-01-01,9999-12-31\n9999-12-31,2020-01-01\n"

		d, err := ReadCSV(strings.NewReader(in), DefaultReadOptions())
		require.NoError(t, err)

		assert.Equal(t, TypeDatetime, d.Columns[0].Type)
		assert.Equal(t, "9999-12-31T00:00:00Z", d.Columns[0].Values[0].String())
		assert.Equal(t, "9999-12-31", d.Index[1].String())
		assert.Equal(t, 1, d.Index[1].Compare(d.Index[0]), "9999 sorts after 2020")

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, d))
		assert.Equal(t, "index,expiry\n2020-01-01,9999-12-31T00:00:00Z\n9999-12-31,2020-01-01T00:00:00Z\n", buf.String())
	})

	t.Run("IntsBeforeDatesAreStrings", func(t *testing.T) {
		in := "day,note\n2020-01-01,1\n2020-01-02,2020-03-04\n"

		d, err := ReadCSV(strings.NewReader(in), DefaultReadOptions())
		require.NoError(t, err)

		assert.Equal(t, TypeString, d.Columns[0].Type)
		assert.Equal(t, []Value{String("1"), String("2020-03-04")}, d.Columns[0].Values)
	})

	t.Run("BOM", func(t *testing.T) {
		d, err := ReadCSV(strings.NewReader(utf8BOM+"id,v\n1,2\n"), ReadOptions{IndexColumn: -1})
		require.NoError(t, err)
		assert.Equal(t, Col("id"), d.Columns[0].ID)
	})

	t.Run("Malformed", func(t *testing.T) {
		tests := map[string]string{
			"ragged":        "a,b\n1\n",
			"duplicate key": "a,b\n1,2\n1,3\n",
		}
		for name, in := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := ReadCSV(strings.NewReader(in), DefaultReadOptions())
				assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
			})
		}
	})
}

func TestCSVRoundTrip(t *testing.T) {
	jan1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	d, err := New(Index{Period(jan1, FreqDay), Period(jan1.AddDate(0, 0, 1), FreqDay)},
		Column{ID: Col2("Close", "AAPL"), Type: TypeFloat64, Values: []Value{Float(1.5), Null()}},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, d))

	back, err := ReadCSV(&buf, ReadOptions{HeaderRows: 2, IndexKind: IndexPeriod, PeriodFreq: FreqDay})
	require.NoError(t, err)
	assert.Equal(t, d.Fingerprint(), back.Fingerprint())
}
