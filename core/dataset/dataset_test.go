package dataset

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		index   Index
		columns []Column
		wantErr bool
	}{
		{
			name:    "Valid",
			index:   Index{IntKey(0), IntKey(1)},
			columns: []Column{{ID: Col("x"), Type: TypeInt64, Values: []Value{Int(1), Null()}}},
		},
		{
			name:    "Ragged column",
			index:   Index{IntKey(0), IntKey(1)},
			columns: []Column{{ID: Col("x"), Type: TypeInt64, Values: []Value{Int(1)}}},
			wantErr: true,
		},
		{
			name:    "Duplicate key",
			index:   Index{Label("a"), Label("a")},
			wantErr: true,
		},
		{
			name:  "Duplicate column",
			index: Index{IntKey(0)},
			columns: []Column{
				{ID: Col2("Close", "AAPL"), Values: []Value{Int(1)}},
				{ID: Col2("Close", "AAPL"), Values: []Value{Int(2)}},
			},
			wantErr: true,
		},
		{
			name:  "Same name in different groups",
			index: Index{IntKey(0)},
			columns: []Column{
				{ID: Col2("Close", "AAPL"), Values: []Value{Int(1)}},
				{ID: Col2("Open", "AAPL"), Values: []Value{Int(2)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.index, tt.columns...)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrMalformed))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDataset_CloneAndFingerprint(t *testing.T) {
	d, err := New(Index{IntKey(0), IntKey(1)},
		Column{ID: Col("x"), Type: TypeFloat64, Values: []Value{Float(1.5), Null()}},
		Column{ID: Col2("Close", "AAPL"), Type: TypeDecimal, Values: []Value{Decimal(decimal.RequireFromString("1.10")), Null()}},
	)
	require.NoError(t, err)

	clone := d.Clone()
	assert.Equal(t, d.Fingerprint(), clone.Fingerprint())

	clone.Columns[0].Values[1] = Float(2)
	assert.True(t, d.Columns[0].Values[1].IsNull(), "clone must not share values")
	assert.NotEqual(t, d.Fingerprint(), clone.Fingerprint())

	assert.Equal(t, Shape{Rows: 2, Columns: 2}, d.Shape())
	assert.Equal(t, map[ColumnID]DType{Col("x"): TypeFloat64, Col2("Close", "AAPL"): TypeDecimal}, d.Schema())
}

func TestKey_Compare(t *testing.T) {
	jan1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	jan2 := jan1.AddDate(0, 0, 1)

	assert.Equal(t, -1, Instant(jan1).Compare(Instant(jan2)))
	assert.Equal(t, 0, Period(jan1, FreqDay).Compare(Period(jan1.Add(5*time.Hour), FreqDay)))
	assert.Equal(t, -1, Label("z").Compare(IntKey(0)), "kind orders first")
	assert.Equal(t, 1, IntKey(10).Compare(IntKey(9)))
	assert.Equal(t, Instant(jan1), Period(jan1, FreqDay).ToInstant())
	assert.Equal(t, Instant(jan1), Instant(jan1.In(time.FixedZone("X", 3600))))
}

func TestKey_OutsideNanosecondRange(t *testing.T) {
	sentinel := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	early := time.Date(1600, 3, 1, 12, 0, 0, 500, time.UTC)
	jan1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "9999-12-31", Instant(sentinel).String())
	assert.True(t, sentinel.Equal(Instant(sentinel).Time()))
	assert.True(t, early.Equal(Instant(early).Time()))
	assert.Equal(t, 1, Instant(sentinel).Compare(Instant(jan1)))
	assert.Equal(t, -1, Instant(early).Compare(Instant(jan1)))
	assert.Equal(t, "9999-12", Period(sentinel, FreqMonth).String())
	assert.Equal(t, "9999-12-31T00:00:00Z", Time(sentinel).String())
}

func TestFreq_Truncate(t *testing.T) {
	ts := time.Date(2020, 5, 14, 13, 30, 0, 0, time.UTC) // Thursday
	tests := []struct {
		freq Freq
		want time.Time
	}{
		{FreqDay, time.Date(2020, 5, 14, 0, 0, 0, 0, time.UTC)},
		{FreqWeek, time.Date(2020, 5, 11, 0, 0, 0, 0, time.UTC)},
		{FreqMonth, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)},
		{FreqQuarter, time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)},
		{FreqYear, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.freq.Truncate(ts))
		})
	}

	_, err := ParseFreq("fortnight")
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestValue_Equal(t *testing.T) {
	tenth, fifth := 0.1, 0.2
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"both missing", Null(), Null(), true},
		{"NaN is missing", Float(math.NaN()), Null(), true},
		{"missing vs present", Null(), Int(0), false},
		{"int vs float", Int(20), Float(20), true},
		{"int vs decimal", Int(20), Decimal(decimal.RequireFromString("20.00")), true},
		{"float exact", Float(tenth + fifth), Float(0.3), false},
		{"strings", String("a"), String("a"), true},
		{"string vs int", String("1"), Int(1), false},
		{"bools", Bool(true), Bool(false), false},
		{"times", Time(time.Unix(0, 0)), Time(time.Unix(0, 0).In(time.FixedZone("X", 60))), true},
		{"infinities", Float(math.Inf(1)), Float(math.Inf(1)), true},
		{"int beyond float precision", Int(1<<53 + 1), Float(1 << 53), false},
		{"int vs integral float", Int(-7), Float(-7), true},
		{"int vs fractional float", Int(2), Float(2.5), false},
		{"int vs float above int64 range", Int(math.MaxInt64), Float(math.Inf(1)), false},
		{"times differ by a nanosecond", Time(time.Unix(0, 1)), Time(time.Unix(0, 2)), false},
		{"far future times", Time(time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)), Time(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}

	assert.True(t, Float(tenth+fifth).EqualWithin(Float(0.3), 1e-9))
	assert.False(t, Float(1).EqualWithin(Float(1.1), 0.01))
}
