package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DType is the declared value type of a column.
type DType string

const (
	TypeInt64    DType = "int64"
	TypeFloat64  DType = "float64"
	TypeDecimal  DType = "decimal"
	TypeString   DType = "string"
	TypeBool     DType = "bool"
	TypeDatetime DType = "datetime"
	TypeObject   DType = "object"
)

// ValueKind identifies the representation held by a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindDecimal
	KindString
	KindBool
	KindTime
)

// Value is a single cell. The zero Value is the missing marker.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	d    decimal.Decimal
	s    string
	// ns holds the nanoseconds of a time whose Unix seconds are in i.
	ns int32
}

// Null returns the missing marker.
func Null() Value { return Value{} }

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a float value. NaN is stored as the missing marker.
func Float(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{kind: KindFloat, f: v}
}

// Decimal returns an exact decimal value.
func Decimal(v decimal.Decimal) Value { return Value{kind: KindDecimal, d: v} }

// String returns a string value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Bool returns a boolean value.
func Bool(v bool) Value {
	if v {
		return Value{kind: KindBool, i: 1}
	}
	return Value{kind: KindBool}
}

// Time returns a point-in-time value.
func Time(t time.Time) Value {
	t = t.UTC()
	return Value{kind: KindTime, i: t.Unix(), ns: int32(t.Nanosecond())}
}

// Kind returns the representation of v.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the missing marker.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumeric reports whether v holds an int, float or decimal.
func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat || v.kind == KindDecimal
}

// AsInt returns the integer payload.
func (v Value) AsInt() int64 { return v.i }

// AsFloat returns v converted to float64. Non-numeric values return 0.
func (v Value) AsFloat() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	case KindDecimal:
		return v.d.InexactFloat64()
	default:
		return 0
	}
}

// AsDecimal returns v as a decimal. Non-numeric values return zero.
func (v Value) AsDecimal() decimal.Decimal {
	switch v.kind {
	case KindInt:
		return decimal.NewFromInt(v.i)
	case KindFloat:
		if math.IsInf(v.f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v.f)
	case KindDecimal:
		return v.d
	default:
		return decimal.Zero
	}
}

// AsString returns the string payload.
func (v Value) AsString() string { return v.s }

// AsBool returns the boolean payload.
func (v Value) AsBool() bool { return v.kind == KindBool && v.i == 1 }

// AsTime returns the time payload.
func (v Value) AsTime() time.Time { return time.Unix(v.i, int64(v.ns)).UTC() }

// Equal reports whether two values are equal. Two missing markers are equal.
// Numeric values of different kinds compare numerically and exactly: an int
// equals a float only when the float is integral and holds the same integer,
// so 2^53+1 does not equal the float 2^53.
func (v Value) Equal(o Value) bool {
	return v.EqualWithin(o, 0)
}

// EqualWithin is Equal with an absolute tolerance applied to numeric values.
// A tolerance of zero means exact equality.
func (v Value) EqualWithin(o Value, tolerance float64) bool {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() && o.IsNull()
	}
	if v.IsNumeric() && o.IsNumeric() {
		return numericEqual(v, o, tolerance)
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	default:
		return v.i == o.i && v.ns == o.ns
	}
}

func numericEqual(a, b Value, tolerance float64) bool {
	if tolerance == 0 {
		switch {
		case a.kind == KindInt && b.kind == KindInt:
			return a.i == b.i
		case a.kind == KindInt && b.kind == KindFloat:
			return intEqualsFloat(a.i, b.f)
		case a.kind == KindFloat && b.kind == KindInt:
			return intEqualsFloat(b.i, a.f)
		}
	}
	if a.kind == KindDecimal || b.kind == KindDecimal {
		if a.kind == KindFloat && math.IsInf(a.f, 0) || b.kind == KindFloat && math.IsInf(b.f, 0) {
			return false
		}
		diff := a.AsDecimal().Sub(b.AsDecimal()).Abs()
		if tolerance == 0 {
			return diff.IsZero()
		}
		return diff.LessThanOrEqual(decimal.NewFromFloat(tolerance))
	}
	x, y := a.AsFloat(), b.AsFloat()
	if x == y {
		return true
	}
	if tolerance == 0 || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return false
	}
	return math.Abs(x-y) <= tolerance
}

// intEqualsFloat compares without rounding i to float64.
func intEqualsFloat(i int64, f float64) bool {
	// 2^63 is the first float64 above the int64 range.
	if f != math.Trunc(f) || f < math.MinInt64 || f >= 1<<63 {
		return false
	}
	return int64(f) == i
}

// String renders the value for reports. The missing marker renders as NaN.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDecimal:
		return v.d.String()
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.AsBool())
	case KindTime:
		return v.AsTime().Format(time.RFC3339Nano)
	default:
		return "NaN"
	}
}

// MarshalJSON encodes the value as its natural JSON scalar. Missing is null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		if math.IsInf(v.f, 0) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.f)
	case KindDecimal:
		return []byte(v.d.String()), nil
	case KindString:
		return json.Marshal(v.s)
	case KindBool:
		return json.Marshal(v.AsBool())
	case KindTime:
		return json.Marshal(v.AsTime().Format(time.RFC3339Nano))
	default:
		return []byte("null"), nil
	}
}
