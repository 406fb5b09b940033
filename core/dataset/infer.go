package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// missingTokens are cell texts read as the missing marker.
var missingTokens = map[string]struct{}{
	"": {}, "NaN": {}, "nan": {}, "NA": {}, "N/A": {}, "null": {}, "NULL": {}, "None": {},
}

// timeLayouts are tried in order when parsing timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006-01",
}

// IsMissing reports whether a raw cell text denotes a missing value.
func IsMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ParseTime parses s with the supported timestamp layouts.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", ErrMalformed, s)
}

// InferType returns the narrowest type every non-missing cell parses as.
// A column with no present values is float64, matching an all-NaN column.
func InferType(cells []string, useDecimal bool) DType {
	isInt, isFloat, isBool, isTime := true, true, true, true
	present := 0
	for _, raw := range cells {
		if IsMissing(raw) {
			continue
		}
		present++
		s := strings.TrimSpace(raw)
		if isInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if _, err := parseBool(s); err != nil {
				isBool = false
			}
		}
		if isTime {
			if _, err := ParseTime(s); err != nil {
				isTime = false
			}
		}
	}

	switch {
	case present == 0:
		if useDecimal {
			return TypeDecimal
		}
		return TypeFloat64
	case isInt:
		return TypeInt64
	case isFloat:
		if useDecimal {
			return TypeDecimal
		}
		return TypeFloat64
	case isBool:
		return TypeBool
	case isTime:
		return TypeDatetime
	default:
		return TypeString
	}
}

// ParseValue converts raw cell text into a value of the given type.
func ParseValue(raw string, t DType) (Value, error) {
	if IsMissing(raw) {
		return Null(), nil
	}
	s := strings.TrimSpace(raw)
	switch t {
	case TypeInt64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Null(), fmt.Errorf("%w: %q is not an int64", ErrMalformed, raw)
		}
		return Int(i), nil
	case TypeFloat64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Null(), fmt.Errorf("%w: %q is not a float64", ErrMalformed, raw)
		}
		return Float(f), nil
	case TypeDecimal:
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Null(), fmt.Errorf("%w: %q is not a decimal", ErrMalformed, raw)
		}
		return Decimal(d), nil
	case TypeBool:
		b, err := parseBool(s)
		if err != nil {
			return Null(), err
		}
		return Bool(b), nil
	case TypeDatetime:
		ts, err := ParseTime(s)
		if err != nil {
			return Null(), err
		}
		return Time(ts), nil
	default:
		return String(raw), nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a bool", ErrMalformed, s)
	}
}
