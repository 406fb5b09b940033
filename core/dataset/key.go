package dataset

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyKind identifies the representation of a row-index key.
type KeyKind uint8

const (
	// KeyLabel is an arbitrary string label.
	KeyLabel KeyKind = iota
	// KeyInt is an integer position or identifier.
	KeyInt
	// KeyInstant is a point in time.
	KeyInstant
	// KeyPeriod is a span of time identified by its start and frequency.
	KeyPeriod
)

// String returns the name of the key kind.
func (k KeyKind) String() string {
	switch k {
	case KeyLabel:
		return "label"
	case KeyInt:
		return "int"
	case KeyInstant:
		return "instant"
	case KeyPeriod:
		return "period"
	default:
		return "unknown"
	}
}

// Freq is the length of the span denoted by a period key.
type Freq string

const (
	FreqDay     Freq = "D"
	FreqWeek    Freq = "W"
	FreqMonth   Freq = "M"
	FreqQuarter Freq = "Q"
	FreqYear    Freq = "Y"
)

// ParseFreq parses a frequency code. Lowercase codes are accepted.
func ParseFreq(s string) (Freq, error) {
	switch f := Freq(strings.ToUpper(strings.TrimSpace(s))); f {
	case FreqDay, FreqWeek, FreqMonth, FreqQuarter, FreqYear:
		return f, nil
	case "":
		return FreqDay, nil
	default:
		return "", fmt.Errorf("%w: unknown period frequency %q", ErrMalformed, s)
	}
}

// Truncate returns the start of the span of this frequency containing t.
func (f Freq) Truncate(t time.Time) time.Time {
	t = t.UTC()
	y, m, d := t.Date()
	switch f {
	case FreqWeek:
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case FreqMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case FreqQuarter:
		return time.Date(y, m-(m-1)%3, 1, 0, 0, 0, 0, time.UTC)
	case FreqYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

// Key is a single row-index key. Keys are comparable and can be used as map keys.
// Instants and period starts are held as Unix seconds plus nanoseconds so any
// year from 0001 to 9999 is representable.
type Key struct {
	Kind  KeyKind
	Sec   int64
	Nsec  int32
	Int   int64
	Freq  Freq
	Label string
}

// Label returns a label key.
func Label(s string) Key {
	return Key{Kind: KeyLabel, Label: s}
}

// IntKey returns an integer key.
func IntKey(i int64) Key {
	return Key{Kind: KeyInt, Int: i}
}

// Instant returns a point-in-time key. The location of t is discarded.
func Instant(t time.Time) Key {
	t = t.UTC()
	return Key{Kind: KeyInstant, Sec: t.Unix(), Nsec: int32(t.Nanosecond())}
}

// Period returns the period of the given frequency containing t.
func Period(t time.Time, freq Freq) Key {
	if freq == "" {
		freq = FreqDay
	}
	return Key{Kind: KeyPeriod, Sec: freq.Truncate(t).Unix(), Freq: freq}
}

// Time returns the instant of an instant key or the start of a period key.
func (k Key) Time() time.Time {
	return time.Unix(k.Sec, int64(k.Nsec)).UTC()
}

// ToInstant converts a period key to the instant of its start.
// Other kinds are returned unchanged.
func (k Key) ToInstant() Key {
	if k.Kind != KeyPeriod {
		return k
	}
	return Key{Kind: KeyInstant, Sec: k.Sec, Nsec: k.Nsec}
}

// Compare orders keys by kind first, then by value.
func (k Key) Compare(o Key) int {
	if k.Kind != o.Kind {
		return cmp.Compare(k.Kind, o.Kind)
	}
	switch k.Kind {
	case KeyInt:
		return cmp.Compare(k.Int, o.Int)
	case KeyInstant:
		return compareTime(k, o)
	case KeyPeriod:
		if c := compareTime(k, o); c != 0 {
			return c
		}
		return cmp.Compare(k.Freq, o.Freq)
	default:
		return strings.Compare(k.Label, o.Label)
	}
}

func compareTime(k, o Key) int {
	if c := cmp.Compare(k.Sec, o.Sec); c != 0 {
		return c
	}
	return cmp.Compare(k.Nsec, o.Nsec)
}

// String renders the key for reports.
func (k Key) String() string {
	switch k.Kind {
	case KeyInt:
		return strconv.FormatInt(k.Int, 10)
	case KeyInstant:
		t := k.Time()
		if t.Equal(FreqDay.Truncate(t)) {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.RFC3339Nano)
	case KeyPeriod:
		t := k.Time()
		switch k.Freq {
		case FreqMonth:
			return t.Format("2006-01")
		case FreqQuarter:
			return fmt.Sprintf("%dQ%d", t.Year(), (int(t.Month())-1)/3+1)
		case FreqYear:
			return strconv.Itoa(t.Year())
		case FreqWeek:
			return t.Format(time.DateOnly) + "/W"
		default:
			return t.Format(time.DateOnly) + "/D"
		}
	default:
		return k.Label
	}
}

// MarshalText renders the key as its report string.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
