package pipeline

import (
	"fmt"
	"strings"
	"unicode"

	"dataset-reconciler/core/dataset"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeColumnNames rewrites every column name, and group, as a lowercase
// ASCII identifier, so "Close Price" and "close_price" line up. Two columns
// collapsing to the same id is an error.
func NormalizeColumnNames() Transform {
	return func(d *dataset.Dataset) (*dataset.Dataset, error) {
		out := d.Clone()
		for i, c := range out.Columns {
			out.Columns[i].ID.Name = NormalizeName(c.ID.Name)
			if c.ID.Group != "" {
				out.Columns[i].ID.Group = NormalizeName(c.ID.Group)
			}
		}
		if err := out.Validate(); err != nil {
			return nil, fmt.Errorf("normalize column names: %w", err)
		}
		return out, nil
	}
}

// NormalizeName lowercases s, strips accents, keeps [a-z0-9_] and turns runs
// of space, dash and dot into one underscore. An empty result becomes "col".
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		}
	}

	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "col"
	}
	return out
}
