package source

import (
	"errors"
	"testing"

	"dataset-reconciler/core/dataset"

	"github.com/stretchr/testify/assert"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Ref
	}{
		{"Plain path", "data/prices.csv", Ref{Scheme: SchemeFile, Path: "data/prices.csv", Format: FormatCSV}},
		{"File URL", "file:///tmp/prices.JSON", Ref{Scheme: SchemeFile, Path: "/tmp/prices.JSON", Format: FormatJSON}},
		{"S3 default bucket", "s3://prices.tsv", Ref{Scheme: SchemeS3, Path: "prices.tsv", Format: FormatTSV}},
		{"S3 named bucket", "s3://archive/2020/prices.csv", Ref{Scheme: SchemeS3, Bucket: "archive", Path: "2020/prices.csv", Format: FormatCSV}},
		{"DB table", "db://prices?index=day&kind=period&freq=m&columns=open,close", Ref{
			Scheme: SchemeDB, Table: "prices", Index: "day", IndexKind: dataset.IndexPeriod,
			Freq: dataset.FreqMonth, Columns: []string{"open", "close"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := ParseRef(got.String())
			assert.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestParseRef_Invalid(t *testing.T) {
	for _, raw := range []string{"", "prices.xlsx", "ftp://host/a.csv", "s3://bucket/", "db://?index=day", "db://prices?freq=fortnight"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseRef(raw)
			assert.True(t, errors.Is(err, ErrInvalidRef), "got %v", err)
		})
	}
}
