package source

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"dataset-reconciler/core/dataset"
)

// ErrInvalidRef is returned for references that cannot be resolved.
var ErrInvalidRef = errors.New("invalid dataset reference")

// Scheme selects where a dataset is read from.
type Scheme string

const (
	SchemeFile Scheme = "file"
	SchemeS3   Scheme = "s3"
	SchemeDB   Scheme = "db"
)

// Format is the encoding of a file or object.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// Ref is a parsed dataset reference.
//
//	prices.csv, file:///data/prices.csv   local file
//	s3://prices.csv                       object in the default bucket
//	s3://bucket/daily/prices.csv          object in a named bucket
//	db://prices?index=day&kind=period     database table
type Ref struct {
	Scheme Scheme
	// Path is the file path or object key.
	Path string
	// Bucket is the object bucket. Empty means the loader's default.
	Bucket string
	// Format is the file or object encoding.
	Format Format

	// Table options, for db references.
	Table     string
	Index     string
	IndexKind dataset.IndexKind
	Freq      dataset.Freq
	Columns   []string
}

// ParseRef parses a dataset reference.
func ParseRef(raw string) (Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}, fmt.Errorf("%w: empty reference", ErrInvalidRef)
	}

	scheme, rest, hasScheme := strings.Cut(raw, "://")
	if !hasScheme {
		return fileRef(raw)
	}

	switch Scheme(strings.ToLower(scheme)) {
	case SchemeFile:
		return fileRef(rest)

	case SchemeS3:
		bucket, key, nested := strings.Cut(strings.TrimPrefix(rest, "/"), "/")
		if !nested {
			bucket, key = "", bucket
		}
		if key == "" {
			return Ref{}, fmt.Errorf("%w: %q has no object key", ErrInvalidRef, raw)
		}
		format, err := formatOf(key)
		if err != nil {
			return Ref{}, err
		}
		return Ref{Scheme: SchemeS3, Bucket: bucket, Path: key, Format: format}, nil

	case SchemeDB:
		u, err := url.Parse(raw)
		if err != nil {
			return Ref{}, fmt.Errorf("%w: %v", ErrInvalidRef, err)
		}
		ref := Ref{
			Scheme:    SchemeDB,
			Table:     u.Host,
			Index:     u.Query().Get("index"),
			IndexKind: dataset.IndexKind(u.Query().Get("kind")),
		}
		if ref.Table == "" {
			return Ref{}, fmt.Errorf("%w: %q has no table", ErrInvalidRef, raw)
		}
		if f := u.Query().Get("freq"); f != "" {
			if ref.Freq, err = dataset.ParseFreq(f); err != nil {
				return Ref{}, fmt.Errorf("%w: %v", ErrInvalidRef, err)
			}
		}
		if cols := u.Query().Get("columns"); cols != "" {
			ref.Columns = strings.Split(cols, ",")
		}
		return ref, nil

	default:
		return Ref{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidRef, scheme)
	}
}

// String returns the canonical form of the reference.
func (r Ref) String() string {
	switch r.Scheme {
	case SchemeS3:
		if r.Bucket == "" {
			return "s3://" + r.Path
		}
		return "s3://" + r.Bucket + "/" + r.Path
	case SchemeDB:
		q := url.Values{}
		if r.Index != "" {
			q.Set("index", r.Index)
		}
		if r.IndexKind != "" {
			q.Set("kind", string(r.IndexKind))
		}
		if r.Freq != "" {
			q.Set("freq", string(r.Freq))
		}
		if len(r.Columns) > 0 {
			q.Set("columns", strings.Join(r.Columns, ","))
		}
		u := url.URL{Scheme: string(SchemeDB), Host: r.Table, RawQuery: q.Encode()}
		return u.String()
	default:
		return "file://" + r.Path
	}
}

func fileRef(p string) (Ref, error) {
	if p == "" {
		return Ref{}, fmt.Errorf("%w: empty file path", ErrInvalidRef)
	}
	format, err := formatOf(p)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Scheme: SchemeFile, Path: p, Format: format}, nil
}

func formatOf(p string) (Format, error) {
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q for %s", ErrInvalidRef, ext, p)
	}
}
