package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"dataset-reconciler/core/database"
	"dataset-reconciler/core/dataset"
	"dataset-reconciler/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced file, object or table does not exist.
	ErrNotFound = errors.New("dataset not found")

	// ErrUnavailable is returned when a reference needs a backend that is not configured.
	ErrUnavailable = errors.New("source unavailable")
)

// Config holds configuration for dataset loading.
type Config struct {
	// CacheTTL keeps loaded datasets in memory. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"0s"`
	// BaseDir resolves relative file references. Empty means the working directory.
	BaseDir string `mapstructure:"base_dir" default:""`
}

// Loader resolves dataset references to datasets.
type Loader struct {
	client  storage.Client
	bucket  string
	limit   int64
	db      *gorm.DB
	logger  *zap.Logger
	ttl     time.Duration
	baseDir string
	cache   *cacheStore
}

// NewLoader creates a loader. client and db may be nil, in which case s3://
// and db:// references fail with ErrUnavailable. store supplies the default
// bucket and the object size cap.
func NewLoader(client storage.Client, store storage.Config, db *gorm.DB, logger *zap.Logger, cfg Config) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		client:  client,
		bucket:  store.Bucket,
		limit:   store.ObjectLimit(),
		db:      db,
		logger:  logger,
		ttl:     cfg.CacheTTL,
		baseDir: cfg.BaseDir,
		cache:   newCacheStore(),
	}
}

// Load reads the dataset named by raw. opts controls text decoding and is
// ignored for database tables except for the period frequency.
// Identical concurrent loads share one read.
func (l *Loader) Load(ctx context.Context, raw string, opts dataset.ReadOptions) (*dataset.Dataset, error) {
	ref, err := ParseRef(raw)
	if err != nil {
		return nil, err
	}

	return l.cache.getOrLoad(ctx, cacheKey(ref, opts), l.ttl, func(ctx context.Context) (*dataset.Dataset, error) {
		start := time.Now()
		d, err := l.load(ctx, ref, opts)
		if err != nil {
			l.logger.Debug("Dataset load failed", zap.Stringer("ref", ref), zap.Error(err))
			return nil, err
		}
		l.logger.Debug("Dataset loaded",
			zap.Stringer("ref", ref),
			zap.Stringer("shape", d.Shape()),
			zap.Duration("duration", time.Since(start)),
		)
		return d, nil
	})
}

// LoadPair loads two datasets concurrently.
func (l *Loader) LoadPair(ctx context.Context, refA, refB string, opts dataset.ReadOptions) (*dataset.Dataset, *dataset.Dataset, error) {
	var a, b *dataset.Dataset
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if a, err = l.Load(ctx, refA, opts); err != nil {
			return fmt.Errorf("dataset a: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if b, err = l.Load(ctx, refB, opts); err != nil {
			return fmt.Errorf("dataset b: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// List returns the dataset object keys under prefix in the default bucket.
func (l *Loader) List(ctx context.Context, prefix string) ([]string, error) {
	if l.client == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", ErrUnavailable)
	}
	return storage.ListDatasets(ctx, l.client, l.bucket, prefix)
}

// Invalidate drops cached datasets read from raw. An empty raw drops everything.
func (l *Loader) Invalidate(raw string) {
	if raw == "" {
		l.cache.invalidate("")
		return
	}
	if ref, err := ParseRef(raw); err == nil {
		l.cache.invalidatePrefix(ref.String() + "|")
	}
}

func (l *Loader) load(ctx context.Context, ref Ref, opts dataset.ReadOptions) (*dataset.Dataset, error) {
	switch ref.Scheme {
	case SchemeS3:
		if l.client == nil {
			return nil, fmt.Errorf("%w: object storage is not configured", ErrUnavailable)
		}
		bucket := ref.Bucket
		if bucket == "" {
			bucket = l.bucket
		}
		data, err := storage.ReadObject(ctx, l.client, bucket, ref.Path, l.limit)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
			}
			return nil, err
		}
		return decode(bytes.NewReader(data), ref.Format, opts)

	case SchemeDB:
		if l.db == nil {
			return nil, fmt.Errorf("%w: database is not configured", ErrUnavailable)
		}
		freq := ref.Freq
		if freq == "" {
			freq = opts.PeriodFreq
		}
		d, err := database.LoadTable(ctx, l.db, database.TableQuery{
			Table:       ref.Table,
			IndexColumn: ref.Index,
			IndexKind:   ref.IndexKind,
			PeriodFreq:  freq,
			Columns:     ref.Columns,
		})
		if errors.Is(err, database.ErrTableNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return d, err

	default:
		p := ref.Path
		if l.baseDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(l.baseDir, p)
		}
		f, err := os.Open(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
			}
			return nil, err
		}
		defer f.Close()
		return decode(f, ref.Format, opts)
	}
}

func decode(r io.Reader, format Format, opts dataset.ReadOptions) (*dataset.Dataset, error) {
	switch format {
	case FormatJSON:
		return dataset.ReadJSON(r)
	case FormatTSV:
		opts.Comma = '\t'
		return dataset.ReadCSV(r, opts)
	default:
		return dataset.ReadCSV(r, opts)
	}
}

func cacheKey(ref Ref, opts dataset.ReadOptions) string {
	return fmt.Sprintf("%s|%d|%d|%s|%s|%t|%d", ref, opts.HeaderRows, opts.IndexColumn, opts.IndexKind, opts.PeriodFreq, opts.Decimal, opts.Comma)
}
