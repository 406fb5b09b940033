package compare

import (
	"context"
	"fmt"
	"strings"

	"dataset-reconciler/core/dataset"
	"dataset-reconciler/core/reconcile"
	"dataset-reconciler/core/source"

	"go.uber.org/zap"
)

// Service loads, prepares and reconciles datasets.
type Service struct {
	loader   *source.Loader
	logger   *zap.Logger
	defaults reconcile.Config
	read     dataset.ReadOptions
}

// NewService creates a new compare service with the configured defaults.
func NewService(loader *source.Loader, logger *zap.Logger, defaults reconcile.Config, read dataset.ReadOptions) *Service {
	return &Service{
		loader:   loader,
		logger:   logger,
		defaults: defaults,
		read:     read,
	}
}

// Compare loads both referenced datasets, applies the preparation pipeline
// to each and reconciles them.
func (s *Service) Compare(ctx context.Context, req Request) (*reconcile.Report, error) {
	if strings.TrimSpace(req.A) == "" || strings.TrimSpace(req.B) == "" {
		return nil, fmt.Errorf("%w: both dataset references a and b are required", reconcile.ErrInvalidInput)
	}

	cfg := req.Options.Apply(s.defaults)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	read, err := req.Read.Apply(s.read)
	if err != nil {
		return nil, err
	}

	if req.Refresh {
		s.loader.Invalidate(req.A)
		s.loader.Invalidate(req.B)
	}

	a, b, err := s.loader.LoadPair(ctx, req.A, req.B, read)
	if err != nil {
		return nil, err
	}

	if !req.Prepare.IsZero() {
		p := req.Prepare.Build(s.logger)
		if a, err = p.Run(ctx, a); err != nil {
			return nil, fmt.Errorf("prepare a: %w", err)
		}
		if b, err = p.Run(ctx, b); err != nil {
			return nil, fmt.Errorf("prepare b: %w", err)
		}
	}

	report, err := reconcile.Reconcile(a, b, cfg)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Comparison complete",
		zap.String("a", req.A),
		zap.String("b", req.B),
		zap.Bool("identical", report.Identical),
		zap.Int("findings", len(report.Findings)),
		zap.Int("total_diffs", report.Summary.TotalDiffs),
	)
	return report, nil
}

// Inspect loads one dataset and summarizes its shape and schema.
func (s *Service) Inspect(ctx context.Context, ref string, read ReadOverrides) (*Inspection, error) {
	opts, err := read.Apply(s.read)
	if err != nil {
		return nil, err
	}
	d, err := s.loader.Load(ctx, ref, opts)
	if err != nil {
		return nil, err
	}

	in := &Inspection{
		Ref:         ref,
		Shape:       d.Shape(),
		IndexKind:   "empty",
		Columns:     make([]ColumnSummary, 0, len(d.Columns)),
		Fingerprint: fmt.Sprintf("%016x", d.Fingerprint()),
	}
	if len(d.Index) > 0 {
		in.IndexKind = d.Index[0].Kind.String()
		in.Freq = d.Index[0].Freq
	}
	for _, c := range d.Columns {
		missing := 0
		for _, v := range c.Values {
			if v.IsNull() {
				missing++
			}
		}
		in.Columns = append(in.Columns, ColumnSummary{ID: c.ID, Type: c.Type, Missing: missing})
	}
	return in, nil
}

// InvalidateCache drops cached copies of ref, or every cached dataset when
// ref is empty.
func (s *Service) InvalidateCache(ref string) error {
	if ref != "" {
		if _, err := source.ParseRef(ref); err != nil {
			return err
		}
	}
	s.loader.Invalidate(ref)
	s.logger.Info("Dataset cache invalidated", zap.String("ref", ref))
	return nil
}

// ListDatasets returns dataset object keys under prefix in the default bucket.
func (s *Service) ListDatasets(ctx context.Context, prefix string) ([]string, error) {
	return s.loader.List(ctx, prefix)
}
