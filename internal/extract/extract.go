// Package extract orchestrates the extraction stage: it resolves the
// watershed boundary, builds the export expressions and submits the two
// Drive export jobs, recording their handles locally.
package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/openhydro/watermap-cli/internal/config"
	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/ee"
	"github.com/openhydro/watermap-cli/internal/logger"
)

// EarthEngine is the slice of the Earth Engine client the extractor uses.
type EarthEngine interface {
	ListFeatures(ctx context.Context, asset, filter string, pageSize int) (*ee.FeatureList, error)
	ExportImageToDrive(ctx context.Context, req *ee.ImageExportRequest) (*ee.Operation, error)
	ExportTableToDrive(ctx context.Context, req *ee.TableExportRequest) (*ee.Operation, error)
}

// JobStore records submitted export jobs.
type JobStore interface {
	SaveJob(ctx context.Context, job *domain.ExportJob) error
}

// Result reports what one extraction run submitted.
type Result struct {
	// Watershed is the resolved boundary, nil when the fallback box was
	// used.
	Watershed    *domain.Watershed
	UsedFallback bool

	BoundaryJob *domain.ExportJob
	RasterJob   *domain.ExportJob
}

// Service runs the extraction stage.
type Service struct {
	engine EarthEngine
	jobs   JobStore
	cfg    *config.Config
}

// NewService creates an extraction service.
func NewService(engine EarthEngine, jobs JobStore, cfg *config.Config) *Service {
	return &Service{engine: engine, jobs: jobs, cfg: cfg}
}

// Run resolves the region of interest and submits both export jobs.
// The exports complete on the service side; Run returns as soon as both
// submissions are accepted.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	watershed, err := s.lookupWatershed(ctx)
	switch {
	case err == nil:
		result.Watershed = watershed
		logger.Infof("found watershed %s (%s)", watershed.HUC10, watershed.Name)
	case errors.Is(err, domain.ErrWatershedNotFound):
		if !s.cfg.Region.Fallback.Valid() {
			return nil, err
		}
		result.UsedFallback = true
		logger.Warnf("no watershed for HUC10 %q, using fallback box", s.cfg.Region.HUC10)
	default:
		return nil, err
	}

	boundaryExpr := s.boundaryExpression(result.UsedFallback)
	rasterExpr := s.rasterExpression(result.UsedFallback)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		op, err := s.engine.ExportTableToDrive(gctx, &ee.TableExportRequest{
			Expression:  boundaryExpr,
			Description: s.cfg.Export.BoundaryPrefix,
			FileExportOptions: &ee.TableFileExportOptions{
				FileFormat: ee.FormatShapefile,
				DriveDestination: &ee.DriveDestination{
					FilenamePrefix: s.cfg.Export.BoundaryPrefix,
					Folder:         s.cfg.Export.DriveFolder,
				},
			},
		})
		if err != nil {
			return fmt.Errorf("submitting boundary export: %w", err)
		}
		result.BoundaryJob = s.recordJob(gctx, op, domain.JobKindBoundary, s.cfg.Export.BoundaryPrefix)
		return nil
	})

	g.Go(func() error {
		op, err := s.engine.ExportImageToDrive(gctx, &ee.ImageExportRequest{
			Expression:  rasterExpr,
			Description: s.cfg.Export.RasterPrefix,
			FileExportOptions: &ee.ImageFileExportOptions{
				FileFormat: ee.FormatGeoTIFF,
				DriveDestination: &ee.DriveDestination{
					FilenamePrefix: s.cfg.Export.RasterPrefix,
					Folder:         s.cfg.Export.DriveFolder,
				},
			},
			MaxPixels: s.cfg.Export.MaxPixels,
			Grid:      ee.GridForScale(s.cfg.Export.ScaleMeters),
		})
		if err != nil {
			return fmt.Errorf("submitting raster export: %w", err)
		}
		result.RasterJob = s.recordJob(gctx, op, domain.JobKindRaster, s.cfg.Export.RasterPrefix)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// lookupWatershed queries the boundary dataset for the configured HUC10
// code. Returns ErrWatershedNotFound when nothing matches.
func (s *Service) lookupWatershed(ctx context.Context) (*domain.Watershed, error) {
	if s.cfg.Region.HUC10 == "" {
		return nil, fmt.Errorf("%w: no HUC10 configured", domain.ErrWatershedNotFound)
	}

	list, err := s.engine.ListFeatures(ctx,
		ee.PublicAsset(s.cfg.Dataset.WatershedAsset),
		ee.EqFilter("huc10", s.cfg.Region.HUC10), 1)
	if err != nil {
		return nil, fmt.Errorf("querying watershed boundary: %w", err)
	}
	if len(list.Features) == 0 {
		return nil, fmt.Errorf("%w: huc10 %q", domain.ErrWatershedNotFound, s.cfg.Region.HUC10)
	}

	feat := list.Features[0]
	return &domain.Watershed{
		HUC10:    s.cfg.Region.HUC10,
		Name:     feat.Property("name"),
		Geometry: feat.Geometry,
	}, nil
}

// boundaryExpression builds the feature collection to export: the
// filtered boundary dataset, or a single fallback feature.
func (s *Service) boundaryExpression(fallback bool) *ee.Expression {
	b := ee.NewBuilder()
	return b.Build(s.regionCollection(b, fallback))
}

// rasterExpression builds the clipped classification image to export.
func (s *Service) rasterExpression(fallback bool) *ee.Expression {
	b := ee.NewBuilder()
	region := s.regionCollection(b, fallback)
	img := b.Select(b.Image(s.cfg.Dataset.WaterAsset), s.cfg.Dataset.Band)
	return b.Build(b.Clip(img, b.Geometry(region)))
}

// regionCollection adds the region-of-interest collection to a graph.
func (s *Service) regionCollection(b *ee.Builder, fallback bool) ee.Ref {
	if fallback {
		geom := b.BBox(s.cfg.Region.Fallback)
		return b.Collection(b.Feature(geom, map[string]any{"name": "fallback_region"}))
	}
	fc := b.FeatureCollection(s.cfg.Dataset.WatershedAsset)
	return b.Filter(fc, b.FilterEq("huc10", s.cfg.Region.HUC10))
}

// recordJob persists the submitted operation. Persistence failures are
// logged, not fatal: the export is already running on the service side
// and the operation name has been printed.
func (s *Service) recordJob(ctx context.Context, op *ee.Operation, kind domain.JobKind, description string) *domain.ExportJob {
	job := &domain.ExportJob{
		ID:          uuid.NewString(),
		Operation:   op.Name,
		Kind:        kind,
		Description: description,
		State:       op.JobState(),
		Error:       op.ErrorMessage(),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.jobs.SaveJob(ctx, job); err != nil {
		logger.Errorf("recording %s job: %v", kind, err)
	}
	return job
}
