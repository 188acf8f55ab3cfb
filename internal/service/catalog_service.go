package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/noah-isme/usedcar-api/internal/carfilter"
	"github.com/noah-isme/usedcar-api/internal/dto"
	"github.com/noah-isme/usedcar-api/internal/models"
	appErrors "github.com/noah-isme/usedcar-api/pkg/errors"
	"github.com/noah-isme/usedcar-api/pkg/jobs"
)

var tracer = otel.Tracer("github.com/noah-isme/usedcar-api/internal/service")

const (
	catalogCacheKey   = "catalog:active"
	facetsCacheKey    = "catalog:facets"
	catalogCacheScope = "catalog:*"

	// JobCatalogRefresh rebuilds the cached catalog after a listing changes.
	JobCatalogRefresh = "catalog.refresh"

	defaultBrowseLimit = 10
	maxBrowseLimit     = 50
)

type catalogRepository interface {
	ListActive(ctx context.Context) ([]models.Car, error)
	FindByID(ctx context.Context, id string) (*models.Car, error)
}

// CatalogConfig tunes pagination and cache lifetime.
type CatalogConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	CacheTTL        time.Duration
}

// CatalogService answers listing-grid, filter sidebar and browse queries from
// a snapshot of the active catalog.
type CatalogService struct {
	repo    catalogRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	cfg     CatalogConfig
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo catalogRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg CatalogConfig) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 12
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 60
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		cfg.DefaultPageSize = cfg.MaxPageSize
	}
	return &CatalogService{repo: repo, cache: cache, metrics: metrics, logger: logger, cfg: cfg}
}

// Search filters, sorts and paginates the active catalog. The boolean reports
// whether the snapshot came from cache.
func (s *CatalogService) Search(ctx context.Context, query models.CarQuery) ([]models.Car, *models.Pagination, bool, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Search", trace.WithAttributes(
		attribute.String("search.sort", string(query.Sort)),
		attribute.Bool("search.term", query.SearchTerm != ""),
	))
	defer span.End()

	matched, hit, err := s.match(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, nil, false, err
	}

	page, size := s.pageBounds(query.Page, query.PageSize)
	span.SetAttributes(attribute.Int("search.matched", len(matched)), attribute.Bool("cache.hit", hit))

	return paginate(matched, page, size), &models.Pagination{Page: page, PageSize: size, TotalCount: len(matched)}, hit, nil
}

// Matching returns every car satisfying the query in sorted order, ignoring pagination.
func (s *CatalogService) Matching(ctx context.Context, query models.CarQuery) ([]models.Car, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Matching")
	defer span.End()

	matched, _, err := s.match(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "match failed")
	}
	return matched, err
}

func (s *CatalogService) match(ctx context.Context, query models.CarQuery) ([]models.Car, bool, error) {
	cars, hit, err := s.snapshot(ctx)
	if err != nil {
		return nil, false, err
	}
	start := time.Now()
	matched := carfilter.Apply(cars, query.Filter, query.SearchTerm, query.Sort)
	s.metrics.ObserveSearch(len(matched), time.Since(start))
	return matched, hit, nil
}

// Get returns a single listing. Delisted cars are reported as missing; sold
// cars remain visible so shared links keep working.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("car")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load car")
	}
	if car.Status == models.CarStatusInactive {
		return nil, appErrors.NotFound("car")
	}
	return car, nil
}

// Facets summarises the active catalog for the filter sidebar.
func (s *CatalogService) Facets(ctx context.Context) (*models.FacetSummary, bool, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Facets")
	defer span.End()

	summary, hit, err := Remember(ctx, s.cache, facetsCacheKey, s.cfg.CacheTTL, func(ctx context.Context) (models.FacetSummary, error) {
		cars, _, err := s.snapshot(ctx)
		if err != nil {
			return models.FacetSummary{}, err
		}
		return carfilter.Summarize(cars), nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}
	return &summary, hit, nil
}

// Browse lists the most common values of one dimension for the home carousels.
func (s *CatalogService) Browse(ctx context.Context, dimension dto.BrowseDimension, limit int) (*dto.BrowseResponse, bool, error) {
	if limit <= 0 {
		limit = defaultBrowseLimit
	}
	if limit > maxBrowseLimit {
		limit = maxBrowseLimit
	}

	summary, hit, err := s.Facets(ctx)
	if err != nil {
		return nil, false, err
	}

	var opts []models.FacetOption
	switch dimension {
	case dto.BrowseByCity:
		opts = summary.City
	case dto.BrowseByBrand:
		opts = summary.Brand
	case dto.BrowseByBodyType:
		opts = summary.BodyType
	default:
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported browse dimension %q", dimension))
	}
	if opts == nil {
		opts = []models.FacetOption{}
	}
	return &dto.BrowseResponse{Dimension: dimension, Options: carfilter.Top(opts, limit)}, hit, nil
}

// Warm reloads the snapshot and facet summary into the cache and returns the
// number of active listings.
func (s *CatalogService) Warm(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Warm")
	defer span.End()

	cars, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "warm failed")
		return 0, err
	}
	if err := s.cache.Set(ctx, catalogCacheKey, cars, s.cfg.CacheTTL); err != nil {
		return len(cars), err
	}
	if err := s.cache.Set(ctx, facetsCacheKey, carfilter.Summarize(cars), s.cfg.CacheTTL); err != nil {
		return len(cars), err
	}
	return len(cars), nil
}

// Refresh is the handler for catalog refresh jobs.
func (s *CatalogService) Refresh(ctx context.Context, job jobs.Job) error {
	if err := s.cache.Invalidate(ctx, catalogCacheScope); err != nil {
		return err
	}
	n, err := s.Warm(ctx)
	if err != nil {
		return err
	}
	s.logger.Debug("catalog refreshed", zap.String("job_id", job.ID), zap.String("car_id", job.Payload["carId"]), zap.Int("cars", n))
	return nil
}

// snapshot returns the active catalog, preferring the cache.
func (s *CatalogService) snapshot(ctx context.Context) ([]models.Car, bool, error) {
	return Remember(ctx, s.cache, catalogCacheKey, s.cfg.CacheTTL, s.load)
}

func (s *CatalogService) load(ctx context.Context) ([]models.Car, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.load")
	defer span.End()

	cars, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("load catalog", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}
	span.SetAttributes(attribute.Int("catalog.size", len(cars)))
	s.metrics.SetCatalogSize(len(cars))
	return cars, nil
}

func (s *CatalogService) pageBounds(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = s.cfg.DefaultPageSize
	}
	if size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}
	return page, size
}

func paginate(cars []models.Car, page, size int) []models.Car {
	start := (page - 1) * size
	if start >= len(cars) {
		return []models.Car{}
	}
	end := min(start+size, len(cars))
	return cars[start:end]
}
