package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/alizia-edu/alizia-api/internal/models"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

type catalogFetcher interface {
	Courses(ctx context.Context) ([]models.Course, error)
	CourseStudents(ctx context.Context, courseID int64) ([]models.Student, error)
	Subjects(ctx context.Context) ([]models.Subject, error)
	Nuclei(ctx context.Context) ([]models.ProblematicNucleus, error)
	KnowledgeAreas(ctx context.Context) ([]models.KnowledgeArea, error)
	Categories(ctx context.Context) ([]models.Category, error)
	MomentTypes(ctx context.Context) ([]models.MomentType, error)
	Activities(ctx context.Context) ([]models.Activity, error)
	Fonts(ctx context.Context, areaID *int64) ([]models.Font, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CatalogService serves read-mostly reference collections, caching the
// taxonomy and banks in Redis since they change rarely.
type CatalogService struct {
	upstream catalogFetcher
	cache    catalogCache
	ttl      time.Duration
	logger   *zap.Logger
}

// NewCatalogService constructs the service. A nil cache disables caching.
func NewCatalogService(upstream catalogFetcher, cache catalogCache, ttl time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CatalogService{upstream: upstream, cache: cache, ttl: ttl, logger: logger}
}

func cached[T any](ctx context.Context, s *CatalogService, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		var items []T
		err := s.cache.Get(ctx, key, &items)
		if err == nil {
			return items, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items, s.ttl); err != nil {
			s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

// Courses lists all courses.
func (s *CatalogService) Courses(ctx context.Context) ([]models.Course, error) {
	return cached(ctx, s, "catalog:courses", s.upstream.Courses)
}

// CourseStudents lists one course's roster. Rosters are not cached.
func (s *CatalogService) CourseStudents(ctx context.Context, courseID int64) ([]models.Student, error) {
	return s.upstream.CourseStudents(ctx, courseID)
}

// Subjects lists all subjects.
func (s *CatalogService) Subjects(ctx context.Context) ([]models.Subject, error) {
	return cached(ctx, s, "catalog:subjects", s.upstream.Subjects)
}

// Nuclei lists the taxonomy roots.
func (s *CatalogService) Nuclei(ctx context.Context) ([]models.ProblematicNucleus, error) {
	return cached(ctx, s, "catalog:nuclei", s.upstream.Nuclei)
}

// KnowledgeAreas lists the middle taxonomy level.
func (s *CatalogService) KnowledgeAreas(ctx context.Context) ([]models.KnowledgeArea, error) {
	return cached(ctx, s, "catalog:knowledge-areas", s.upstream.KnowledgeAreas)
}

// Categories lists the taxonomy leaves.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return cached(ctx, s, "catalog:categories", s.upstream.Categories)
}

// MomentTypes lists the lesson phase descriptors.
func (s *CatalogService) MomentTypes(ctx context.Context) ([]models.MomentType, error) {
	return cached(ctx, s, "catalog:moment-types", s.upstream.MomentTypes)
}

// Activities lists the activity bank.
func (s *CatalogService) Activities(ctx context.Context) ([]models.Activity, error) {
	return cached(ctx, s, "catalog:activities", s.upstream.Activities)
}

// Fonts lists information sources, optionally filtered by area. The
// filtered variant bypasses the cache.
func (s *CatalogService) Fonts(ctx context.Context, areaID *int64) ([]models.Font, error) {
	if areaID != nil {
		return s.upstream.Fonts(ctx, areaID)
	}
	return cached(ctx, s, "catalog:fonts", func(ctx context.Context) ([]models.Font, error) {
		return s.upstream.Fonts(ctx, nil)
	})
}
