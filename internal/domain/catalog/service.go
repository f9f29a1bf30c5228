// internal/domain/catalog/service.go
package catalog

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Service serves catalog reads
type Service struct {
	repo   Repository
	cache  SnapshotCache
	logger logrus.FieldLogger
}

// NewService creates a new catalog service. cache may be nil.
func NewService(repo Repository, cache SnapshotCache, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Snapshot returns the authoritative product list of a category.
// Cache failures fall back to the repository.
func (s *Service) Snapshot(ctx context.Context, category string) ([]Product, error) {
	if s.cache != nil {
		products, ok, err := s.cache.Get(ctx, category)
		if err != nil {
			s.logger.WithError(err).WithField("category", category).Warn("Catalog snapshot cache unavailable")
		} else if ok {
			return products, nil
		}
	}

	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, category, products); err != nil {
			s.logger.WithError(err).WithField("category", category).Warn("Failed to cache catalog snapshot")
		}
	}
	return products, nil
}

// GetProduct always reads from the repository so stock checks see the source of truth
func (s *Service) GetProduct(ctx context.Context, id ProductID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// Filter returns the products of a category that match the filter set
func (s *Service) Filter(ctx context.Context, category string, filters *FilterSet) ([]Product, error) {
	products, err := s.Snapshot(ctx, category)
	if err != nil {
		return nil, err
	}
	if filters == nil || filters.Empty() {
		return products, nil
	}
	return filters.Apply(products), nil
}
