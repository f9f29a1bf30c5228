// internal/domain/catalog/repository.go
package catalog

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when the catalog has no product with the id
var ErrProductNotFound = errors.New("product not found")

// Repository reads the authoritative catalog
type Repository interface {
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	GetProduct(ctx context.Context, id ProductID) (*Product, error)
}

// GormRepository reads products from Postgres
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a catalog repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// ListByCategory returns products of a category, newest first. An empty category lists everything.
func (r *GormRepository) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	var products []Product

	query := r.db.WithContext(ctx).Model(&Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "failed to retrieve products")
	}
	return products, nil
}

// GetProduct retrieves a single product by id
func (r *GormRepository) GetProduct(ctx context.Context, id ProductID) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).Where("id = ?", string(id)).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrap(err, "failed to retrieve product")
	}
	return &product, nil
}
