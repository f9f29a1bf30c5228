// internal/domain/carousel/service.go
package carousel

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/domain/theme"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidSection = errors.New("invalid carousel section")
	ErrInvalidConfig  = errors.New("invalid carousel config")
)

// Repository stores carousel configs
type Repository interface {
	// Get returns nil when nothing is stored for the page and section
	Get(ctx context.Context, page string, section Section) (*CarouselConfig, error)
	Upsert(ctx context.Context, cfg *CarouselConfig) error
}

// GormRepository stores carousel configs in Postgres
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a carousel repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Get(ctx context.Context, page string, section Section) (*CarouselConfig, error) {
	var cfg CarouselConfig
	err := r.db.WithContext(ctx).Where("page = ? AND section = ?", page, section).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to retrieve carousel config")
	}
	return &cfg, nil
}

func (r *GormRepository) Upsert(ctx context.Context, cfg *CarouselConfig) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page"}, {Name: "section"}},
		DoUpdates: clause.AssignmentColumns(updatableColumns),
	}).Create(cfg).Error
	return errors.Wrap(err, "failed to save carousel config")
}

var updatableColumns = []string{
	"title", "background_color", "title_color", "arrow_color", "badge_color", "title_size",
	"card_width", "cards_per_view", "show_arrows", "show_badges", "autoplay", "autoplay_interval",
	"view_all_title", "view_all_background_color", "view_all_title_color", "view_all_title_size",
	"view_all_cards_per_row", "view_all_show_badges", "updated_at",
}

// Service handles carousel configuration
type Service struct {
	repo   Repository
	logger logrus.FieldLogger
}

// NewService creates a new carousel service
func NewService(repo Repository, logger logrus.FieldLogger) *Service {
	return &Service{repo: repo, logger: logger}
}

func lookup(path string, section Section) (string, error) {
	if !section.Valid() {
		return "", ErrInvalidSection
	}
	page, ok := theme.LookupPage(path)
	if !ok {
		return "", theme.ErrUnknownPage
	}
	return page, nil
}

// Get returns the stored config, or the defaults when none is stored or the store is unreachable
func (s *Service) Get(ctx context.Context, path string, section Section) (*CarouselConfig, error) {
	page, err := lookup(path, section)
	if err != nil {
		return nil, err
	}

	cfg, err := s.repo.Get(ctx, page, section)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"page":    page,
			"section": section,
		}).Warn("Carousel store unavailable, serving defaults")
		return DefaultConfig(page, section), nil
	}
	if cfg == nil {
		return DefaultConfig(page, section), nil
	}
	return cfg, nil
}

// Upsert validates and stores the config of a page section
func (s *Service) Upsert(ctx context.Context, path string, section Section, cfg *CarouselConfig) (*CarouselConfig, error) {
	page, err := lookup(path, section)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}

	next := *cfg
	next.ID = 0
	next.Page = page
	next.Section = section

	if err := s.repo.Upsert(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

func validate(cfg *CarouselConfig) error {
	if cfg == nil {
		return errors.Wrap(ErrInvalidConfig, "config is required")
	}
	if cfg.CardsPerView < 1 || cfg.CardsPerView > 8 {
		return errors.Wrap(ErrInvalidConfig, "cards_per_view must be between 1 and 8")
	}
	if cfg.ViewAllCardsPerRow < 1 || cfg.ViewAllCardsPerRow > 8 {
		return errors.Wrap(ErrInvalidConfig, "view_all_cards_per_row must be between 1 and 8")
	}
	if cfg.CardWidth < 0 {
		return errors.Wrap(ErrInvalidConfig, "card_width must not be negative")
	}
	if cfg.Autoplay && cfg.AutoplayInterval < 1000 {
		return errors.Wrap(ErrInvalidConfig, "autoplay_interval must be at least 1000ms")
	}
	return nil
}
