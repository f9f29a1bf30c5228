// internal/domain/theme/repository.go
package theme

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Repository is the theme store
type Repository interface {
	ListThemes(ctx context.Context) ([]ThemeConfig, error)
	GetTheme(ctx context.Context, id string) (*ThemeConfig, error)
	CreateTheme(ctx context.Context, theme *ThemeConfig) error
	// SaveTheme never writes the active flag; only ActivateTheme moves it
	SaveTheme(ctx context.Context, theme *ThemeConfig) error
	// ActivateTheme makes id the only active theme
	ActivateTheme(ctx context.Context, id string) error
	// DeleteTheme removes an inactive theme and every assignment referencing it.
	// It returns ErrActiveThemeProtected when the theme is active at delete time.
	DeleteTheme(ctx context.Context, id string) error
	ListAssignments(ctx context.Context) ([]PageThemeAssignment, error)
	// GetAssignment returns nil when the page has no assignment
	GetAssignment(ctx context.Context, pageID string) (*PageThemeAssignment, error)
	SetAssignment(ctx context.Context, pageID string, themeID *string) error
}

// GormRepository stores themes in Postgres
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a theme repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// ListThemes returns every stored theme
func (r *GormRepository) ListThemes(ctx context.Context) ([]ThemeConfig, error) {
	var themes []ThemeConfig
	if err := r.db.WithContext(ctx).Order("priority DESC, name ASC").Find(&themes).Error; err != nil {
		return nil, errors.Wrap(err, "failed to retrieve themes")
	}
	return themes, nil
}

// GetTheme retrieves a theme by id
func (r *GormRepository) GetTheme(ctx context.Context, id string) (*ThemeConfig, error) {
	var theme ThemeConfig
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&theme).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, errors.Wrap(err, "failed to retrieve theme")
	}
	return &theme, nil
}

// CreateTheme inserts a new theme
func (r *GormRepository) CreateTheme(ctx context.Context, theme *ThemeConfig) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(theme).Error, "failed to create theme")
}

// SaveTheme replaces the content columns of a stored theme. is_active is left alone.
func (r *GormRepository) SaveTheme(ctx context.Context, theme *ThemeConfig) error {
	result := r.db.WithContext(ctx).Model(&ThemeConfig{}).
		Where("id = ?", theme.ID).
		Select("name", "priority", "colors", "emojis", "component_styles", "background_image", "updated_at").
		Updates(theme)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update theme")
	}
	if result.RowsAffected == 0 {
		return ErrThemeNotFound
	}
	return nil
}

// ActivateTheme clears the active flag everywhere and sets it on id in one transaction
func (r *GormRepository) ActivateTheme(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&ThemeConfig{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "failed to deactivate themes")
	}

	result := tx.Model(&ThemeConfig{}).Where("id = ?", id).Update("is_active", true)
	if result.Error != nil {
		tx.Rollback()
		return errors.Wrap(result.Error, "failed to activate theme")
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return ErrThemeNotFound
	}

	return errors.Wrap(tx.Commit().Error, "failed to commit theme activation")
}

// DeleteTheme removes an inactive theme and its page assignments in one transaction
func (r *GormRepository) DeleteTheme(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("theme_id = ?", id).Delete(&PageThemeAssignment{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "failed to clear page assignments")
	}

	result := tx.Where("id = ? AND is_active = ?", id, false).Delete(&ThemeConfig{})
	if result.Error != nil {
		tx.Rollback()
		return errors.Wrap(result.Error, "failed to delete theme")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&ThemeConfig{}).Where("id = ?", id).Count(&count).Error; err != nil {
			tx.Rollback()
			return errors.Wrap(err, "failed to check theme")
		}
		tx.Rollback()
		if count > 0 {
			return ErrActiveThemeProtected
		}
		return ErrThemeNotFound
	}

	return errors.Wrap(tx.Commit().Error, "failed to commit theme deletion")
}

// ListAssignments returns every stored page assignment
func (r *GormRepository) ListAssignments(ctx context.Context) ([]PageThemeAssignment, error) {
	var assignments []PageThemeAssignment
	if err := r.db.WithContext(ctx).Order("page_id").Find(&assignments).Error; err != nil {
		return nil, errors.Wrap(err, "failed to retrieve page assignments")
	}
	return assignments, nil
}

// GetAssignment returns the assignment of a page, or nil
func (r *GormRepository) GetAssignment(ctx context.Context, pageID string) (*PageThemeAssignment, error) {
	var assignment PageThemeAssignment
	err := r.db.WithContext(ctx).Where("page_id = ?", pageID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to retrieve page assignment")
	}
	return &assignment, nil
}

// SetAssignment upserts the assignment of a page. A nil themeID removes it.
func (r *GormRepository) SetAssignment(ctx context.Context, pageID string, themeID *string) error {
	db := r.db.WithContext(ctx)
	if themeID == nil {
		err := db.Where("page_id = ?", pageID).Delete(&PageThemeAssignment{}).Error
		return errors.Wrap(err, "failed to clear page assignment")
	}

	assignment := PageThemeAssignment{PageID: pageID, ThemeID: themeID}
	return errors.Wrap(db.Save(&assignment).Error, "failed to save page assignment")
}
