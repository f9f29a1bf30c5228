// internal/domain/theme/service.go
package theme

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/pkg/events"
)

// Service handles theme administration. Every successful mutation publishes
// theme.changed; failed ones leave the store as it was and publish nothing.
type Service struct {
	repo      Repository
	defaultID string
	events    events.Publisher
	logger    logrus.FieldLogger
}

// NewService creates a new theme service. publisher may be nil.
func NewService(repo Repository, defaultID string, publisher events.Publisher, logger logrus.FieldLogger) *Service {
	if defaultID == "" {
		defaultID = DefaultThemeID
	}
	return &Service{
		repo:      repo,
		defaultID: defaultID,
		events:    publisher,
		logger:    logger,
	}
}

// List returns every stored theme
func (s *Service) List(ctx context.Context) ([]ThemeConfig, error) {
	return s.repo.ListThemes(ctx)
}

// Get returns a stored theme
func (s *Service) Get(ctx context.Context, id string) (*ThemeConfig, error) {
	return s.repo.GetTheme(ctx, id)
}

// Activate makes id the single active theme
func (s *Service) Activate(ctx context.Context, id string) error {
	if _, err := s.repo.GetTheme(ctx, id); err != nil {
		return err
	}
	if err := s.repo.ActivateTheme(ctx, id); err != nil {
		return err
	}

	s.logger.WithField("theme_id", id).Info("Theme activated")
	s.publish(ctx, id)
	return nil
}

// Deactivate hands the active flag back to the default theme
func (s *Service) Deactivate(ctx context.Context, id string) error {
	if id == s.defaultID {
		return ErrDefaultThemeProtected
	}
	theme, err := s.repo.GetTheme(ctx, id)
	if err != nil {
		return err
	}
	if !theme.IsActive {
		return nil
	}
	return s.Activate(ctx, s.defaultID)
}

// CreateFrom copies a stored theme under a new id. The copy starts inactive.
func (s *Service) CreateFrom(ctx context.Context, baseID, name string) (*ThemeConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyThemeName
	}

	base, err := s.repo.GetTheme(ctx, baseID)
	if err != nil {
		return nil, err
	}

	theme := base.Clone()
	theme.ID = uuid.NewString()
	theme.Name = name
	theme.IsActive = false

	if err := s.repo.CreateTheme(ctx, theme); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"theme_id": theme.ID,
		"base_id":  baseID,
	}).Info("Theme created")
	s.publish(ctx, theme.ID)
	return theme, nil
}

// Delete removes a theme that is neither the default nor active, along with
// every page assignment pointing at it
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == s.defaultID {
		return ErrDefaultThemeProtected
	}

	theme, err := s.repo.GetTheme(ctx, id)
	if err != nil {
		return err
	}
	if theme.IsActive {
		return ErrActiveThemeProtected
	}

	if err := s.repo.DeleteTheme(ctx, id); err != nil {
		return err
	}

	s.logger.WithField("theme_id", id).Info("Theme deleted")
	s.publish(ctx, id)
	return nil
}

// Update replaces a theme's content. The active flag is never written.
func (s *Service) Update(ctx context.Context, id string, cfg *ThemeConfig) (*ThemeConfig, error) {
	stored, err := s.repo.GetTheme(ctx, id)
	if err != nil {
		return nil, err
	}

	next := cfg.Clone()
	next.ID = stored.ID
	next.IsActive = stored.IsActive
	next.CreatedAt = stored.CreatedAt
	next.Name = strings.TrimSpace(next.Name)
	if next.Name == "" {
		next.Name = stored.Name
	}

	if err := s.repo.SaveTheme(ctx, next); err != nil {
		return nil, err
	}

	s.publish(ctx, id)
	return s.reload(ctx, next), nil
}

// ApplyPatches edits individual fields of a stored theme. Either every patch
// is applied or none is.
func (s *Service) ApplyPatches(ctx context.Context, id string, patches []Patch) (*ThemeConfig, error) {
	stored, err := s.repo.GetTheme(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := ApplyPatches(stored, patches)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveTheme(ctx, next); err != nil {
		return nil, err
	}

	s.publish(ctx, id)
	return s.reload(ctx, next), nil
}

// reload returns the stored copy of saved so the active flag reflects the store,
// falling back to saved when the read fails
func (s *Service) reload(ctx context.Context, saved *ThemeConfig) *ThemeConfig {
	stored, err := s.repo.GetTheme(ctx, saved.ID)
	if err != nil {
		s.logger.WithError(err).WithField("theme_id", saved.ID).Warn("Failed to reload saved theme")
		return saved
	}
	return stored
}

// AssignPage binds a known page to a theme. A nil or empty themeID restores inheritance.
func (s *Service) AssignPage(ctx context.Context, path string, themeID *string) error {
	page, ok := LookupPage(path)
	if !ok {
		return ErrUnknownPage
	}

	if themeID != nil && strings.TrimSpace(*themeID) == "" {
		themeID = nil
	}
	if themeID != nil {
		if _, err := s.repo.GetTheme(ctx, *themeID); err != nil {
			return err
		}
	}

	if err := s.repo.SetAssignment(ctx, page, themeID); err != nil {
		return err
	}

	hint := ""
	if themeID != nil {
		hint = *themeID
	}
	s.logger.WithFields(logrus.Fields{
		"page":     page,
		"theme_id": hint,
	}).Info("Page theme assignment updated")
	s.publish(ctx, hint)
	return nil
}

// Assignments returns one entry per known page, with a nil ThemeID for
// pages that inherit the active theme
func (s *Service) Assignments(ctx context.Context) ([]PageThemeAssignment, error) {
	stored, err := s.repo.ListAssignments(ctx)
	if err != nil {
		return nil, err
	}

	byPage := make(map[string]PageThemeAssignment, len(stored))
	for _, a := range stored {
		byPage[a.PageID] = a
	}

	out := make([]PageThemeAssignment, 0, len(KnownPages))
	for _, page := range KnownPages {
		if a, ok := byPage[page]; ok {
			out = append(out, a)
			continue
		}
		out = append(out, PageThemeAssignment{PageID: page})
	}
	return out, nil
}

func (s *Service) publish(ctx context.Context, themeID string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, events.Event{Kind: events.ThemeChanged, Hint: themeID})
}
