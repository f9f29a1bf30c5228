// internal/domain/theme/resolver.go
package theme

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/pkg/metrics"
)

// Source names the level of the resolution chain that produced a theme
type Source string

const (
	SourceAssigned  Source = "assigned"
	SourceActive    Source = "active"
	SourceDefault   Source = "default"
	SourceEmergency Source = "emergency"
)

// Effective is the fully populated theme of a page at one moment
type Effective struct {
	Page       string       `json:"page"`
	Source     Source       `json:"source"`
	Theme      *ThemeConfig `json:"theme"`
	ResolvedAt time.Time    `json:"resolved_at"`
}

// Resolver computes effective themes. It never fails: store errors degrade to
// the emergency theme.
type Resolver struct {
	repo      Repository
	defaultID string
	metrics   *metrics.Metrics
	logger    logrus.FieldLogger
}

// NewResolver creates a resolver. An empty defaultID uses DefaultThemeID.
func NewResolver(repo Repository, defaultID string, m *metrics.Metrics, logger logrus.FieldLogger) *Resolver {
	if defaultID == "" {
		defaultID = DefaultThemeID
	}
	return &Resolver{
		repo:      repo,
		defaultID: defaultID,
		metrics:   m,
		logger:    logger,
	}
}

// Resolve returns the effective theme for a route path: the page assignment,
// then the active theme, then the stored default, then the emergency theme.
func (r *Resolver) Resolve(ctx context.Context, path string) Effective {
	page := NormalizePage(path)

	theme, source, err := r.pick(ctx, page)
	if err != nil {
		r.logger.WithError(err).WithField("page", page).Warn("Theme store unavailable, serving emergency theme")
		theme, source = nil, SourceEmergency
	}

	r.metrics.ThemeResolved(string(source))
	return Effective{
		Page:       page,
		Source:     source,
		Theme:      Complete(theme),
		ResolvedAt: time.Now().UTC(),
	}
}

func (r *Resolver) pick(ctx context.Context, page string) (*ThemeConfig, Source, error) {
	themes, err := r.repo.ListThemes(ctx)
	if err != nil {
		return nil, "", err
	}

	assignment, err := r.repo.GetAssignment(ctx, page)
	if err != nil {
		return nil, "", err
	}

	byID := make(map[string]*ThemeConfig, len(themes))
	var active *ThemeConfig
	for i := range themes {
		t := &themes[i]
		byID[t.ID] = t
		if t.IsActive && active == nil {
			active = t
		}
	}

	if assignment != nil && assignment.ThemeID != nil {
		if t, ok := byID[*assignment.ThemeID]; ok {
			return t, SourceAssigned, nil
		}
		r.logger.WithFields(logrus.Fields{
			"page":     page,
			"theme_id": *assignment.ThemeID,
		}).Warn("Page is assigned to a missing theme")
	}

	if active != nil {
		return active, SourceActive, nil
	}

	if t, ok := byID[r.defaultID]; ok {
		return t, SourceDefault, nil
	}

	return nil, SourceEmergency, nil
}
