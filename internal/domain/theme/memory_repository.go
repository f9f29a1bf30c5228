// internal/domain/theme/memory_repository.go
package theme

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-process Repository for tests and single-instance use
type MemoryRepository struct {
	mu          sync.RWMutex
	themes      map[string]*ThemeConfig
	assignments map[string]*string
	// Err, when set, is returned by every call
	Err error
}

// NewMemoryRepository creates a repository holding copies of themes
func NewMemoryRepository(themes ...*ThemeConfig) *MemoryRepository {
	r := &MemoryRepository{
		themes:      make(map[string]*ThemeConfig),
		assignments: make(map[string]*string),
	}
	for _, t := range themes {
		r.themes[t.ID] = t.Clone()
	}
	return r
}

func (r *MemoryRepository) ListThemes(_ context.Context) ([]ThemeConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	out := make([]ThemeConfig, 0, len(r.themes))
	for _, t := range r.themes {
		out = append(out, *t.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MemoryRepository) GetTheme(_ context.Context, id string) (*ThemeConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	t, ok := r.themes[id]
	if !ok {
		return nil, ErrThemeNotFound
	}
	return t.Clone(), nil
}

func (r *MemoryRepository) CreateTheme(_ context.Context, theme *ThemeConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	now := time.Now().UTC()
	theme.CreatedAt, theme.UpdatedAt = now, now
	r.themes[theme.ID] = theme.Clone()
	return nil
}

func (r *MemoryRepository) SaveTheme(_ context.Context, theme *ThemeConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	stored, ok := r.themes[theme.ID]
	if !ok {
		return ErrThemeNotFound
	}
	theme.UpdatedAt = time.Now().UTC()
	next := theme.Clone()
	next.IsActive = stored.IsActive
	r.themes[theme.ID] = next
	return nil
}

func (r *MemoryRepository) ActivateTheme(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	if _, ok := r.themes[id]; !ok {
		return ErrThemeNotFound
	}
	for key, t := range r.themes {
		t.IsActive = key == id
	}
	return nil
}

func (r *MemoryRepository) DeleteTheme(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	stored, ok := r.themes[id]
	if !ok {
		return ErrThemeNotFound
	}
	if stored.IsActive {
		return ErrActiveThemeProtected
	}
	delete(r.themes, id)
	for page, themeID := range r.assignments {
		if themeID != nil && *themeID == id {
			delete(r.assignments, page)
		}
	}
	return nil
}

func (r *MemoryRepository) ListAssignments(_ context.Context) ([]PageThemeAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	out := make([]PageThemeAssignment, 0, len(r.assignments))
	for page, themeID := range r.assignments {
		out = append(out, PageThemeAssignment{PageID: page, ThemeID: copyID(themeID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PageID < out[j].PageID })
	return out, nil
}

func (r *MemoryRepository) GetAssignment(_ context.Context, pageID string) (*PageThemeAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	themeID, ok := r.assignments[pageID]
	if !ok {
		return nil, nil
	}
	return &PageThemeAssignment{PageID: pageID, ThemeID: copyID(themeID)}, nil
}

func (r *MemoryRepository) SetAssignment(_ context.Context, pageID string, themeID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	if themeID == nil {
		delete(r.assignments, pageID)
		return nil
	}
	r.assignments[pageID] = copyID(themeID)
	return nil
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
