package carousel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/collectibles-storefront/internal/domain/theme"
	"github.com/your-org/collectibles-storefront/internal/pkg/logger"
)

type fakeRepository struct {
	configs map[string]CarouselConfig
	err     error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{configs: make(map[string]CarouselConfig)}
}

func (r *fakeRepository) Get(_ context.Context, page string, section Section) (*CarouselConfig, error) {
	if r.err != nil {
		return nil, r.err
	}
	cfg, ok := r.configs[page+"|"+string(section)]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (r *fakeRepository) Upsert(_ context.Context, cfg *CarouselConfig) error {
	if r.err != nil {
		return r.err
	}
	r.configs[cfg.Page+"|"+string(cfg.Section)] = *cfg
	return nil
}

func TestService_GetFallsBackToDefaults(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, logger.Discard())

	cfg, err := svc.Get(context.Background(), "/pokemontcg", SectionBestsellers)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(theme.PagePokemonTCG, SectionBestsellers), cfg)
	assert.Equal(t, "Bestsellers", cfg.Title)

	repo.err = errors.New("db down")
	cfg, err = svc.Get(context.Background(), "/pokemontcg", SectionAll)
	require.NoError(t, err)
	assert.Equal(t, "All Products", cfg.Title)
}

func TestService_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository(), logger.Discard())

	in := DefaultConfig("", "")
	in.Title = "Hot Picks"
	in.Autoplay = true
	in.AutoplayInterval = 3000

	saved, err := svc.Upsert(ctx, "/HotWheels/", SectionNewArrivals, in)
	require.NoError(t, err)
	assert.Equal(t, theme.PageHotWheels, saved.Page)
	assert.Equal(t, SectionNewArrivals, saved.Section)

	got, err := svc.Get(ctx, "/hotwheels", SectionNewArrivals)
	require.NoError(t, err)
	assert.Equal(t, "Hot Picks", got.Title)
	assert.True(t, got.Autoplay)

	other, err := svc.Get(ctx, "/hotwheels", SectionAll)
	require.NoError(t, err)
	assert.Equal(t, "All Products", other.Title)
}

func TestService_UpsertValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository(), logger.Discard())

	_, err := svc.Upsert(ctx, "/", "sale", DefaultConfig("/", SectionAll))
	assert.True(t, errors.Is(err, ErrInvalidSection))

	_, err = svc.Upsert(ctx, "/nowhere", SectionAll, DefaultConfig("/", SectionAll))
	assert.True(t, errors.Is(err, theme.ErrUnknownPage))

	tests := []struct {
		name   string
		modify func(*CarouselConfig)
	}{
		{"zero cards per view", func(c *CarouselConfig) { c.CardsPerView = 0 }},
		{"too many cards per row", func(c *CarouselConfig) { c.ViewAllCardsPerRow = 12 }},
		{"negative width", func(c *CarouselConfig) { c.CardWidth = -1 }},
		{"autoplay too fast", func(c *CarouselConfig) { c.Autoplay = true; c.AutoplayInterval = 200 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("/", SectionAll)
			tt.modify(cfg)
			_, err := svc.Upsert(ctx, "/", SectionAll, cfg)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}

	_, err = svc.Upsert(ctx, "/", SectionAll, nil)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestSection_Valid(t *testing.T) {
	for _, s := range Sections {
		assert.True(t, s.Valid())
	}
	assert.False(t, Section("featured").Valid())
}
