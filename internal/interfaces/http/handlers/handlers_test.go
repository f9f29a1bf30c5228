package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/your-org/collectibles-storefront/internal/config"
	"github.com/your-org/collectibles-storefront/internal/domain/carousel"
	"github.com/your-org/collectibles-storefront/internal/domain/cart"
	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
	"github.com/your-org/collectibles-storefront/internal/domain/theme"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http/routes"
	"github.com/your-org/collectibles-storefront/internal/pkg/auth"
	"github.com/your-org/collectibles-storefront/internal/pkg/events"
	"github.com/your-org/collectibles-storefront/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "charizard-holo-1st"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type catalogRepo struct {
	products []catalog.Product
}

func (r *catalogRepo) ListByCategory(_ context.Context, category string) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *catalogRepo) GetProduct(_ context.Context, id catalog.ProductID) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.ID.Equal(id) {
			p := p
			return &p, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

type carouselRepo struct {
	mu      sync.Mutex
	configs map[string]carousel.CarouselConfig
}

func (r *carouselRepo) Get(_ context.Context, page string, section carousel.Section) (*carousel.CarouselConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[page+"|"+string(section)]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (r *carouselRepo) Upsert(_ context.Context, cfg *carousel.CarouselConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[cfg.Page+"|"+string(cfg.Section)] = *cfg
	return nil
}

type testEnv struct {
	router *gin.Engine
	cfg    *config.Config
	bus    *events.Bus
	themes *theme.MemoryRepository
	cookie *http.Cookie
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := auth.HashPassword(adminPassword, bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Name: "collectibles-storefront", Environment: "test"},
		JWT: config.JWTConfig{
			Secret:            "handlers-test-secret-that-is-long-enough",
			AccessTokenExpiry: time.Hour,
		},
		Cart: config.CartConfig{
			KeyPrefix:  "cart:session:",
			SessionTTL: time.Hour,
			CookieName: "session_id",
		},
		Theme: config.ThemeConfig{
			PollInterval:   time.Hour,
			AdminPrefix:    "/admin",
			DefaultThemeID: theme.DefaultThemeID,
		},
		Admin: config.AdminConfig{Email: adminEmail, PasswordHash: hash},
	}

	log := logger.Discard()
	bus := events.NewBus(log)

	products := &catalogRepo{products: []catalog.Product{
		{ID: "7", Name: "Charizard Booster", Price: 499, Stock: 2, Category: "pokemontcg", Type: "Booster"},
		{ID: "8", Name: "Pikachu Tin", Price: 1999, Stock: 5, Category: "pokemontcg", Type: "Tin"},
		{ID: "21", Name: "Catan", Price: 4500, Stock: 1, Category: "boardgames", Type: "Strategy"},
	}}
	catalogService := catalog.NewService(products, nil, log)
	cartService := cart.NewService(cart.NewMemoryStore(), catalogService, bus, nil, log)

	themes := append([]*theme.ThemeConfig{theme.DefaultTheme()}, theme.SeasonalThemes()...)
	themeRepo := theme.NewMemoryRepository(themes...)
	resolver := theme.NewResolver(themeRepo, theme.DefaultThemeID, nil, log)
	themeService := theme.NewService(themeRepo, theme.DefaultThemeID, bus, log)

	carouselService := carousel.NewService(&carouselRepo{configs: map[string]carousel.CarouselConfig{}}, log)

	h := &routes.Handlers{
		Auth:       handlers.NewAuthHandler(cfg, log),
		Product:    handlers.NewProductHandler(catalogService, cartService, cfg),
		Cart:       handlers.NewCartHandler(cartService, cfg),
		Theme:      handlers.NewThemeHandler(resolver, bus, theme.WatcherOptions{PollInterval: time.Hour, AdminPrefix: "/admin"}, log),
		Carousel:   handlers.NewCarouselHandler(carouselService),
		AdminTheme: handlers.NewAdminThemeHandler(themeService, log),
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	routes.SetupRoutes(router.Group("/api/v1"), h, cfg)

	return &testEnv{router: router, cfg: cfg, bus: bus, themes: themeRepo}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == e.cfg.Cart.CookieName {
			e.cookie = c
		}
	}
	return w
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/admin/login", gin.H{"email": adminEmail, "password": adminPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	e.token = resp.Data.AccessToken
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

type cartBody struct {
	SessionID string      `json:"session_id"`
	Lines     []cart.Line `json:"lines"`
	Totals    cart.Totals `json:"totals"`
}

func stockOf(products []catalog.Product, id catalog.ProductID) int {
	for _, p := range products {
		if p.ID.Equal(id) {
			return p.Stock
		}
	}
	return -1
}
