// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/your-org/collectibles-storefront/internal/config"
	"github.com/your-org/collectibles-storefront/internal/domain/carousel"
	"github.com/your-org/collectibles-storefront/internal/domain/cart"
	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
	"github.com/your-org/collectibles-storefront/internal/domain/theme"
	"github.com/your-org/collectibles-storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/collectibles-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/collectibles-storefront/internal/infrastructure/messaging/kafka"
	"github.com/your-org/collectibles-storefront/internal/infrastructure/messaging/redisbus"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http/routes"
	"github.com/your-org/collectibles-storefront/internal/pkg/events"
	"github.com/your-org/collectibles-storefront/internal/pkg/logger"
	"github.com/your-org/collectibles-storefront/internal/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg)
	logg.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := postgres.NewConnection(cfg, logg)
	if err != nil {
		logg.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg, logg)
	if err != nil {
		logg.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB(), logg)

	if err := migration.RunAutoMigrations(); err != nil {
		logg.Fatalf("Database migration failed: %v", err)
	}

	if err := migration.CreateIndexes(); err != nil {
		logg.Warnf("Index creation failed: %v", err)
	}

	if err := migration.EnsureDefaultTheme(); err != nil {
		logg.Fatalf("Default theme setup failed: %v", err)
	}

	// Seed initial data in development
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			logg.Warnf("Data seeding failed: %v", err)
		}
		if err := migration.GetTableInfo(); err != nil {
			logg.Warnf("Table info failed: %v", err)
		}
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Change notifications: in-process bus, mirrored across instances over Redis
	bus := events.NewBus(logg)

	bridge := redisbus.NewBridge(redisClient.GetClient(), cfg.Messaging.RedisChannel, logg)
	bus.AddSink(bridge)
	if err := bridge.Run(ctx, bus); err != nil {
		logg.Fatalf("Failed to subscribe to change notifications: %v", err)
	}

	if cfg.KafkaEnabled() {
		publisher, err := kafka.NewPublisher(cfg.Messaging.KafkaBrokers, cfg.Messaging.KafkaTopic, logg)
		if err != nil {
			logg.Fatalf("Failed to connect to Kafka: %v", err)
		}
		defer publisher.Close()
		bus.AddSink(publisher)
	}

	// Domain services
	catalogService := catalog.NewService(
		catalog.NewGormRepository(db.GetDB()),
		catalog.NewRedisSnapshotCache(redisClient.GetClient(), cfg.Catalog.SnapshotTTL),
		logg,
	)

	cartService := cart.NewService(
		cart.NewRedisStore(redisClient.GetClient(), cfg.Cart.KeyPrefix, cfg.Cart.SessionTTL),
		catalogService,
		bus,
		m,
		logg,
	)

	themeRepo := theme.NewGormRepository(db.GetDB())
	themeResolver := theme.NewResolver(themeRepo, cfg.Theme.DefaultThemeID, m, logg)
	themeService := theme.NewService(themeRepo, cfg.Theme.DefaultThemeID, bus, logg)

	carouselService := carousel.NewService(carousel.NewGormRepository(db.GetDB()), logg)

	watcherOpts := theme.WatcherOptions{
		PollInterval: cfg.Theme.PollInterval,
		AdminPrefix:  cfg.Theme.AdminPrefix,
	}

	server := http.NewServer(cfg, http.Options{
		Handlers: &routes.Handlers{
			Auth:       handlers.NewAuthHandler(cfg, logg),
			Product:    handlers.NewProductHandler(catalogService, cartService, cfg),
			Cart:       handlers.NewCartHandler(cartService, cfg),
			Theme:      handlers.NewThemeHandler(themeResolver, bus, watcherOpts, logg),
			Carousel:   handlers.NewCarouselHandler(carouselService),
			AdminTheme: handlers.NewAdminThemeHandler(themeService, logg),
		},
		RedisClient: redisClient.GetClient(),
		Metrics:     m,
		Gatherer:    registry,
		Checks: map[string]http.HealthChecker{
			"database": db,
			"redis":    redisClient,
		},
	}, logg)

	logg.Info("✅ All systems operational!")

	go func() {
		if err := server.Start(); err != nil {
			logg.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	logg.Info("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logg.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logg.Info("✅ Server shutdown completed")
}
