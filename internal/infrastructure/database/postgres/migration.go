// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/domain/carousel"
	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
	"github.com/your-org/collectibles-storefront/internal/domain/theme"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger logrus.FieldLogger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("🔄 Running database auto-migrations...")

	models := []interface{}{
		&catalog.Product{},
		&theme.ThemeConfig{},
		&theme.PageThemeAssignment{},
		&carousel.CarouselConfig{},
	}

	for _, model := range models {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "failed to migrate model %T", model)
		}
	}

	m.logger.Info("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	m.logger.Info("🔄 Creating additional database indexes...")

	indexes := []string{
		// Catalog listing is per category, newest first
		"CREATE INDEX IF NOT EXISTS idx_products_category_created ON products(category, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_type ON products(type)",
		"CREATE INDEX IF NOT EXISTS idx_products_collection ON products(collection)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",

		// At most one active theme
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_themes_single_active ON themes(is_active) WHERE is_active",
		"CREATE INDEX IF NOT EXISTS idx_themes_priority ON themes(priority DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("⚠️ Failed to create index")
			failCount++
		} else {
			successCount++
		}
	}

	m.logger.Infof("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// EnsureDefaultTheme stores the default theme if it is missing. It runs in
// every environment.
func (m *Migration) EnsureDefaultTheme() error {
	var count int64
	if err := m.db.Model(&theme.ThemeConfig{}).Where("id = ?", theme.DefaultThemeID).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to look up default theme")
	}
	if count > 0 {
		return nil
	}

	def := theme.DefaultTheme()

	var active int64
	if err := m.db.Model(&theme.ThemeConfig{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return errors.Wrap(err, "failed to count active themes")
	}
	def.IsActive = active == 0

	if err := m.db.Create(def).Error; err != nil {
		return errors.Wrap(err, "failed to create default theme")
	}
	m.logger.Info("🎨 Created default theme")
	return nil
}

// SeedInitialData inserts development data into the database
func (m *Migration) SeedInitialData() error {
	m.logger.Info("🌱 Seeding initial data...")

	if err := m.seedThemes(); err != nil {
		return errors.Wrap(err, "failed to seed themes")
	}

	if err := m.seedProducts(); err != nil {
		return errors.Wrap(err, "failed to seed products")
	}

	m.logger.Info("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedThemes() error {
	for _, t := range theme.SeasonalThemes() {
		var count int64
		m.db.Model(&theme.ThemeConfig{}).Where("id = ?", t.ID).Count(&count)
		if count > 0 {
			m.logger.Debugf("⏭️ Theme already exists: %s", t.Name)
			continue
		}
		if err := m.db.Create(t).Error; err != nil {
			return err
		}
		m.logger.Infof("✅ Created theme: %s", t.Name)
	}
	return nil
}

func cents(v int64) *int64 {
	return &v
}

func (m *Migration) seedProducts() error {
	products := []catalog.Product{
		{ID: "1001", Name: "Scarlet & Violet Booster Box", Price: 14999, Stock: 12, Category: "pokemontcg", Type: "Booster Box", Collection: "Scarlet & Violet", Rarity: "Sealed", Tags: "sealed,booster"},
		{ID: "1002", Name: "Charizard ex Special Collection", Price: 4999, SalePrice: cents(3999), OriginalPrice: cents(4999), OnSale: true, Stock: 5, Category: "pokemontcg", Type: "Collection Box", Collection: "Obsidian Flames", Rarity: "Special", Tags: "charizard,collection"},
		{ID: "1003", Name: "Pikachu Illustration Rare", Price: 2499, Stock: 1, Category: "pokemontcg", Type: "Single", Collection: "Pokémon Café", Rarity: "Illustration Rare", Tags: "pikachu,single"},
		{ID: "2001", Name: "Catan", Price: 4499, Stock: 8, Category: "boardgames", Type: "Strategy", Collection: "Catan Studio", Tags: "family,strategy"},
		{ID: "2002", Name: "Ticket to Ride: Europe", Price: 5499, Stock: 4, Category: "boardgames", Type: "Family", Collection: "Days of Wonder", Tags: "family,trains"},
		{ID: "3001", Name: "Matte Card Sleeves (100)", Price: 899, Stock: 50, Category: "accessories", Type: "Sleeves", Collection: "Dragon Shield", Tags: "sleeves,protection"},
		{ID: "3002", Name: "Nine-Pocket Binder", Price: 2999, Stock: 0, Category: "accessories", Type: "Binder", Collection: "Ultra Pro", Tags: "binder,storage"},
		{ID: "4001", Name: "'71 Datsun 510 Super Treasure Hunt", Price: 3999, Stock: 1, Category: "hotwheels", Type: "Treasure Hunt", Collection: "Mainline", Rarity: "Super Treasure Hunt", Tags: "sth,datsun"},
		{ID: "4002", Name: "Nissan Skyline GT-R (R34)", Price: 699, Stock: 20, Category: "hotwheels", Type: "Car Culture", Collection: "Japan Historics", Tags: "nissan,jdm"},
	}

	for _, p := range products {
		var count int64
		m.db.Model(&catalog.Product{}).Where("id = ?", p.ID).Count(&count)
		if count > 0 {
			m.logger.Debugf("⏭️ Product already exists: %s", p.Name)
			continue
		}
		if err := m.db.Create(&p).Error; err != nil {
			return err
		}
		m.logger.Infof("✅ Created product: %s", p.Name)
	}
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	m.logger.Warn("⚠️ WARNING: Dropping all database tables...")

	tables := []string{
		"carousel_configs",
		"page_theme_assignments",
		"themes",
		"products",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			m.logger.WithError(err).Warnf("⚠️ Failed to drop table %s", table)
		} else {
			m.logger.Infof("🗑️ Dropped table: %s", table)
		}
	}

	return nil
}

// GetTableInfo logs the record count of every table
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count
		m.logger.WithField("records", count).Infof("📊 %s", table)
	}

	m.logger.WithFields(logrus.Fields{
		"tables":  len(tables),
		"records": totalRecords,
	}).Info("📈 Database summary")
	return nil
}
