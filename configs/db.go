package configs

import (
	"fmt"

	"eatmove/entity"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB opens the database. Postgres runs the versioned SQL migrations
// first; the sqlite dev/test path auto-migrates from the entities instead.
func ConnectionDB(cfg *Config) error {
	switch cfg.DBDriver {
	case "postgres":
		if err := runMigrations(cfg); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		database, err := gorm.Open(postgres.Open(cfg.DBSource), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		db = database
	default:
		database, err := gorm.Open(sqlite.Open(cfg.DBSource), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		db = database
		if err := AutoMigrate(db); err != nil {
			return err
		}
	}
	logrus.WithField("driver", cfg.DBDriver).Info("database connected")
	return nil
}

func runMigrations(cfg *Config) error {
	m, err := migrate.New("file://"+cfg.MigrationsDir, cfg.DBSource)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&entity.Member{}, &entity.Courier{}, &entity.Restaurant{},
		&entity.MenuItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Rating{},
		&entity.RecentView{},
	)
}
