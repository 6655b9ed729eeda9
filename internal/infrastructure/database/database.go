package database

import (
	"fmt"

	"research-directory/config"
	"research-directory/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the configured database and ensures the schema exists.
// The sqlite driver is the default single-file store; postgres is available
// for deployments that already run one.
func NewConnection(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port,
		)
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		// Foreign key enforcement is off by default in sqlite.
		dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)", cfg.Path)
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logrus.Infof("Successfully connected to %s database", driverName(cfg.Driver))

	return db, nil
}

// Migrate creates the researcher and profile tables when absent. Safe to run
// on every startup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Researcher{}, &entity.ResearchProfile{})
}

func driverName(driver string) string {
	if driver == "" {
		return "sqlite"
	}
	return driver
}
