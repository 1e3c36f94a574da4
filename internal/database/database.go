package database

import (
	"errors"
	"fmt"
	"time"

	"khata/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultMigrationsDir is where the SQL migrations live relative to the working directory.
const DefaultMigrationsDir = "migrations"

// Manager owns the gorm connection and the migration source.
type Manager struct {
	db  *gorm.DB
	url string
}

// NewManager opens the PostgreSQL connection pool.
func NewManager(cfg *Config) (*Manager, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, url: cfg.URL()}, nil
}

// RunMigrations applies pending SQL migrations from dir.
func (m *Manager) RunMigrations(dir string) error {
	mig, err := m.migrator(dir)
	if err != nil {
		return err
	}
	defer closeMigrator(mig)

	logger.Get().Info("Running database migrations...")
	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// RollbackMigrations reverts the given number of migration steps.
func (m *Manager) RollbackMigrations(dir string, steps int) error {
	mig, err := m.migrator(dir)
	if err != nil {
		return err
	}
	defer closeMigrator(mig)

	if err := mig.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback failed: %w", err)
	}
	logger.Get().Infow("Rolled back migrations", "steps", steps)
	return nil
}

// MigrationVersion reports the current schema version.
func (m *Manager) MigrationVersion(dir string) (uint, bool, error) {
	mig, err := m.migrator(dir)
	if err != nil {
		return 0, false, err
	}
	defer closeMigrator(mig)

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (m *Manager) migrator(dir string) (*migrate.Migrate, error) {
	if dir == "" {
		dir = DefaultMigrationsDir
	}
	mig, err := migrate.New("file://"+dir, m.url)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

func closeMigrator(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Get().Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnf("migrate database close error: %v", dbErr)
	}
}
