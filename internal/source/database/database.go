// Package database stores and loads recordings through GORM, backed by
// a SQLite file or a Postgres server. Samples are persisted one row per
// snapshot with the player coordinates as a JSON column.
package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manager handles the database connection shared by loaders and writers.
type Manager struct {
	DB      *gorm.DB
	IsValid bool
	Logger  zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{Logger: log}
}

// Connect opens the selected backend and migrates the recording schema.
// kind is "sqlite" or "postgres"; path is the SQLite file (ignored for
// Postgres, whose settings come from the db.* config keys).
func (m *Manager) Connect(kind, path string) error {
	var err error

	switch kind {
	case "sqlite":
		m.DB, err = m.getSqliteDB(path)
	case "postgres":
		m.DB, err = m.getPostgresDB()
	default:
		return fmt.Errorf("unknown database kind: %s", kind)
	}
	if err != nil {
		return fmt.Errorf("opening %s database: %w", kind, err)
	}

	sqlDB, err := m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to validate connection: %w", err)
	}

	if err := m.DB.AutoMigrate(&Recording{}, &SampleRow{}); err != nil {
		return fmt.Errorf("migrating recording schema: %w", err)
	}

	m.IsValid = true
	m.Logger.Info().Str("kind", kind).Msg("Connected to database")
	return nil
}

func (m *Manager) getPostgresDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("db.host"),
		viper.GetString("db.port"),
		viper.GetString("db.username"),
		viper.GetString("db.password"),
		viper.GetString("db.database"),
	)

	m.Logger.Debug().Msgf("Connecting to Postgres DB at '%s'", dsn)

	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        10000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
}

func (m *Manager) getSqliteDB(path string) (*gorm.DB, error) {
	if path == "" {
		path = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        2000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	m.Logger.Info().Str("path", path).Msg("Using SQLite DB")

	return db, nil
}
