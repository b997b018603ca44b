package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/emmanuelcandido/coursecast/internal/domain"
	"github.com/emmanuelcandido/coursecast/internal/logger"
)

type implStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// Open creates the database file if needed, migrates the schema and
// returns a ready Store.
func Open(path string, log logger.Logger) (Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Course{}, &domain.Operation{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &implStore{db: db, logger: log}, nil
}

func (s *implStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
