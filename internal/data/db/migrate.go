package db

import (
	"fmt"

	"gorm.io/gorm"

	domain "github.com/yungbote/neurobridge-profiling/internal/domain/profiling"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.ProfilingSession{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func (s *DatabaseService) AutoMigrateAll() error { return AutoMigrateAll(s.db) }
