package service

import (
	"context"
	"database/sql"

	"github.com/ndewijer/import-cost-engine/internal/database"
)

// Pinger is implemented by optional backing services such as the Redis rate store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemService handles system-related operations
type SystemService struct {
	db    *sql.DB
	cache Pinger
}

// NewSystemService creates a new SystemService. cache may be nil.
func NewSystemService(db *sql.DB, cache Pinger) *SystemService {
	return &SystemService{
		db:    db,
		cache: cache,
	}
}

// CheckHealth checks the health of the database
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// HasCache reports whether an external rate cache is configured.
func (s *SystemService) HasCache() bool {
	return s.cache != nil
}

// CheckCache pings the external rate cache, if one is configured.
func (s *SystemService) CheckCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Ping(ctx)
}

// SchemaVersion returns the applied migration version.
func (s *SystemService) SchemaVersion() (int64, error) {
	return database.Version(s.db)
}
