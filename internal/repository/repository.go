package repository

import (
	"context"
	"database/sql"
	"time"

	"solar_telemetry"
	"solar_telemetry/internal/repository/db"
)

// RefreshLogRepo is the append-only audit of pipeline rebuilds.
type RefreshLogRepo interface {
	Append(ctx context.Context, e solar_telemetry.RefreshEvent) error
	List(ctx context.Context, from, to time.Time) ([]solar_telemetry.RefreshEvent, error)
}

type Repository struct {
	RefreshLog RefreshLogRepo
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		RefreshLog: NewRefreshSQLite(sqlDB),
	}
}

// InitDB opens the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
