package service

import (
	"context"
	"time"

	"github.com/xuri/excelize/v2"

	"solar_telemetry"
	"solar_telemetry/internal/charts"
	"solar_telemetry/internal/feed"
	"solar_telemetry/internal/pipeline"
	"solar_telemetry/internal/repository"

	"solar_telemetry/internal/logger"
)

// Telemetry owns the pipeline state: Refresh fully replaces the derived
// snapshot; Snapshot returns the current one (never nil).
type Telemetry interface {
	Refresh(ctx context.Context, trigger string, records map[string]solar_telemetry.RawRecord) error
	Snapshot() *pipeline.Snapshot
}

// Export renders the current snapshot for download; filenames carry the
// policy prefix and today's date.
type Export interface {
	CSV(snap *pipeline.Snapshot) ([]byte, string)
	Workbook(snap *pipeline.Snapshot) (*excelize.File, string, error)
}

// RefreshLog exposes the rebuild audit with time-range filtering.
type RefreshLog interface {
	List(ctx context.Context, f LogFilter) ([]solar_telemetry.RefreshEvent, error)
}

// Collector runs the background loop that pulls feed snapshots and
// triggers refreshes. Stop via context cancellation for graceful
// shutdown.
type Collector interface {
	Run(ctx context.Context, tick time.Duration)
}

// LogFilter bounds the refresh log query; zero times mean unbounded.
type LogFilter struct {
	From time.Time
	To   time.Time
}

type Service struct {
	Telemetry
	Export
	RefreshLog
	Collector
}

func NewService(repos *repository.Repository, source feed.Source, policy pipeline.Policy, registry *charts.Registry, log *logger.Logger) *Service {
	telemetry := NewTelemetryService(policy, registry, repos.RefreshLog, log)
	return &Service{
		Telemetry:  telemetry,
		Export:     NewExportService(),
		RefreshLog: NewRefreshLogService(repos.RefreshLog),
		Collector:  NewCollectorService(source, telemetry, log),
	}
}
