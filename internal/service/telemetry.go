package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"solar_telemetry"
	"solar_telemetry/internal/charts"
	"solar_telemetry/internal/logger"
	"solar_telemetry/internal/pipeline"
	"solar_telemetry/internal/repository"
)

// TelemetryService runs the pipeline and owns the resulting snapshot.
// rebuildMu serializes whole refresh cycles (timer and push triggers
// must never overlap); snapMu only guards the snapshot pointer swap so
// readers never block behind a rebuild.
type TelemetryService struct {
	rebuildMu sync.Mutex
	snapMu    sync.RWMutex
	snap      *pipeline.Snapshot

	pipe     *pipeline.Pipeline
	registry *charts.Registry
	logRepo  repository.RefreshLogRepo
	log      *logger.Logger
}

func NewTelemetryService(policy pipeline.Policy, registry *charts.Registry, logRepo repository.RefreshLogRepo, log *logger.Logger) *TelemetryService {
	s := &TelemetryService{
		pipe:     pipeline.New(policy),
		registry: registry,
		logRepo:  logRepo,
		log:      log,
	}
	// seed an empty snapshot so accessors are total before the first feed
	s.snap = s.pipe.Refresh(nil)
	return s
}

// Refresh rebuilds all derived state from the given raw snapshot,
// swaps it in, rebuilds the chart registry, and appends an audit entry.
// The pipeline itself cannot fail on malformed data; only the audit
// append can return an error.
func (s *TelemetryService) Refresh(ctx context.Context, trigger string, records map[string]solar_telemetry.RawRecord) error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	start := time.Now()
	snap := s.pipe.Refresh(records)

	s.snapMu.Lock()
	s.snap = snap
	s.snapMu.Unlock()

	if s.registry != nil {
		s.registry.Rebuild(snap)
	}

	if s.log != nil {
		s.log.Infow("pipeline_refreshed",
			"trigger", trigger,
			"records", snap.Records(),
			"null_values", snap.NullValues(),
			"unknown_dates", snap.UnknownDates(),
			"dates", len(snap.DateKeys()),
		)
	}

	if s.logRepo == nil {
		return nil
	}
	err := s.logRepo.Append(ctx, solar_telemetry.RefreshEvent{
		EventID:      uuid.NewString(),
		OccurredAt:   start.UTC(),
		Trigger:      trigger,
		Policy:       snap.Policy().Name,
		Records:      snap.Records(),
		NullValues:   snap.NullValues(),
		UnknownDates: snap.UnknownDates(),
		DurationMS:   time.Since(start).Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("append refresh event: %w", err)
	}
	return nil
}

// Snapshot returns the current derived state. Never nil.
func (s *TelemetryService) Snapshot() *pipeline.Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snap
}
