package service

import (
	"context"
	"time"

	"solar_telemetry"
	"solar_telemetry/internal/feed"
	"solar_telemetry/internal/logger"
)

// CollectorService pulls the full feed snapshot on a fixed interval and
// pushes it through the pipeline. One eager refresh happens on startup,
// then one per tick until the context is canceled.
type CollectorService struct {
	source    feed.Source
	telemetry Telemetry
	log       *logger.Logger
}

func NewCollectorService(source feed.Source, telemetry Telemetry, log *logger.Logger) *CollectorService {
	return &CollectorService{
		source:    source,
		telemetry: telemetry,
		log:       log,
	}
}

// Run ticks at the given interval until ctx is canceled. Fetch and
// refresh failures are logged and retried on the next tick; the loop
// itself never stops early.
func (s *CollectorService) Run(ctx context.Context, tick time.Duration) {
	s.collect(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.collect(ctx)
		}
	}
}

func (s *CollectorService) collect(ctx context.Context) {
	records, err := s.source.Snapshot(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("feed_snapshot_failed", "err", err)
		}
		return
	}
	if err := s.telemetry.Refresh(ctx, solar_telemetry.TriggerTimer, records); err != nil {
		if s.log != nil {
			s.log.Errorw("refresh_failed", "err", err, "records", len(records))
		}
	}
}
