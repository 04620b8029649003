package service

import (
	"context"
	"errors"
	"time"

	"solar_telemetry"
	"solar_telemetry/internal/repository"
)

type RefreshLogService struct {
	logRepo repository.RefreshLogRepo
}

func NewRefreshLogService(logRepo repository.RefreshLogRepo) *RefreshLogService {
	return &RefreshLogService{logRepo: logRepo}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func (s *RefreshLogService) List(ctx context.Context, f LogFilter) ([]solar_telemetry.RefreshEvent, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	return s.logRepo.List(ctx, from, to)
}
