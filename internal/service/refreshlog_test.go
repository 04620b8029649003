package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"solar_telemetry"
)

func TestRefreshLog_InvalidRange(t *testing.T) {
	t.Parallel()

	svc := NewRefreshLogService(&fakeRefreshLogRepo{})
	_, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange, got %v", err)
	}
}

func TestRefreshLog_ZeroBoundsMeanUnbounded(t *testing.T) {
	t.Parallel()

	repo := &fakeRefreshLogRepo{events: []solar_telemetry.RefreshEvent{
		{EventID: "ev-1", OccurredAt: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)},
		{EventID: "ev-2", OccurredAt: time.Date(2025, 8, 3, 10, 0, 0, 0, time.UTC)},
	}}
	svc := NewRefreshLogService(repo)

	events, err := svc.List(context.Background(), LogFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events, got %d", len(events))
	}
}

func TestRefreshLog_FilterBounds(t *testing.T) {
	t.Parallel()

	repo := &fakeRefreshLogRepo{events: []solar_telemetry.RefreshEvent{
		{EventID: "ev-1", OccurredAt: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)},
		{EventID: "ev-2", OccurredAt: time.Date(2025, 8, 3, 10, 0, 0, 0, time.UTC)},
	}}
	svc := NewRefreshLogService(repo)

	events, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 || events[0].EventID != "ev-2" {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestRefreshLog_RepoErrorPropagates(t *testing.T) {
	t.Parallel()

	svc := NewRefreshLogService(&fakeRefreshLogRepo{listErr: errors.New("db down")})
	if _, err := svc.List(context.Background(), LogFilter{}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
