package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"solar_telemetry"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestAppend_FillsDefaults(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRefreshSQLite(db)

	// generated id and timestamp are unknown; trigger is normalized
	mock.ExpectExec(regexp.QuoteMeta(insertRefreshSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(),
			"TIMER", "voltage", 12, 2, 1, int64(7),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), solar_telemetry.RefreshEvent{
		// EventID empty -> repo generates
		// OccurredAt zero -> repo sets UTC now
		Trigger:      "  timer ",
		Policy:       "voltage",
		Records:      12,
		NullValues:   2,
		UnknownDates: 1,
		DurationMS:   7,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRefreshSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertRefreshSQL)).
		WillReturnError(sql.ErrConnDone)

	if err := repo.Append(ctx(t), solar_telemetry.RefreshEvent{Trigger: "PUSH", Policy: "power"}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestList_NoBounds(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRefreshSQLite(db)

	occurred := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "source", "policy", "records", "null_values", "unknown_dates", "duration_ms"}).
		AddRow("ev-1", "2025-08-01 10:00:00", "TIMER", "voltage", 10, 0, 0, int64(5)).
		AddRow("ev-2", "2025-08-01 10:01:00", "PUSH", "voltage", 11, 1, 0, int64(6))

	mock.ExpectQuery(regexp.QuoteMeta(selectRefreshSQL + " ORDER BY occurred_at ASC")).
		WillReturnRows(rows)

	events, err := repo.List(ctx(t), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EventID != "ev-1" || events[0].Trigger != "TIMER" {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if !events[1].OccurredAt.Equal(occurred.Add(time.Minute)) {
		t.Errorf("unexpected second event time %v", events[1].OccurredAt)
	}
}

func TestList_BothBounds(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRefreshSQLite(db)

	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectRefreshSQL+" WHERE occurred_at >= ? AND occurred_at <= ? ORDER BY occurred_at ASC")).
		WithArgs(from.Format(sqliteTimestampLayout), to.Format(sqliteTimestampLayout)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "occurred_at", "source", "policy", "records", "null_values", "unknown_dates", "duration_ms"}))

	events, err := repo.List(ctx(t), from, to)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
