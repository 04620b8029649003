package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"solar_telemetry"
)

type RefreshSQLite struct {
	db *sql.DB
}

func NewRefreshSQLite(db *sql.DB) *RefreshSQLite { return &RefreshSQLite{db: db} }

const (
	insertRefreshSQL = `
		INSERT INTO refresh_events (id, occurred_at, source, policy, records, null_values, unknown_dates, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRefreshSQL = `SELECT id, occurred_at, source, policy, records, null_values, unknown_dates, duration_ms FROM refresh_events`
)

// sqliteTimestampLayout matches SQLite's TIMESTAMP text format.
const sqliteTimestampLayout = "2006-01-02 15:04:05"

// Append inserts one refresh audit entry. Empty EventID and zero
// OccurredAt are filled in here.
func (r *RefreshSQLite) Append(ctx context.Context, e solar_telemetry.RefreshEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertRefreshSQL,
		e.EventID,
		e.OccurredAt.Format(sqliteTimestampLayout),
		strings.ToUpper(strings.TrimSpace(e.Trigger)),
		e.Policy,
		e.Records,
		e.NullValues,
		e.UnknownDates,
		e.DurationMS,
	)
	return err
}

// List returns refresh entries within [from, to] (inclusive, zero means
// unbounded), ordered ascending by time.
func (r *RefreshSQLite) List(ctx context.Context, from, to time.Time) ([]solar_telemetry.RefreshEvent, error) {
	var (
		conds []string
		args  []any
	)

	// occurred_at is stored as text, so bounds compare lexically; the
	// layout is zero-padded which keeps that ordering correct.
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimestampLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimestampLayout))
	}

	q := selectRefreshSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]solar_telemetry.RefreshEvent, 0, 64)
	for rows.Next() {
		var (
			e          solar_telemetry.RefreshEvent
			occurredAt string
		)
		if err := rows.Scan(
			&e.EventID,
			&occurredAt,
			&e.Trigger,
			&e.Policy,
			&e.Records,
			&e.NullValues,
			&e.UnknownDates,
			&e.DurationMS,
		); err != nil {
			return nil, err
		}
		if e.OccurredAt, err = time.ParseInLocation(sqliteTimestampLayout, occurredAt, time.UTC); err != nil {
			return nil, fmt.Errorf("parse occurred_at %q: %w", occurredAt, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
