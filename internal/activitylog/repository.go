// Package activitylog persists raw login and session events and loads
// them back as activity records for the analytics engine. It is the
// read side the aggregations consume; the engine itself never touches
// the database.
package activitylog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantutor/admin-backend/internal/activity"
)

// Repository handles login_events and session_events.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an activity log repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// RecordLogin inserts one login event. Location is pre-resolved
// "City, Country"; no geo lookup happens here.
func (r *Repository) RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time, ip, location, userAgent string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO login_events (user_id, occurred_at, ip_address, location, user_agent)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, at, ip, location, userAgent)
	return err
}

// RecordSession inserts one completed session.
func (r *Repository) RecordSession(ctx context.Context, userID uuid.UUID, startedAt time.Time, durationSeconds int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO session_events (user_id, started_at, duration_seconds) VALUES ($1, $2, $3)`,
		userID, startedAt, durationSeconds)
	return err
}

// GetUserRecord loads one user's full activity record.
func (r *Repository) GetUserRecord(ctx context.Context, userID uuid.UUID) (*activity.UserActivityRecord, error) {
	rec := &activity.UserActivityRecord{UserID: userID}

	rows, err := r.pool.Query(ctx,
		`SELECT occurred_at, ip_address, location, user_agent FROM login_events WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var l activity.LoginEvent
		if err := rows.Scan(&l.Timestamp, &l.IPAddress, &l.Location, &l.UserAgent); err != nil {
			return nil, err
		}
		rec.Logins = append(rec.Logins, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srows, err := r.pool.Query(ctx,
		`SELECT started_at, duration_seconds FROM session_events WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var s activity.SessionEvent
		if err := srows.Scan(&s.StartTime, &s.DurationSeconds); err != nil {
			return nil, err
		}
		rec.Sessions = append(rec.Sessions, s)
	}
	return rec, srows.Err()
}

// ListRecords loads activity records for every user with at least one
// event, for the platform-wide aggregation.
func (r *Repository) ListRecords(ctx context.Context) ([]activity.UserActivityRecord, error) {
	byUser := make(map[uuid.UUID]*activity.UserActivityRecord)
	var order []uuid.UUID
	get := func(id uuid.UUID) *activity.UserActivityRecord {
		if rec, ok := byUser[id]; ok {
			return rec
		}
		rec := &activity.UserActivityRecord{UserID: id}
		byUser[id] = rec
		order = append(order, id)
		return rec
	}

	rows, err := r.pool.Query(ctx,
		`SELECT user_id, occurred_at, ip_address, location, user_agent FROM login_events`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var userID uuid.UUID
		var l activity.LoginEvent
		if err := rows.Scan(&userID, &l.Timestamp, &l.IPAddress, &l.Location, &l.UserAgent); err != nil {
			return nil, err
		}
		rec := get(userID)
		rec.Logins = append(rec.Logins, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srows, err := r.pool.Query(ctx,
		`SELECT user_id, started_at, duration_seconds FROM session_events`)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var userID uuid.UUID
		var s activity.SessionEvent
		if err := srows.Scan(&userID, &s.StartTime, &s.DurationSeconds); err != nil {
			return nil, err
		}
		rec := get(userID)
		rec.Sessions = append(rec.Sessions, s)
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}

	records := make([]activity.UserActivityRecord, 0, len(order))
	for _, id := range order {
		records = append(records, *byUser[id])
	}
	return records, nil
}
