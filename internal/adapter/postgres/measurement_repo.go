package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"healthapp/internal/domain"

	"github.com/google/uuid"
)

// LatestWeight returns the most recent body-weight reading for a user, or
// (nil, nil) when none exists.
func (d *DB) LatestWeight(ctx context.Context, userID uuid.UUID) (*domain.BodyMeasurement, error) {
	return d.scanMeasurement(d.sql.QueryRowContext(ctx,
		`SELECT id, measurement_date, weight, created_at
		 FROM body_measurements
		 WHERE user_id = $1 AND weight IS NOT NULL
		 ORDER BY measurement_date DESC LIMIT 1`,
		userID), userID)
}

// LatestWeightOnOrBefore returns the most recent reading dated on or before
// the given local day, or (nil, nil) when none exists.
func (d *DB) LatestWeightOnOrBefore(ctx context.Context, userID uuid.UUID, day string) (*domain.BodyMeasurement, error) {
	return d.scanMeasurement(d.sql.QueryRowContext(ctx,
		`SELECT id, measurement_date, weight, created_at
		 FROM body_measurements
		 WHERE user_id = $1 AND weight IS NOT NULL AND measurement_date <= $2
		 ORDER BY measurement_date DESC LIMIT 1`,
		userID, day), userID)
}

func (d *DB) scanMeasurement(row *sql.Row, userID uuid.UUID) (*domain.BodyMeasurement, error) {
	var m domain.BodyMeasurement
	var day time.Time
	err := row.Scan(&m.ID, &day, &m.Weight, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.UserID = userID
	m.Day = day.Format("2006-01-02")
	return &m, nil
}
