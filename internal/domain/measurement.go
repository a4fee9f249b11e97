package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BodyMeasurement is a dated body-weight reading. Rows without a weight
// value are filtered out by the repository.
type BodyMeasurement struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Day       string
	Weight    float64
	CreatedAt time.Time
}

// MeasurementRepository is the read-only port over body measurements.
// Both queries return (nil, nil) when no matching reading exists.
type MeasurementRepository interface {
	LatestWeight(ctx context.Context, userID uuid.UUID) (*BodyMeasurement, error)
	LatestWeightOnOrBefore(ctx context.Context, userID uuid.UUID, day string) (*BodyMeasurement, error)
}
