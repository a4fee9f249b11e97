package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CoachInsight is the cached daily coaching insight. At most one row exists
// per (UserID, InsightDate); CoachType records which persona produced it.
type CoachInsight struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CoachType   string
	Insight     string
	InsightDate string
	CreatedAt   time.Time
}

// InsightRepository is the port for the daily insight cache. FindForDay
// returns (nil, nil) on a cache miss. Replace deletes any existing row for
// (userID, day) regardless of its coach type, then inserts the new row, so
// a persona change looks like a fresh miss-and-regenerate.
type InsightRepository interface {
	FindForDay(ctx context.Context, userID uuid.UUID, day string) (*CoachInsight, error)
	Replace(ctx context.Context, userID uuid.UUID, day, coachType, insight string) (*CoachInsight, error)
}

// InsightGenerator is the port to the external text-generation service. It
// makes exactly one outbound call per invocation and classifies failures
// into ErrCoachingUnconfigured, ErrQuotaExceeded or *UpstreamError.
type InsightGenerator interface {
	Generate(ctx context.Context, systemPrompt, userData string) (string, error)
}

var (
	// ErrCoachingUnconfigured indicates no generation API key is configured.
	ErrCoachingUnconfigured = errors.New("coaching is not configured")
	// ErrQuotaExceeded indicates the generation service reported quota or
	// rate-limit exhaustion.
	ErrQuotaExceeded = errors.New("coaching generation quota exceeded")
)

// UpstreamError is any other generation failure, carrying the upstream
// message for diagnostics.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return "coaching generation failed: " + e.Message
}
