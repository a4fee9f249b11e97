package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Workout is a completed training session. Only completed, non-deleted
// workouts are visible through the repository.
type Workout struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	WorkoutDate string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Set is a single completed exercise set within a workout. ExerciseName is a
// snapshot captured at logging time and does not track later renames. Weight
// and Reps may be nil when they were not recorded.
type Set struct {
	ID           uuid.UUID
	WorkoutID    uuid.UUID
	ExerciseName string
	Weight       *float64
	Reps         *int
}

// WorkoutRepository exposes read-only, soft-delete-aware queries over the
// workout log. Days are local calendar dates formatted as 2006-01-02 and
// both window bounds are inclusive.
type WorkoutRepository interface {
	ListCompletedWorkouts(ctx context.Context, userID uuid.UUID, fromDay, toDay string) ([]Workout, error)
	ListCompletedSets(ctx context.Context, workoutIDs []uuid.UUID) ([]Set, error)
}
