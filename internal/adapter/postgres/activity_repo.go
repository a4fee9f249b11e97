package postgres

import (
	"context"
	"database/sql"
	"time"

	"healthapp/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ListCompletedWorkouts returns completed, non-deleted workouts for a user
// within the inclusive local-day window.
func (d *DB) ListCompletedWorkouts(ctx context.Context, userID uuid.UUID, fromDay, toDay string) ([]domain.Workout, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, workout_date, started_at, completed_at
		 FROM workouts
		 WHERE user_id = $1 AND deleted_at IS NULL AND completed_at IS NOT NULL
		   AND workout_date >= $2 AND workout_date <= $3
		 ORDER BY workout_date, started_at`,
		userID, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Workout
	for rows.Next() {
		var w domain.Workout
		var day time.Time
		var completedAt sql.NullTime
		if err := rows.Scan(&w.ID, &day, &w.StartedAt, &completedAt); err != nil {
			return nil, err
		}
		w.UserID = userID
		w.WorkoutDate = day.Format("2006-01-02")
		if completedAt.Valid {
			t := completedAt.Time
			w.CompletedAt = &t
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ListCompletedSets returns completed sets belonging to the given workouts.
func (d *DB) ListCompletedSets(ctx context.Context, workoutIDs []uuid.UUID) ([]domain.Set, error) {
	if len(workoutIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(workoutIDs))
	for _, id := range workoutIDs {
		ids = append(ids, id.String())
	}

	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, workout_id, exercise_name_snapshot, weight, reps
		 FROM sets
		 WHERE workout_id = ANY($1) AND is_completed
		 ORDER BY created_at`,
		pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Set
	for rows.Next() {
		var s domain.Set
		var weight sql.NullFloat64
		var reps sql.NullInt64
		if err := rows.Scan(&s.ID, &s.WorkoutID, &s.ExerciseName, &weight, &reps); err != nil {
			return nil, err
		}
		if weight.Valid {
			v := weight.Float64
			s.Weight = &v
		}
		if reps.Valid {
			v := int(reps.Int64)
			s.Reps = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
