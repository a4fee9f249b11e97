// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id UUID PRIMARY KEY, email TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE, expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",

		"CREATE TABLE IF NOT EXISTS user_settings (user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE, theme TEXT NOT NULL, units TEXT NOT NULL CHECK(units IN ('lbs','kg')), default_rest_timer INTEGER NOT NULL, coach_type TEXT NOT NULL, macro_target_calories INTEGER, macro_target_protein INTEGER, macro_target_carbs INTEGER, macro_target_fat INTEGER, updated_at TIMESTAMPTZ NOT NULL);",

		"CREATE TABLE IF NOT EXISTS workouts (id UUID PRIMARY KEY, user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE, workout_date DATE NOT NULL, started_at TIMESTAMPTZ NOT NULL, completed_at TIMESTAMPTZ, created_at TIMESTAMPTZ NOT NULL, deleted_at TIMESTAMPTZ);",
		"CREATE INDEX IF NOT EXISTS idx_workouts_user_date ON workouts(user_id, workout_date);",
		"CREATE TABLE IF NOT EXISTS sets (id UUID PRIMARY KEY, workout_id UUID NOT NULL REFERENCES workouts(id) ON DELETE CASCADE, exercise_name_snapshot TEXT NOT NULL, weight DOUBLE PRECISION, reps INTEGER, is_completed BOOLEAN NOT NULL DEFAULT FALSE, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sets_workout_id ON sets(workout_id);",

		"CREATE TABLE IF NOT EXISTS meals (id UUID PRIMARY KEY, user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE, meal_date DATE NOT NULL, created_at TIMESTAMPTZ NOT NULL, deleted_at TIMESTAMPTZ);",
		"CREATE INDEX IF NOT EXISTS idx_meals_user_date ON meals(user_id, meal_date);",
		"CREATE TABLE IF NOT EXISTS meal_items (id UUID PRIMARY KEY, meal_id UUID NOT NULL REFERENCES meals(id) ON DELETE CASCADE, food_name_snapshot TEXT NOT NULL, calories_snapshot INTEGER NOT NULL, protein_snapshot INTEGER NOT NULL, carbs_snapshot INTEGER NOT NULL, fat_snapshot INTEGER NOT NULL, servings DOUBLE PRECISION NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_meal_items_meal_id ON meal_items(meal_id);",

		"CREATE TABLE IF NOT EXISTS body_measurements (id UUID PRIMARY KEY, user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE, measurement_date DATE NOT NULL, weight DOUBLE PRECISION, created_at TIMESTAMPTZ NOT NULL, UNIQUE(user_id, measurement_date));",

		"CREATE TABLE IF NOT EXISTS supplements (id UUID PRIMARY KEY, user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE, name TEXT NOT NULL, dosage TEXT, is_active BOOLEAN NOT NULL DEFAULT TRUE, created_at TIMESTAMPTZ NOT NULL, UNIQUE(user_id, name));",
		"CREATE TABLE IF NOT EXISTS supplement_logs (id UUID PRIMARY KEY, user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE, supplement_id UUID NOT NULL REFERENCES supplements(id) ON DELETE CASCADE, log_date DATE NOT NULL, taken BOOLEAN NOT NULL DEFAULT TRUE, created_at TIMESTAMPTZ NOT NULL, UNIQUE(supplement_id, log_date));",
		"CREATE INDEX IF NOT EXISTS idx_supplement_logs_user_date ON supplement_logs(user_id, log_date);",

		"CREATE TABLE IF NOT EXISTS coach_insights (id UUID PRIMARY KEY, user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE, coach_type TEXT NOT NULL, insight TEXT NOT NULL, insight_date DATE NOT NULL, created_at TIMESTAMPTZ NOT NULL, UNIQUE(user_id, insight_date));",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
