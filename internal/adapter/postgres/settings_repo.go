package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"healthapp/internal/domain"

	"github.com/google/uuid"
)

// Get returns the user's stored settings, or (nil, nil) when none exist.
func (d *DB) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	var s domain.UserSettings
	var cal, pro, carb, fat sql.NullInt64
	err := d.sql.QueryRowContext(ctx,
		`SELECT user_id, theme, units, default_rest_timer, coach_type,
		        macro_target_calories, macro_target_protein, macro_target_carbs, macro_target_fat
		 FROM user_settings WHERE user_id = $1`,
		userID,
	).Scan(&s.UserID, &s.Theme, &s.Units, &s.DefaultRestTimer, &s.CoachType, &cal, &pro, &carb, &fat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.MacroTargetCalories = nullableInt(cal)
	s.MacroTargetProtein = nullableInt(pro)
	s.MacroTargetCarbs = nullableInt(carb)
	s.MacroTargetFat = nullableInt(fat)
	return &s, nil
}

// Upsert stores the user's settings, inserting or replacing the single row.
func (d *DB) Upsert(ctx context.Context, s *domain.UserSettings) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO user_settings (user_id, theme, units, default_rest_timer, coach_type,
		        macro_target_calories, macro_target_protein, macro_target_carbs, macro_target_fat, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (user_id) DO UPDATE SET
		        theme = EXCLUDED.theme,
		        units = EXCLUDED.units,
		        default_rest_timer = EXCLUDED.default_rest_timer,
		        coach_type = EXCLUDED.coach_type,
		        macro_target_calories = EXCLUDED.macro_target_calories,
		        macro_target_protein = EXCLUDED.macro_target_protein,
		        macro_target_carbs = EXCLUDED.macro_target_carbs,
		        macro_target_fat = EXCLUDED.macro_target_fat,
		        updated_at = EXCLUDED.updated_at`,
		s.UserID, s.Theme, s.Units, s.DefaultRestTimer, s.CoachType,
		s.MacroTargetCalories, s.MacroTargetProtein, s.MacroTargetCarbs, s.MacroTargetFat,
		time.Now().UTC(),
	)
	return err
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
