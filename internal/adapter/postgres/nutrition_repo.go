package postgres

import (
	"context"
	"time"

	"healthapp/internal/domain"

	"github.com/google/uuid"
)

// DailyTotals returns per-day macro sums over non-deleted meals in the
// inclusive local-day window. Each meal item contributes its snapshot
// macros multiplied by its serving count.
func (d *DB) DailyTotals(ctx context.Context, userID uuid.UUID, fromDay, toDay string) ([]domain.DayNutrition, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT m.meal_date,
		        COALESCE(SUM(mi.calories_snapshot * mi.servings), 0),
		        COALESCE(SUM(mi.protein_snapshot * mi.servings), 0),
		        COALESCE(SUM(mi.carbs_snapshot * mi.servings), 0),
		        COALESCE(SUM(mi.fat_snapshot * mi.servings), 0)
		 FROM meals m
		 JOIN meal_items mi ON mi.meal_id = m.id
		 WHERE m.user_id = $1 AND m.deleted_at IS NULL
		   AND m.meal_date >= $2 AND m.meal_date <= $3
		 GROUP BY m.meal_date
		 ORDER BY m.meal_date`,
		userID, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DayNutrition
	for rows.Next() {
		var n domain.DayNutrition
		var day time.Time
		if err := rows.Scan(&day, &n.Calories, &n.Protein, &n.Carbs, &n.Fat); err != nil {
			return nil, err
		}
		n.Day = day.Format("2006-01-02")
		out = append(out, n)
	}
	return out, rows.Err()
}
