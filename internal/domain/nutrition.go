package domain

import (
	"context"

	"github.com/google/uuid"
)

// DayNutrition is one day's macro totals summed over all logged meal items,
// where each item contributes its snapshot-at-logging macros multiplied by
// its serving count.
type DayNutrition struct {
	Day      string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// NutritionRepository is the read-only port over the meal log. DailyTotals
// returns one entry per day that has at least one non-deleted meal in the
// inclusive window, ordered by day.
type NutritionRepository interface {
	DailyTotals(ctx context.Context, userID uuid.UUID, fromDay, toDay string) ([]DayNutrition, error)
}
