package domain

import (
	"context"

	"github.com/google/uuid"
)

// Unit systems a user can choose for weights.
const (
	UnitsPounds    = "lbs"
	UnitsKilograms = "kg"
)

// UserSettings holds per-user preferences and macro targets. Macro targets
// are nil when the user has not configured them.
type UserSettings struct {
	UserID           uuid.UUID `json:"userId"`
	Theme            string    `json:"theme"`
	Units            string    `json:"units"`
	DefaultRestTimer int       `json:"defaultRestTimer"`
	CoachType        string    `json:"coachType"`

	MacroTargetCalories *int `json:"macroTargetCalories"`
	MacroTargetProtein  *int `json:"macroTargetProtein"`
	MacroTargetCarbs    *int `json:"macroTargetCarbs"`
	MacroTargetFat      *int `json:"macroTargetFat"`
}

// SettingsRepository is the port for user settings persistence.
// Get returns (nil, nil) when the user has no stored settings row.
type SettingsRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*UserSettings, error)
	Upsert(ctx context.Context, settings *UserSettings) error
}
