package app

import (
	"context"
	"errors"
	"fmt"

	"healthapp/internal/domain"

	"github.com/google/uuid"
)

// ErrInvalidSettings indicates a settings update that failed validation.
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsService encapsulates user preference use cases.
type SettingsService struct {
	repo domain.SettingsRepository
}

// NewSettingsService creates a SettingsService backed by the given repository.
func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// DefaultSettings returns the settings applied to a user who has never
// stored any.
func DefaultSettings(userID uuid.UUID) *domain.UserSettings {
	return &domain.UserSettings{
		UserID:           userID,
		Theme:            "dark",
		Units:            domain.UnitsPounds,
		DefaultRestTimer: 90,
		CoachType:        domain.DefaultCoachType,
	}
}

// Get returns the user's settings, falling back to defaults when none are
// stored.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return DefaultSettings(userID), nil
	}
	return settings, nil
}

// SettingsUpdate is a partial update; nil fields are left unchanged.
type SettingsUpdate struct {
	Theme            *string `json:"theme"`
	Units            *string `json:"units"`
	DefaultRestTimer *int    `json:"defaultRestTimer"`
	CoachType        *string `json:"coachType"`

	MacroTargetCalories *int `json:"macroTargetCalories"`
	MacroTargetProtein  *int `json:"macroTargetProtein"`
	MacroTargetCarbs    *int `json:"macroTargetCarbs"`
	MacroTargetFat      *int `json:"macroTargetFat"`
}

// Update validates and applies a partial settings update, returning the
// stored result.
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, upd SettingsUpdate) (*domain.UserSettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Theme != nil {
		if *upd.Theme != "dark" && *upd.Theme != "light" {
			return nil, fmt.Errorf("%w: theme must be \"dark\" or \"light\"", ErrInvalidSettings)
		}
		settings.Theme = *upd.Theme
	}
	if upd.Units != nil {
		if *upd.Units != domain.UnitsPounds && *upd.Units != domain.UnitsKilograms {
			return nil, fmt.Errorf("%w: units must be \"lbs\" or \"kg\"", ErrInvalidSettings)
		}
		settings.Units = *upd.Units
	}
	if upd.DefaultRestTimer != nil {
		if *upd.DefaultRestTimer <= 0 {
			return nil, fmt.Errorf("%w: defaultRestTimer must be > 0", ErrInvalidSettings)
		}
		settings.DefaultRestTimer = *upd.DefaultRestTimer
	}
	if upd.CoachType != nil {
		if !domain.KnownCoach(*upd.CoachType) {
			return nil, fmt.Errorf("%w: unknown coach type", ErrInvalidSettings)
		}
		settings.CoachType = *upd.CoachType
	}
	for _, t := range []struct {
		in  *int
		out **int
	}{
		{upd.MacroTargetCalories, &settings.MacroTargetCalories},
		{upd.MacroTargetProtein, &settings.MacroTargetProtein},
		{upd.MacroTargetCarbs, &settings.MacroTargetCarbs},
		{upd.MacroTargetFat, &settings.MacroTargetFat},
	} {
		if t.in == nil {
			continue
		}
		if *t.in < 0 {
			return nil, fmt.Errorf("%w: macro targets must be >= 0", ErrInvalidSettings)
		}
		v := *t.in
		*t.out = &v
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
