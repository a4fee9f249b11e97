package domain

import (
	"context"

	"github.com/google/uuid"
)

// Supplement is a user-defined supplement (e.g. Creatine, Vitamin D3).
type Supplement struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Dosage string
	Active bool
}

// SupplementRepository is the read-only port over supplements and their
// daily intake logs. TakenOn reports which supplements have a taken log for
// the given day; CountTaken counts taken logs in the inclusive day window.
type SupplementRepository interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]Supplement, error)
	TakenOn(ctx context.Context, userID uuid.UUID, day string) (map[uuid.UUID]bool, error)
	CountTaken(ctx context.Context, userID uuid.UUID, fromDay, toDay string) (int, error)
}
