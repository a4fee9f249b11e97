package memory

import (
	"context"
	"testing"
	"time"

	"healthapp/internal/domain"

	"github.com/google/uuid"
)

func TestInsightReplace(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := uuid.New()
	day := "2026-01-15"

	missing, err := db.FindForDay(ctx, userID, day)
	if err != nil {
		t.Fatalf("FindForDay: %v", err)
	}
	if missing != nil {
		t.Errorf("expected miss, got %+v", missing)
	}

	first, err := db.Replace(ctx, userID, day, "arnold", "Lift heavy.")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if first.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	// Replacing for the same day swaps the row instead of stacking a second.
	second, err := db.Replace(ctx, userID, day, "goggins", "Stay hard.")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if second.ID == first.ID {
		t.Error("expected a new row id")
	}

	got, err := db.FindForDay(ctx, userID, day)
	if err != nil {
		t.Fatalf("FindForDay: %v", err)
	}
	if got == nil || got.CoachType != "goggins" || got.Insight != "Stay hard." {
		t.Errorf("got %+v, want the replacement row", got)
	}

	// Other days and other users are unaffected.
	other, _ := db.Replace(ctx, userID, "2026-01-14", "arnold", "Yesterday.")
	if gotOther, _ := db.FindForDay(ctx, userID, "2026-01-14"); gotOther == nil || gotOther.ID != other.ID {
		t.Errorf("other day row = %+v", gotOther)
	}
	if gotToday, _ := db.FindForDay(ctx, userID, day); gotToday == nil || gotToday.ID != second.ID {
		t.Errorf("today row disturbed: %+v", gotToday)
	}
	if stranger, _ := db.FindForDay(ctx, uuid.New(), day); stranger != nil {
		t.Errorf("other user sees %+v", stranger)
	}
}

func TestWorkoutQueries(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := uuid.New()

	start := time.Date(2026, 1, 15, 8, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)

	done := db.AddWorkout(userID, "2026-01-15", start, &end)
	db.AddWorkout(userID, "2026-01-14", start.AddDate(0, 0, -1), nil)
	db.AddWorkout(userID, "2026-01-01", start.AddDate(0, 0, -14), &end)
	db.AddWorkout(uuid.New(), "2026-01-15", start, &end)

	// Only the completed, in-window workout of this user comes back.

	workouts, err := db.ListCompletedWorkouts(ctx, userID, "2026-01-09", "2026-01-15")
	if err != nil {
		t.Fatalf("ListCompletedWorkouts: %v", err)
	}
	if len(workouts) != 1 || workouts[0].ID != done {
		t.Fatalf("workouts = %+v, want only the completed in-window one", workouts)
	}

	w := 100.0
	r := 5
	db.AddSet(done, "Squat", &w, &r, true)
	db.AddSet(done, "Squat", &w, &r, false)

	sets, err := db.ListCompletedSets(ctx, []uuid.UUID{done})
	if err != nil {
		t.Fatalf("ListCompletedSets: %v", err)
	}
	if len(sets) != 1 {
		t.Errorf("sets = %d, want 1 (incomplete excluded)", len(sets))
	}
}

func TestNutritionDailyTotals(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := uuid.New()

	// Two entries on the same day sum together.
	db.AddNutritionDay(userID, "2026-01-15", 500, 30, 50, 15)
	db.AddNutritionDay(userID, "2026-01-15", 300, 20, 30, 10)
	db.AddNutritionDay(userID, "2026-01-14", 700, 35, 70, 21)
	db.AddNutritionDay(userID, "2026-01-01", 9999, 0, 0, 0) // out of window

	days, err := db.DailyTotals(ctx, userID, "2026-01-09", "2026-01-15")
	if err != nil {
		t.Fatalf("DailyTotals: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("days = %d, want 2", len(days))
	}
	if days[0].Day != "2026-01-14" || days[1].Day != "2026-01-15" {
		t.Errorf("days out of order: %+v", days)
	}
	if days[1].Calories != 800 || days[1].Protein != 50 {
		t.Errorf("same-day entries not summed: %+v", days[1])
	}
}

func TestMeasurementQueries(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := uuid.New()

	if m, err := db.LatestWeight(ctx, userID); err != nil || m != nil {
		t.Fatalf("empty LatestWeight = %+v, %v", m, err)
	}

	db.AddMeasurement(userID, "2026-01-10", 188)
	db.AddMeasurement(userID, "2026-01-15", 185)
	db.AddMeasurement(userID, "2025-12-01", 190)

	latest, err := db.LatestWeight(ctx, userID)
	if err != nil {
		t.Fatalf("LatestWeight: %v", err)
	}
	if latest == nil || latest.Weight != 185 {
		t.Errorf("latest = %+v, want 185", latest)
	}

	prior, err := db.LatestWeightOnOrBefore(ctx, userID, "2026-01-12")
	if err != nil {
		t.Fatalf("LatestWeightOnOrBefore: %v", err)
	}
	if prior == nil || prior.Weight != 188 {
		t.Errorf("prior = %+v, want 188", prior)
	}
}

func TestSupplementQueries(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := uuid.New()

	zinc := db.AddSupplement(userID, "Zinc", "25mg", true)
	creatine := db.AddSupplement(userID, "Creatine", "5g", true)
	db.AddSupplement(userID, "Old", "", false)

	active, err := db.ListActive(ctx, userID)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 || active[0].Name != "Creatine" || active[1].Name != "Zinc" {
		t.Errorf("active = %+v, want Creatine then Zinc", active)
	}

	db.LogSupplement(userID, creatine, "2026-01-15", true)
	db.LogSupplement(userID, zinc, "2026-01-15", false)
	db.LogSupplement(userID, zinc, "2026-01-14", true)

	taken, err := db.TakenOn(ctx, userID, "2026-01-15")
	if err != nil {
		t.Fatalf("TakenOn: %v", err)
	}
	if !taken[creatine] || taken[zinc] {
		t.Errorf("taken = %v", taken)
	}

	count, err := db.CountTaken(ctx, userID, "2026-01-09", "2026-01-15")
	if err != nil {
		t.Fatalf("CountTaken: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := uuid.New()

	if s, err := db.Get(ctx, userID); err != nil || s != nil {
		t.Fatalf("empty Get = %+v, %v", s, err)
	}

	in := &domain.UserSettings{
		UserID:           userID,
		Theme:            "light",
		Units:            domain.UnitsKilograms,
		DefaultRestTimer: 120,
		CoachType:        "goggins",
	}
	if err := db.Upsert(ctx, in); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	in.Theme = "dark"

	got, err := db.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Theme != "light" || got.Units != domain.UnitsKilograms || got.CoachType != "goggins" {
		t.Errorf("got %+v", got)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := New()
	repo := NewSessionRepo(db)
	ctx := context.Background()
	userID := uuid.New()

	if err := repo.Create(ctx, userID, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	s, err := repo.GetByToken(ctx, "tok")
	if err != nil || s == nil || s.UserID != userID {
		t.Fatalf("GetByToken = %+v, %v", s, err)
	}

	if err := repo.Create(ctx, userID, "stale", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if s, _ := repo.GetByToken(ctx, "stale"); s != nil {
		t.Error("expired session survived DeleteExpired")
	}
	if s, _ := repo.GetByToken(ctx, "tok"); s == nil {
		t.Error("live session removed by DeleteExpired")
	}

	if err := repo.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s, _ := repo.GetByToken(ctx, "tok"); s != nil {
		t.Error("session survived Delete")
	}
}
