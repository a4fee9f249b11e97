package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"healthapp/internal/adapter/memory"
	"healthapp/internal/app"
	"healthapp/internal/domain"

	"github.com/google/uuid"
)

type stubGenerator struct {
	calls int
	fn    func(systemPrompt, userData string) (string, error)
}

func (g *stubGenerator) Generate(ctx context.Context, systemPrompt, userData string) (string, error) {
	g.calls++
	if g.fn != nil {
		return g.fn(systemPrompt, userData)
	}
	return "Eat more protein.", nil
}

func newInsightFixture(gen *stubGenerator) (*app.InsightService, *memory.DB, uuid.UUID) {
	db := memory.New()
	settings := app.NewSettingsService(db)
	digest := app.NewDigestService(db, db, db, db)
	return app.NewInsightService(settings, db, digest, gen), db, uuid.New()
}

func localToday() string {
	return time.Now().In(time.Local).Format("2006-01-02")
}

func TestGetDailyInsight_GeneratesAndCaches(t *testing.T) {
	gen := &stubGenerator{}
	svc, db, userID := newInsightFixture(gen)

	got, err := svc.GetDailyInsight(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetDailyInsight: %v", err)
	}
	if got.Insight != "Eat more protein." {
		t.Errorf("insight = %q", got.Insight)
	}
	if got.CoachType != "arnold" || got.CoachName != "Arnold Schwarzenegger" {
		t.Errorf("coach = %s/%s, want arnold", got.CoachType, got.CoachName)
	}
	if got.GeneratedAt.IsZero() {
		t.Error("GeneratedAt is zero")
	}

	cached, err := db.FindForDay(context.Background(), userID, localToday())
	if err != nil || cached == nil {
		t.Fatalf("FindForDay after generation = %v, %v", cached, err)
	}
	if cached.Insight != "Eat more protein." || cached.CoachType != "arnold" {
		t.Errorf("cached row = %+v", cached)
	}
}

func TestGetDailyInsight_SecondCallHitsCache(t *testing.T) {
	gen := &stubGenerator{}
	svc, _, userID := newInsightFixture(gen)

	first, err := svc.GetDailyInsight(context.Background(), userID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.GetDailyInsight(context.Background(), userID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
	if second.Insight != first.Insight {
		t.Errorf("insight changed: %q vs %q", second.Insight, first.Insight)
	}
	if !second.GeneratedAt.Equal(first.GeneratedAt) {
		t.Errorf("GeneratedAt changed: %v vs %v", second.GeneratedAt, first.GeneratedAt)
	}
}

func TestGetDailyInsight_PersonaChangeRegenerates(t *testing.T) {
	n := 0
	gen := &stubGenerator{fn: func(systemPrompt, userData string) (string, error) {
		n++
		return fmt.Sprintf("Insight %d", n), nil
	}}
	svc, db, userID := newInsightFixture(gen)
	ctx := context.Background()

	if _, err := svc.GetDailyInsight(ctx, userID); err != nil {
		t.Fatalf("first call: %v", err)
	}

	goggins := "goggins"
	settings := app.NewSettingsService(db)
	if _, err := settings.Update(ctx, userID, app.SettingsUpdate{CoachType: &goggins}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.GetDailyInsight(ctx, userID)
	if err != nil {
		t.Fatalf("after persona change: %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls)
	}
	if got.CoachType != "goggins" || got.Insight != "Insight 2" {
		t.Errorf("got %s / %q, want goggins / Insight 2", got.CoachType, got.Insight)
	}

	// The old persona's row must be gone, not shadowed.
	cached, err := db.FindForDay(ctx, userID, localToday())
	if err != nil {
		t.Fatalf("FindForDay: %v", err)
	}
	if cached == nil || cached.CoachType != "goggins" {
		t.Errorf("cached row = %+v, want goggins", cached)
	}
}

func TestGetDailyInsight_FailureNotCached(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"quota", domain.ErrQuotaExceeded},
		{"unconfigured", domain.ErrCoachingUnconfigured},
		{"upstream", &domain.UpstreamError{Message: "model overloaded"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{fn: func(systemPrompt, userData string) (string, error) {
				return "", tt.err
			}}
			svc, db, userID := newInsightFixture(gen)
			ctx := context.Background()

			_, err := svc.GetDailyInsight(ctx, userID)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			cached, err := db.FindForDay(ctx, userID, localToday())
			if err != nil {
				t.Fatalf("FindForDay: %v", err)
			}
			if cached != nil {
				t.Errorf("failure was cached: %+v", cached)
			}
		})
	}
}

func TestGetDailyInsight_RetryAfterFailureSucceeds(t *testing.T) {
	fail := true
	gen := &stubGenerator{fn: func(systemPrompt, userData string) (string, error) {
		if fail {
			return "", domain.ErrQuotaExceeded
		}
		return "Back in business.", nil
	}}
	svc, _, userID := newInsightFixture(gen)
	ctx := context.Background()

	if _, err := svc.GetDailyInsight(ctx, userID); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("first call err = %v, want quota", err)
	}

	fail = false
	got, err := svc.GetDailyInsight(ctx, userID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got.Insight != "Back in business." {
		t.Errorf("insight = %q", got.Insight)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls)
	}
}

func TestGetDailyInsight_SurvivesRequestCancellation(t *testing.T) {
	gen := &stubGenerator{fn: func(_, _ string) (string, error) {
		return "Generated anyway.", nil
	}}
	svc, db, userID := newInsightFixture(gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := svc.GetDailyInsight(ctx, userID)
	if err != nil {
		t.Fatalf("GetDailyInsight with cancelled context: %v", err)
	}
	if got.Insight != "Generated anyway." {
		t.Errorf("insight = %q", got.Insight)
	}
	cached, err := db.FindForDay(context.Background(), userID, localToday())
	if err != nil || cached == nil {
		t.Fatalf("insight not cached after cancellation: %v, %v", cached, err)
	}
}

func TestGetDailyInsight_DigestIncludesUserData(t *testing.T) {
	var seenData string
	gen := &stubGenerator{fn: func(systemPrompt, userData string) (string, error) {
		seenData = userData
		return "ok", nil
	}}
	svc, db, userID := newInsightFixture(gen)

	db.AddMeasurement(userID, localToday(), 185)

	if _, err := svc.GetDailyInsight(context.Background(), userID); err != nil {
		t.Fatalf("GetDailyInsight: %v", err)
	}
	if seenData == "" {
		t.Fatal("generator received empty digest")
	}
	mustContain(t, seenData, "Current weight: 185.0 lbs")
}
