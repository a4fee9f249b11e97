package app

import (
	"context"
	"time"

	"healthapp/internal/domain"

	"github.com/google/uuid"
)

// DailyInsight is the coaching insight returned to the client.
type DailyInsight struct {
	CoachName   string    `json:"coachName"`
	CoachTitle  string    `json:"coachTitle"`
	CoachType   string    `json:"coachType"`
	Insight     string    `json:"insight"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// InsightService orchestrates the daily coaching insight: cache lookup,
// aggregation, generation and replacement.
type InsightService struct {
	settings  *SettingsService
	insights  domain.InsightRepository
	digest    *DigestService
	generator domain.InsightGenerator

	now func() time.Time
}

// NewInsightService creates an InsightService.
func NewInsightService(settings *SettingsService, insights domain.InsightRepository, digest *DigestService, generator domain.InsightGenerator) *InsightService {
	return &InsightService{
		settings:  settings,
		insights:  insights,
		digest:    digest,
		generator: generator,
		now:       time.Now,
	}
}

// GetDailyInsight returns today's insight for the user. A cached row whose
// coach type matches the user's current persona is returned verbatim with
// no aggregation or generation. Otherwise a fresh insight is generated and
// replaces whatever row exists for today. Generation failures propagate
// typed and are never cached; the next request retries.
func (s *InsightService) GetDailyInsight(ctx context.Context, userID uuid.UUID) (*DailyInsight, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	coach := domain.GetCoach(settings.CoachType)
	today := s.now().In(time.Local).Format(dayFormat)

	cached, err := s.insights.FindForDay(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if cached != nil && cached.CoachType == coach.Type {
		return &DailyInsight{
			CoachName:   coach.Name,
			CoachTitle:  coach.Title,
			CoachType:   coach.Type,
			Insight:     cached.Insight,
			GeneratedAt: cached.CreatedAt,
		}, nil
	}

	// The generation cost is incurred as soon as the call goes out, so
	// detach from the request: a client disconnect no longer aborts the
	// call and the result still lands in the cache. The generator enforces
	// its own finite timeout.
	genCtx := context.WithoutCancel(ctx)

	data := s.digest.BuildDigest(genCtx, userID, today, settings)
	text, err := s.generator.Generate(genCtx, coach.SystemPrompt, data)
	if err != nil {
		return nil, err
	}

	row, err := s.insights.Replace(genCtx, userID, today, coach.Type, text)
	if err != nil {
		return nil, err
	}
	return &DailyInsight{
		CoachName:   coach.Name,
		CoachTitle:  coach.Title,
		CoachType:   coach.Type,
		Insight:     row.Insight,
		GeneratedAt: row.CreatedAt,
	}, nil
}
