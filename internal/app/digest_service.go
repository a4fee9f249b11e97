package app

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"healthapp/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	dayFormat = "2006-01-02"

	// Session lengths outside (0, 8h) are treated as data-entry noise and
	// excluded from the duration average.
	maxSessionMinutes = 480
)

// DigestService aggregates a user's recent activity across the workout,
// nutrition, measurement and supplement domains into the textual digest
// that becomes the generation prompt payload.
type DigestService struct {
	workouts     domain.WorkoutRepository
	nutrition    domain.NutritionRepository
	measurements domain.MeasurementRepository
	supplements  domain.SupplementRepository
}

// NewDigestService creates a DigestService backed by the given read-only
// repositories.
func NewDigestService(
	wo domain.WorkoutRepository,
	nu domain.NutritionRepository,
	me domain.MeasurementRepository,
	su domain.SupplementRepository,
) *DigestService {
	return &DigestService{workouts: wo, nutrition: nu, measurements: me, supplements: su}
}

// BuildDigest reduces the trailing 7-day window ending at today (a local
// 2006-01-02 day string) to a deterministic ordered sequence of lines. The
// four data sections are fetched concurrently and assembled best-effort: a
// read failure or empty result in one section degrades to an explicit
// no-data line without blocking the others.
func (s *DigestService) BuildDigest(ctx context.Context, userID uuid.UUID, today string, settings *domain.UserSettings) string {
	units := settings.Units
	asOf, err := time.ParseInLocation(dayFormat, today, time.Local)
	if err != nil {
		asOf = time.Now().In(time.Local)
		today = asOf.Format(dayFormat)
	}
	weekAgo := asOf.AddDate(0, 0, -6).Format(dayFormat)
	thirtyAgo := asOf.AddDate(0, 0, -30).Format(dayFormat)

	var workoutL, nutritionL, measurementL, supplementL []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		workoutL = s.workoutLines(gctx, userID, weekAgo, today, units)
		return nil
	})
	g.Go(func() error {
		nutritionL = s.nutritionLines(gctx, userID, weekAgo, today, settings)
		return nil
	})
	g.Go(func() error {
		measurementL = s.measurementLines(gctx, userID, thirtyAgo, units)
		return nil
	})
	g.Go(func() error {
		supplementL = s.supplementLines(gctx, userID, weekAgo, today)
		return nil
	})
	_ = g.Wait()

	lines := []string{fmt.Sprintf("User's preferred units: %s", units)}
	lines = append(lines, workoutL...)
	lines = append(lines, nutritionL...)
	lines = append(lines, measurementL...)
	lines = append(lines, supplementL...)
	return strings.Join(lines, "\n")
}

func (s *DigestService) workoutLines(ctx context.Context, userID uuid.UUID, fromDay, toDay, units string) []string {
	lines := []string{"", "--- WORKOUT DATA (last 7 days) ---"}

	workouts, err := s.workouts.ListCompletedWorkouts(ctx, userID, fromDay, toDay)
	if err != nil {
		log.Printf("digest: workouts for %s: %v", userID, err)
		workouts = nil
	}

	lines = append(lines, fmt.Sprintf("Workouts completed: %d", len(workouts)))
	if len(workouts) == 0 {
		return append(lines, "No workouts logged this week.")
	}

	ids := make([]uuid.UUID, 0, len(workouts))
	for _, w := range workouts {
		ids = append(ids, w.ID)
	}
	sets, err := s.workouts.ListCompletedSets(ctx, ids)
	if err != nil {
		log.Printf("digest: sets for %s: %v", userID, err)
		sets = nil
	}

	var totalVolume float64
	for _, set := range sets {
		weight, reps := 0.0, 0
		if set.Weight != nil {
			weight = *set.Weight
		}
		if set.Reps != nil {
			reps = *set.Reps
		}
		totalVolume += weight * float64(reps)
	}
	lines = append(lines,
		fmt.Sprintf("Total volume: %.0f %s", totalVolume, units),
		fmt.Sprintf("Total sets: %d", len(sets)),
		fmt.Sprintf("Avg sets per workout: %.1f", float64(len(sets))/float64(len(workouts))),
	)

	var durations []float64
	for _, w := range workouts {
		if w.CompletedAt == nil {
			continue
		}
		minutes := w.CompletedAt.Sub(w.StartedAt).Minutes()
		if minutes > 0 && minutes < maxSessionMinutes {
			durations = append(durations, minutes)
		}
	}
	if len(durations) > 0 {
		var sum float64
		for _, d := range durations {
			sum += d
		}
		lines = append(lines, fmt.Sprintf("Avg workout duration: %.0f minutes", sum/float64(len(durations))))
	}

	type exerciseStats struct {
		setCount  int
		maxWeight float64
	}
	byExercise := make(map[string]*exerciseStats)
	for _, set := range sets {
		st, ok := byExercise[set.ExerciseName]
		if !ok {
			st = &exerciseStats{}
			byExercise[set.ExerciseName] = st
		}
		st.setCount++
		if set.Weight != nil && *set.Weight > st.maxWeight {
			st.maxWeight = *set.Weight
		}
	}
	if len(byExercise) > 0 {
		names := make([]string, 0, len(byExercise))
		for name := range byExercise {
			names = append(names, name)
		}
		sort.Strings(names)

		lines = append(lines, "", "Exercises performed this week:")
		for _, name := range names {
			st := byExercise[name]
			weightStr := ""
			if st.maxWeight > 0 {
				weightStr = fmt.Sprintf(", max weight: %g %s", st.maxWeight, units)
			}
			lines = append(lines, fmt.Sprintf("  - %s: %d sets%s", name, st.setCount, weightStr))
		}
	}
	return lines
}

func (s *DigestService) nutritionLines(ctx context.Context, userID uuid.UUID, fromDay, toDay string, settings *domain.UserSettings) []string {
	lines := []string{"", "--- NUTRITION DATA (last 7 days) ---"}

	days, err := s.nutrition.DailyTotals(ctx, userID, fromDay, toDay)
	if err != nil {
		log.Printf("digest: nutrition for %s: %v", userID, err)
		days = nil
	}

	if len(days) > 0 {
		var cal, pro, carb, fat float64
		for _, d := range days {
			cal += d.Calories
			pro += d.Protein
			carb += d.Carbs
			fat += d.Fat
		}
		// Daily averages divide by the fixed window length, not by the
		// number of days actually logged.
		lines = append(lines,
			fmt.Sprintf("Days with nutrition logged: %d / 7", len(days)),
			fmt.Sprintf("Daily average calories: %d", int(cal)/7),
			fmt.Sprintf("Daily average protein: %dg", int(pro)/7),
			fmt.Sprintf("Daily average carbs: %dg", int(carb)/7),
			fmt.Sprintf("Daily average fat: %dg", int(fat)/7),
		)
	} else {
		lines = append(lines, "No nutrition data logged this week.")
	}

	var targets []string
	if settings.MacroTargetCalories != nil {
		targets = append(targets, fmt.Sprintf("Calories: %d", *settings.MacroTargetCalories))
	}
	if settings.MacroTargetProtein != nil {
		targets = append(targets, fmt.Sprintf("Protein: %dg", *settings.MacroTargetProtein))
	}
	if settings.MacroTargetCarbs != nil {
		targets = append(targets, fmt.Sprintf("Carbs: %dg", *settings.MacroTargetCarbs))
	}
	if settings.MacroTargetFat != nil {
		targets = append(targets, fmt.Sprintf("Fat: %dg", *settings.MacroTargetFat))
	}
	if len(targets) > 0 {
		lines = append(lines, "", "User's daily macro targets: "+strings.Join(targets, ", "))
	}
	return lines
}

func (s *DigestService) measurementLines(ctx context.Context, userID uuid.UUID, thirtyAgo, units string) []string {
	lines := []string{"", "--- BODY MEASUREMENTS ---"}

	latest, err := s.measurements.LatestWeight(ctx, userID)
	if err != nil {
		log.Printf("digest: measurements for %s: %v", userID, err)
		latest = nil
	}
	if latest == nil {
		return append(lines, "No body weight data logged yet.")
	}

	lines = append(lines, fmt.Sprintf("Current weight: %.1f %s (logged %s)", latest.Weight, units, latest.Day))

	older, err := s.measurements.LatestWeightOnOrBefore(ctx, userID, thirtyAgo)
	if err != nil {
		log.Printf("digest: prior measurement for %s: %v", userID, err)
		older = nil
	}
	if older != nil {
		change := latest.Weight - older.Weight
		sign := ""
		if change > 0 {
			sign = "+"
		}
		lines = append(lines,
			fmt.Sprintf("Weight %s: %.1f %s", older.Day, older.Weight, units),
			fmt.Sprintf("Weight change (30 days): %s%.1f %s", sign, change, units),
		)
	}
	return lines
}

func (s *DigestService) supplementLines(ctx context.Context, userID uuid.UUID, fromDay, toDay string) []string {
	lines := []string{"", "--- SUPPLEMENTS ---"}

	active, err := s.supplements.ListActive(ctx, userID)
	if err != nil {
		log.Printf("digest: supplements for %s: %v", userID, err)
		active = nil
	}
	if len(active) == 0 {
		return append(lines, "No supplements configured.")
	}

	names := make([]string, 0, len(active))
	for _, sup := range active {
		if sup.Dosage != "" {
			names = append(names, fmt.Sprintf("%s (%s)", sup.Name, sup.Dosage))
		} else {
			names = append(names, sup.Name)
		}
	}
	lines = append(lines, "Active supplements: "+strings.Join(names, ", "))

	taken, err := s.supplements.TakenOn(ctx, userID, toDay)
	if err != nil {
		log.Printf("digest: supplement logs for %s: %v", userID, err)
		taken = nil
	}
	statuses := make([]string, 0, len(active))
	for _, sup := range active {
		status := "not taken"
		if taken[sup.ID] {
			status = "taken"
		}
		statuses = append(statuses, sup.Name+": "+status)
	}
	lines = append(lines, "Today's supplement intake: "+strings.Join(statuses, ", "))

	possible := len(active) * 7
	count, err := s.supplements.CountTaken(ctx, userID, fromDay, toDay)
	if err != nil {
		log.Printf("digest: supplement adherence for %s: %v", userID, err)
		return lines
	}
	if possible > 0 {
		pct := float64(count) / float64(possible) * 100
		if pct > 100 {
			pct = 100
		}
		lines = append(lines, fmt.Sprintf("Weekly supplement adherence: %.0f%% (%d/%d doses)", pct, count, possible))
	}
	return lines
}
