// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthapp/internal/domain"

	"github.com/google/uuid"
)

// DB implements all domain repository ports in memory.
type DB struct {
	mu sync.Mutex

	users    []*domain.User
	sessions map[string]*domain.Session
	settings map[uuid.UUID]*domain.UserSettings

	workouts     []domain.Workout
	sets         []setRow
	nutrition    []nutritionRow
	measurements []domain.BodyMeasurement
	supplements  []domain.Supplement
	suppLogs     []suppLogRow
	insights     []domain.CoachInsight
}

type setRow struct {
	domain.Set
	completed bool
}

type nutritionRow struct {
	userID   uuid.UUID
	day      string
	calories float64
	protein  float64
	carbs    float64
	fat      float64
	deleted  bool
}

type suppLogRow struct {
	userID       uuid.UUID
	supplementID uuid.UUID
	day          string
	taken        bool
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
		settings: make(map[uuid.UUID]*domain.UserSettings),
	}
}

// Ensure interfaces are met.
var (
	_ domain.UserRepository        = (*DB)(nil)
	_ domain.SessionRepository     = (*SessionRepo)(nil)
	_ domain.SettingsRepository    = (*DB)(nil)
	_ domain.WorkoutRepository     = (*DB)(nil)
	_ domain.NutritionRepository   = (*DB)(nil)
	_ domain.MeasurementRepository = (*DB)(nil)
	_ domain.SupplementRepository  = (*DB)(nil)
	_ domain.InsightRepository     = (*DB)(nil)
)

// --- UserRepository ---

// GetByEmail returns the user with the given email, or (nil, nil).
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID returns the user with the given id, or (nil, nil).
func (db *DB) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create adds a new user.
func (db *DB) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// --- SessionRepository ---

// SessionRepo implements session operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a session.
func (r *SessionRepo) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken returns a session, or (nil, nil).
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.sessions[token], nil
}

// Delete removes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired removes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for token, s := range r.db.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.db.sessions, token)
		}
	}
	return nil
}

// --- SettingsRepository ---

// Get returns stored settings, or (nil, nil).
func (db *DB) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if s, ok := db.settings[userID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Upsert stores settings.
func (db *DB) Upsert(ctx context.Context, s *domain.UserSettings) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	cp := *s
	db.settings[s.UserID] = &cp
	return nil
}

// --- WorkoutRepository ---

// AddWorkout seeds a workout (test/dev helper). Pass a nil completedAt for
// an in-progress workout, which the read queries will not return.
func (db *DB) AddWorkout(userID uuid.UUID, day string, startedAt time.Time, completedAt *time.Time) uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()
	w := domain.Workout{
		ID:          uuid.New(),
		UserID:      userID,
		WorkoutDate: day,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
	}
	db.workouts = append(db.workouts, w)
	return w.ID
}

// AddSet seeds a set (test/dev helper).
func (db *DB) AddSet(workoutID uuid.UUID, exercise string, weight *float64, reps *int, completed bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.sets = append(db.sets, setRow{
		Set: domain.Set{
			ID:           uuid.New(),
			WorkoutID:    workoutID,
			ExerciseName: exercise,
			Weight:       weight,
			Reps:         reps,
		},
		completed: completed,
	})
}

// ListCompletedWorkouts returns completed workouts in the inclusive window.
func (db *DB) ListCompletedWorkouts(ctx context.Context, userID uuid.UUID, fromDay, toDay string) ([]domain.Workout, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.Workout
	for _, w := range db.workouts {
		if w.UserID == userID && w.CompletedAt != nil && w.WorkoutDate >= fromDay && w.WorkoutDate <= toDay {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkoutDate < out[j].WorkoutDate })
	return out, nil
}

// ListCompletedSets returns completed sets for the given workouts.
func (db *DB) ListCompletedSets(ctx context.Context, workoutIDs []uuid.UUID) ([]domain.Set, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(workoutIDs))
	for _, id := range workoutIDs {
		wanted[id] = true
	}
	var out []domain.Set
	for _, s := range db.sets {
		if s.completed && wanted[s.WorkoutID] {
			out = append(out, s.Set)
		}
	}
	return out, nil
}

// --- NutritionRepository ---

// AddNutritionDay seeds one day's macro totals (test/dev helper).
func (db *DB) AddNutritionDay(userID uuid.UUID, day string, calories, protein, carbs, fat float64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nutrition = append(db.nutrition, nutritionRow{
		userID: userID, day: day,
		calories: calories, protein: protein, carbs: carbs, fat: fat,
	})
}

// DailyTotals returns per-day macro sums in the inclusive window.
func (db *DB) DailyTotals(ctx context.Context, userID uuid.UUID, fromDay, toDay string) ([]domain.DayNutrition, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	byDay := make(map[string]*domain.DayNutrition)
	for _, n := range db.nutrition {
		if n.userID != userID || n.deleted || n.day < fromDay || n.day > toDay {
			continue
		}
		d, ok := byDay[n.day]
		if !ok {
			d = &domain.DayNutrition{Day: n.day}
			byDay[n.day] = d
		}
		d.Calories += n.calories
		d.Protein += n.protein
		d.Carbs += n.carbs
		d.Fat += n.fat
	}
	var out []domain.DayNutrition
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// --- MeasurementRepository ---

// AddMeasurement seeds a body-weight reading (test/dev helper).
func (db *DB) AddMeasurement(userID uuid.UUID, day string, weight float64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.measurements = append(db.measurements, domain.BodyMeasurement{
		ID:        uuid.New(),
		UserID:    userID,
		Day:       day,
		Weight:    weight,
		CreatedAt: time.Now().UTC(),
	})
}

// LatestWeight returns the most recent reading, or (nil, nil).
func (db *DB) LatestWeight(ctx context.Context, userID uuid.UUID) (*domain.BodyMeasurement, error) {
	return db.latestOnOrBefore(userID, "9999-12-31")
}

// LatestWeightOnOrBefore returns the most recent reading dated on or before
// day, or (nil, nil).
func (db *DB) LatestWeightOnOrBefore(ctx context.Context, userID uuid.UUID, day string) (*domain.BodyMeasurement, error) {
	return db.latestOnOrBefore(userID, day)
}

func (db *DB) latestOnOrBefore(userID uuid.UUID, day string) (*domain.BodyMeasurement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var best *domain.BodyMeasurement
	for i := range db.measurements {
		m := &db.measurements[i]
		if m.UserID != userID || m.Day > day {
			continue
		}
		if best == nil || m.Day > best.Day {
			best = m
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

// --- SupplementRepository ---

// AddSupplement seeds a supplement (test/dev helper).
func (db *DB) AddSupplement(userID uuid.UUID, name, dosage string, active bool) uuid.UUID {
	db.mu.Lock()
	defer db.mu.Unlock()
	s := domain.Supplement{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Dosage: dosage,
		Active: active,
	}
	db.supplements = append(db.supplements, s)
	return s.ID
}

// LogSupplement seeds a supplement intake log (test/dev helper).
func (db *DB) LogSupplement(userID, supplementID uuid.UUID, day string, taken bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.suppLogs = append(db.suppLogs, suppLogRow{
		userID: userID, supplementID: supplementID, day: day, taken: taken,
	})
}

// ListActive returns active supplements ordered by name.
func (db *DB) ListActive(ctx context.Context, userID uuid.UUID) ([]domain.Supplement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.Supplement
	for _, s := range db.supplements {
		if s.UserID == userID && s.Active {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// TakenOn reports which supplements have a taken log for the given day.
func (db *DB) TakenOn(ctx context.Context, userID uuid.UUID, day string) (map[uuid.UUID]bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	taken := make(map[uuid.UUID]bool)
	for _, l := range db.suppLogs {
		if l.userID == userID && l.day == day && l.taken {
			taken[l.supplementID] = true
		}
	}
	return taken, nil
}

// CountTaken counts taken logs in the inclusive window.
func (db *DB) CountTaken(ctx context.Context, userID uuid.UUID, fromDay, toDay string) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	count := 0
	for _, l := range db.suppLogs {
		if l.userID == userID && l.taken && l.day >= fromDay && l.day <= toDay {
			count++
		}
	}
	return count, nil
}

// --- InsightRepository ---

// FindForDay returns the cached insight for (user, day), or (nil, nil).
func (db *DB) FindForDay(ctx context.Context, userID uuid.UUID, day string) (*domain.CoachInsight, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i := range db.insights {
		in := db.insights[i]
		if in.UserID == userID && in.InsightDate == day {
			return &in, nil
		}
	}
	return nil, nil
}

// Replace removes any insight for (user, day) and stores the new one.
func (db *DB) Replace(ctx context.Context, userID uuid.UUID, day, coachType, insight string) (*domain.CoachInsight, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	kept := db.insights[:0]
	for _, in := range db.insights {
		if in.UserID != userID || in.InsightDate != day {
			kept = append(kept, in)
		}
	}
	db.insights = kept

	row := domain.CoachInsight{
		ID:          uuid.New(),
		UserID:      userID,
		CoachType:   coachType,
		Insight:     insight,
		InsightDate: day,
		CreatedAt:   time.Now().UTC(),
	}
	db.insights = append(db.insights, row)
	return &row, nil
}
