package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"healthapp/internal/domain"

	"github.com/google/uuid"
)

// FindForDay returns the cached insight for (user, day), or (nil, nil) on a
// cache miss.
func (d *DB) FindForDay(ctx context.Context, userID uuid.UUID, day string) (*domain.CoachInsight, error) {
	var in domain.CoachInsight
	var insightDate time.Time
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, coach_type, insight, insight_date, created_at FROM coach_insights WHERE user_id = $1 AND insight_date = $2",
		userID, day,
	).Scan(&in.ID, &in.CoachType, &in.Insight, &insightDate, &in.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	in.UserID = userID
	in.InsightDate = insightDate.Format("2006-01-02")
	return &in, nil
}

// Replace deletes any insight row for (user, day) regardless of its coach
// type, then inserts the new row, in a single transaction. The table's
// UNIQUE(user_id, insight_date) constraint keeps the at-most-one-row
// invariant structural even under concurrent replacements.
func (d *DB) Replace(ctx context.Context, userID uuid.UUID, day, coachType, insight string) (*domain.CoachInsight, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM coach_insights WHERE user_id = $1 AND insight_date = $2",
		userID, day,
	); err != nil {
		return nil, err
	}

	row := domain.CoachInsight{
		ID:          uuid.New(),
		UserID:      userID,
		CoachType:   coachType,
		Insight:     insight,
		InsightDate: day,
	}
	if err := tx.QueryRowContext(ctx,
		"INSERT INTO coach_insights (id, user_id, coach_type, insight, insight_date, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at",
		row.ID, userID, coachType, insight, day, time.Now().UTC(),
	).Scan(&row.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &row, nil
}
