package postgres

import (
	"context"

	"healthapp/internal/domain"

	"github.com/google/uuid"
)

// ListActive returns the user's active supplements ordered by name.
func (d *DB) ListActive(ctx context.Context, userID uuid.UUID) ([]domain.Supplement, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, name, COALESCE(dosage, ''), is_active
		 FROM supplements
		 WHERE user_id = $1 AND is_active
		 ORDER BY name`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Supplement
	for rows.Next() {
		var s domain.Supplement
		if err := rows.Scan(&s.ID, &s.Name, &s.Dosage, &s.Active); err != nil {
			return nil, err
		}
		s.UserID = userID
		out = append(out, s)
	}
	return out, rows.Err()
}

// TakenOn reports which supplements have a taken log for the given day.
func (d *DB) TakenOn(ctx context.Context, userID uuid.UUID, day string) (map[uuid.UUID]bool, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT supplement_id FROM supplement_logs WHERE user_id = $1 AND log_date = $2 AND taken",
		userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		taken[id] = true
	}
	return taken, rows.Err()
}

// CountTaken counts taken logs for a user in the inclusive day window.
func (d *DB) CountTaken(ctx context.Context, userID uuid.UUID, fromDay, toDay string) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM supplement_logs WHERE user_id = $1 AND taken AND log_date >= $2 AND log_date <= $3",
		userID, fromDay, toDay,
	).Scan(&count)
	return count, err
}
