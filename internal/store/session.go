package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// sessionRepo implements SessionRepo on the single-row session table.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Save(ctx context.Context, rec SessionRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO session (id, token, profile, remember, saved_at)
VALUES (1, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	token = excluded.token,
	profile = excluded.profile,
	remember = excluded.remember,
	saved_at = excluded.saved_at
`, rec.Token, string(rec.Profile), rec.Remember, rec.SavedAt.UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Load(ctx context.Context) (*SessionRecord, error) {
	var (
		rec     SessionRecord
		profile string
		savedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, `
SELECT token, profile, remember, saved_at FROM session WHERE id = 1
`).Scan(&rec.Token, &profile, &rec.Remember, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	rec.Profile = []byte(profile)
	rec.SavedAt = savedAt
	return &rec, nil
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
