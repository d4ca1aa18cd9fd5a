package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// attemptRepo implements AttemptRepo over the attempts table.
type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Record(ctx context.Context, a Attempt) error {
	query, args, err := sq.Insert("attempts").
		Columns("id", "topic", "score", "total", "taken_at").
		Values(a.ID, a.Topic, a.Score, a.Total, a.TakenAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build attempt insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) List(ctx context.Context, limit int) ([]Attempt, error) {
	builder := sq.Select("id", "topic", "score", "total", "taken_at").
		From("attempts").
		OrderBy("taken_at DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build attempt list: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.Topic, &a.Score, &a.Total, &a.TakenAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (r *attemptRepo) Stats(ctx context.Context) (AttemptStats, error) {
	// Attempts with zero questions are excluded so averages stay defined.
	query, args, err := sq.Select(
		"COUNT(*)",
		"COALESCE(AVG(100.0 * score / total), 0)",
		"COALESCE(MAX(100.0 * score / total), 0)",
		"MAX(taken_at)",
	).
		From("attempts").
		Where(sq.Gt{"total": 0}).
		ToSql()
	if err != nil {
		return AttemptStats{}, fmt.Errorf("build attempt stats: %w", err)
	}

	var (
		stats AttemptStats
		last  sql.NullTime
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&stats.TestsTaken, &stats.AveragePct, &stats.BestPct, &last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return AttemptStats{}, fmt.Errorf("attempt stats: %w", err)
	}
	if last.Valid {
		stats.LastTakenAt = last.Time
	}
	return stats, nil
}
