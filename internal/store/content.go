package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// contentRepo implements ContentRepo over the contents table.
type contentRepo struct {
	db *sql.DB
}

func (r *contentRepo) Put(ctx context.Context, entry ContentEntry) error {
	// Squirrel has no upsert support, so the conflict clause is appended
	// as a suffix.
	query, args, err := sq.Insert("contents").
		Columns("topic", "difficulty", "document", "fetched_at").
		Values(entry.Topic, entry.Difficulty, string(entry.Document), entry.FetchedAt.UTC()).
		Suffix(`ON CONFLICT(topic, difficulty) DO UPDATE SET
			document = excluded.document,
			fetched_at = excluded.fetched_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build content insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put content: %w", err)
	}
	return nil
}

func (r *contentRepo) Get(ctx context.Context, topic, difficulty string) (*ContentEntry, error) {
	query, args, err := sq.Select("topic", "difficulty", "document", "fetched_at").
		From("contents").
		Where(sq.Eq{"topic": topic, "difficulty": difficulty}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build content select: %w", err)
	}

	entry, err := scanContent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	return entry, nil
}

func (r *contentRepo) List(ctx context.Context) ([]ContentEntry, error) {
	query, args, err := sq.Select("topic", "difficulty", "document", "fetched_at").
		From("contents").
		OrderBy("fetched_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build content list: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()

	var entries []ContentEntry
	for rows.Next() {
		entry, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (*ContentEntry, error) {
	var (
		entry ContentEntry
		doc   string
	)
	if err := row.Scan(&entry.Topic, &entry.Difficulty, &doc, &entry.FetchedAt); err != nil {
		return nil, err
	}
	entry.Document = []byte(doc)
	return &entry, nil
}
