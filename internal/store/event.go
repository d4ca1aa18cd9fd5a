package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// eventRepo implements EventRepo over the api_events table.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendAPIRequest(ctx context.Context, data APIRequestEventData) error {
	query, args, err := sq.Insert("api_events").
		Columns("endpoint", "method", "status", "latency_ms", "success", "error", "created_at").
		Values(data.Endpoint, data.Method, data.Status, data.LatencyMs, data.Success, data.Error, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build event insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append api event: %w", err)
	}
	return nil
}
