package store

import (
	"context"
	"encoding/json"
	"time"
)

// SessionRecord is the persisted authentication session: the bearer token
// and a denormalized snapshot of the user profile, stored as JSON so the
// store stays agnostic of the profile's shape.
type SessionRecord struct {
	Token    string
	Profile  json.RawMessage
	Remember bool
	SavedAt  time.Time
}

// SessionRepo owns the single persisted session. At most one session
// exists per installation.
type SessionRepo interface {
	// Save writes the session, replacing any existing one. The write is
	// durable before Save returns.
	Save(ctx context.Context, rec SessionRecord) error

	// Load returns the persisted session, or nil if none exists.
	Load(ctx context.Context) (*SessionRecord, error)

	// Clear removes the persisted session. A no-op when none exists.
	Clear(ctx context.Context) error
}

// ContentEntry is a cached lesson document keyed by topic and difficulty.
type ContentEntry struct {
	Topic      string
	Difficulty string
	Document   json.RawMessage
	FetchedAt  time.Time
}

// ContentRepo caches generated lesson documents locally so revisiting a
// topic does not re-hit the generation API.
type ContentRepo interface {
	// Put stores or replaces the document for (topic, difficulty).
	Put(ctx context.Context, entry ContentEntry) error

	// Get returns the cached entry, or nil if not cached.
	Get(ctx context.Context, topic, difficulty string) (*ContentEntry, error)

	// List returns all cached entries, most recently fetched first.
	List(ctx context.Context) ([]ContentEntry, error)
}

// Attempt records one graded quiz attempt.
type Attempt struct {
	ID      string
	Topic   string
	Score   int
	Total   int
	TakenAt time.Time
}

// AttemptStats aggregates attempt history for the profile screen.
type AttemptStats struct {
	TestsTaken  int
	AveragePct  float64
	BestPct     float64
	LastTakenAt time.Time
}

// AttemptRepo stores quiz attempt history.
type AttemptRepo interface {
	// Record appends a graded attempt.
	Record(ctx context.Context, a Attempt) error

	// List returns up to limit attempts, newest first (0 = all).
	List(ctx context.Context, limit int) ([]Attempt, error)

	// Stats aggregates the full attempt history.
	Stats(ctx context.Context) (AttemptStats, error)
}

// APIRequestEventData captures one backend API call for the local log.
type APIRequestEventData struct {
	Endpoint  string
	Method    string
	Status    int
	LatencyMs int64
	Success   bool
	Error     string
}

// EventRepo provides append access to the API request log.
type EventRepo interface {
	// AppendAPIRequest records a backend API call event.
	AppendAPIRequest(ctx context.Context, data APIRequestEventData) error
}
