package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/lernix/internal/store"
)

// Profile is the denormalized snapshot of the server-side user record.
// It is owned by the Manager and replaced wholesale, never mutated field
// by field.
type Profile struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	TestsTaken   int     `json:"tests_taken"`
	AverageScore float64 `json:"average_score"`
}

// DisplayName returns the friendliest available name for the header.
func (p Profile) DisplayName() string {
	if p.FirstName != "" {
		return p.FirstName
	}
	return p.Username
}

// StorageError reports a failed durable-storage operation. It is fatal
// for Login; restore-on-start swallows it and treats the user as logged
// out instead.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("auth storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Manager is the single source of truth for "is a user logged in, and
// with what credential". It owns the persisted session exclusively; no
// other component reads or writes it. Construct one at application root
// and inject it into every screen that needs it.
type Manager struct {
	mu          sync.Mutex
	repo        store.SessionRepo
	restoreOnce sync.Once

	token    string
	profile  *Profile
	remember bool
}

// NewManager creates a Manager backed by the given session repository.
func NewManager(repo store.SessionRepo) *Manager {
	return &Manager{repo: repo}
}

// Restore loads the persisted session. It runs at most once per process,
// before any protected screen renders. Missing or unparsable data leaves
// the manager logged out; storage errors are swallowed for the same
// reason — restore never fails open into a half-authenticated state.
func (m *Manager) Restore(ctx context.Context) {
	m.restoreOnce.Do(func() {
		rec, err := m.repo.Load(ctx)
		if err != nil || rec == nil || rec.Token == "" {
			return
		}
		var p Profile
		if err := json.Unmarshal(rec.Profile, &p); err != nil {
			return
		}
		m.mu.Lock()
		m.token = rec.Token
		m.profile = &p
		m.remember = rec.Remember
		m.mu.Unlock()
	})
}

// Login persists the credential and profile, then updates in-memory
// state. The storage write completes before success is reported, so a
// restart immediately after Login still sees the session. On a storage
// failure the manager stays logged out and a StorageError is returned.
func (m *Manager) Login(ctx context.Context, token string, profile Profile, remember bool) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return &StorageError{Op: "encode profile", Err: err}
	}
	rec := store.SessionRecord{
		Token:    token,
		Profile:  raw,
		Remember: remember,
		SavedAt:  time.Now(),
	}
	if err := m.repo.Save(ctx, rec); err != nil {
		return &StorageError{Op: "save session", Err: err}
	}

	m.mu.Lock()
	m.token = token
	m.profile = &profile
	m.remember = remember
	m.mu.Unlock()
	return nil
}

// Logout clears the in-memory session and removes every persisted entry.
// Idempotent: calling it while already logged out is a no-op, not an
// error.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.profile = nil
	m.remember = false
	m.mu.Unlock()

	if err := m.repo.Clear(ctx); err != nil {
		return &StorageError{Op: "clear session", Err: err}
	}
	return nil
}

// Token returns the current bearer token, or the empty string when logged
// out. It never fails: callers treat an empty token as unauthenticated
// and redirect rather than sending an unauthenticated request.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Authenticated reports whether a session token is present.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// Profile returns a copy of the current profile, or nil when logged out.
func (m *Manager) Profile() *Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return nil
	}
	p := *m.profile
	return &p
}

// SetProfile replaces the stored profile with the server's authoritative
// copy (after a profile refresh or update) and re-persists the session.
// A no-op when logged out.
func (m *Manager) SetProfile(ctx context.Context, profile Profile) error {
	m.mu.Lock()
	token := m.token
	remember := m.remember
	m.mu.Unlock()
	if token == "" {
		return nil
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return &StorageError{Op: "encode profile", Err: err}
	}
	rec := store.SessionRecord{
		Token:    token,
		Profile:  raw,
		Remember: remember,
		SavedAt:  time.Now(),
	}
	if err := m.repo.Save(ctx, rec); err != nil {
		return &StorageError{Op: "save session", Err: err}
	}

	m.mu.Lock()
	m.profile = &profile
	m.mu.Unlock()
	return nil
}
