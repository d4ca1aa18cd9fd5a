package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/lernix/internal/store"
)

// fakeSessionRepo is an in-memory SessionRepo with injectable failures.
type fakeSessionRepo struct {
	rec     *store.SessionRecord
	saveErr error
	loadErr error
}

func (f *fakeSessionRepo) Save(_ context.Context, rec store.SessionRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rec = &rec
	return nil
}

func (f *fakeSessionRepo) Load(_ context.Context) (*store.SessionRecord, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.rec, nil
}

func (f *fakeSessionRepo) Clear(_ context.Context) error {
	f.rec = nil
	return nil
}

func TestLogin_PersistsBeforeSuccess(t *testing.T) {
	repo := &fakeSessionRepo{}
	m := NewManager(repo)
	ctx := context.Background()

	err := m.Login(ctx, "tok-1", Profile{Username: "alice"}, true)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if m.Token() != "tok-1" {
		t.Errorf("Token = %q, want \"tok-1\"", m.Token())
	}
	if !m.Authenticated() {
		t.Error("expected Authenticated after login")
	}
	if repo.rec == nil {
		t.Fatal("expected session to be persisted")
	}
	if repo.rec.Token != "tok-1" || !repo.rec.Remember {
		t.Errorf("persisted record = %+v", repo.rec)
	}
}

func TestLogin_StorageFailureLeavesLoggedOut(t *testing.T) {
	repo := &fakeSessionRepo{saveErr: errors.New("disk full")}
	m := NewManager(repo)

	err := m.Login(context.Background(), "tok-1", Profile{Username: "alice"}, false)

	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("Login = %v, want StorageError", err)
	}
	if m.Authenticated() {
		t.Error("manager must not report logged-in when persistence failed")
	}
	if m.Token() != "" {
		t.Errorf("Token = %q, want empty", m.Token())
	}
}

func TestLogout_Idempotent(t *testing.T) {
	repo := &fakeSessionRepo{}
	m := NewManager(repo)
	ctx := context.Background()

	// Logout before any login must be a no-op.
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout (logged out): %v", err)
	}

	if err := m.Login(ctx, "tok-1", Profile{Username: "alice"}, false); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if m.Token() != "" {
		t.Errorf("Token after logout = %q, want empty", m.Token())
	}
	if m.Profile() != nil {
		t.Error("Profile after logout should be nil")
	}
	if repo.rec != nil {
		t.Error("expected persisted session to be cleared")
	}

	// And again: still fine.
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout (second): %v", err)
	}
}

func TestRestore_LoadsPersistedSessionOnce(t *testing.T) {
	profile, _ := json.Marshal(Profile{Username: "alice", TestsTaken: 3})
	repo := &fakeSessionRepo{rec: &store.SessionRecord{
		Token:   "tok-1",
		Profile: profile,
	}}
	m := NewManager(repo)
	ctx := context.Background()

	m.Restore(ctx)

	if m.Token() != "tok-1" {
		t.Errorf("Token = %q, want \"tok-1\"", m.Token())
	}
	p := m.Profile()
	if p == nil || p.Username != "alice" || p.TestsTaken != 3 {
		t.Errorf("Profile = %+v", p)
	}

	// A later store change is not picked up: restore runs once.
	repo.rec = &store.SessionRecord{Token: "tok-2", Profile: profile}
	m.Restore(ctx)
	if m.Token() != "tok-1" {
		t.Errorf("Token after second restore = %q, want \"tok-1\"", m.Token())
	}
}

func TestRestore_FailsOpenToLoggedOut(t *testing.T) {
	cases := []struct {
		name string
		repo *fakeSessionRepo
	}{
		{"no session", &fakeSessionRepo{}},
		{"storage error", &fakeSessionRepo{loadErr: errors.New("corrupt db")}},
		{"empty token", &fakeSessionRepo{rec: &store.SessionRecord{
			Profile: json.RawMessage(`{"username":"alice"}`),
		}}},
		{"unparsable profile", &fakeSessionRepo{rec: &store.SessionRecord{
			Token:   "tok-1",
			Profile: json.RawMessage(`{not json`),
		}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(tc.repo)
			m.Restore(context.Background())
			if m.Authenticated() {
				t.Error("expected logged-out state")
			}
			if m.Profile() != nil {
				t.Error("expected nil profile")
			}
		})
	}
}

func TestSetProfile_ReplacesAndPersists(t *testing.T) {
	repo := &fakeSessionRepo{}
	m := NewManager(repo)
	ctx := context.Background()

	// Logged out: no-op.
	if err := m.SetProfile(ctx, Profile{Username: "ghost"}); err != nil {
		t.Fatalf("SetProfile (logged out): %v", err)
	}
	if repo.rec != nil {
		t.Error("SetProfile while logged out must not persist anything")
	}

	if err := m.Login(ctx, "tok-1", Profile{Username: "alice"}, true); err != nil {
		t.Fatalf("Login: %v", err)
	}
	updated := Profile{Username: "alice", FirstName: "Alice", TestsTaken: 4}
	if err := m.SetProfile(ctx, updated); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}

	p := m.Profile()
	if p.FirstName != "Alice" || p.TestsTaken != 4 {
		t.Errorf("Profile = %+v", p)
	}
	// Token and remember flag survive the profile replacement.
	if repo.rec.Token != "tok-1" || !repo.rec.Remember {
		t.Errorf("persisted record = %+v", repo.rec)
	}
}
