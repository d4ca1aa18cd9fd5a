package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct {
	title string
}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func newTestWelcome(authed bool) (*WelcomeScreen, *int, *int) {
	homeCalls, loginCalls := 0, 0
	w := New(
		func() bool { return authed },
		func() screen.Screen { homeCalls++; return &stubScreen{title: "Home"} },
		func() screen.Screen { loginCalls++; return &stubScreen{title: "Sign in"} },
	)
	return w, &homeCalls, &loginCalls
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestBannerAppearsOverTime(t *testing.T) {
	w, _, _ := newTestWelcome(false)

	if strings.Contains(w.View(80, 24), "one lesson at a time") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 12)
	if !strings.Contains(w.View(80, 24), "one lesson at a time") {
		t.Error("tagline should be visible after the animation")
	}
}

func TestKeypressBeforeRestoreIsIgnored(t *testing.T) {
	w, homeCalls, loginCalls := newTestWelcome(true)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd != nil {
		t.Error("keypress before restore completes should do nothing")
	}
	if *homeCalls != 0 || *loginCalls != 0 {
		t.Error("no factory should run before restore completes")
	}
}

func TestAuthenticatedRoutesHome(t *testing.T) {
	w, homeCalls, loginCalls := newTestWelcome(true)

	w.Update(restoredMsg{authenticated: true})
	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Home" {
		t.Errorf("expected home screen, got %q", msg.Screen.Title())
	}
	if *homeCalls != 1 || *loginCalls != 0 {
		t.Errorf("home factory calls = %d, login = %d", *homeCalls, *loginCalls)
	}
}

func TestUnauthenticatedRoutesToLogin(t *testing.T) {
	w, homeCalls, loginCalls := newTestWelcome(false)

	w.Update(restoredMsg{authenticated: false})
	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a transition command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Sign in" {
		t.Errorf("expected login screen, got %q", msg.Screen.Title())
	}
	if *homeCalls != 0 || *loginCalls != 1 {
		t.Errorf("home factory calls = %d, login = %d", *homeCalls, *loginCalls)
	}
}

func TestTransitionHappensOnce(t *testing.T) {
	w, homeCalls, _ := newTestWelcome(true)

	w.Update(restoredMsg{authenticated: true})
	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *homeCalls != 1 {
		t.Errorf("factory should be called exactly once, got %d", *homeCalls)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _, _ := newTestWelcome(false)
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
