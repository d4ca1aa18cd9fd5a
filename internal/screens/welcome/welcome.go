package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/i18n"
	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 400 * time.Millisecond
	taglineAt    = 1000 * time.Millisecond
	totalDur     = 1800 * time.Millisecond
)

type tickMsg time.Time

// restoredMsg reports the outcome of the saved-session restore.
type restoredMsg struct {
	authenticated bool
}

// WelcomeScreen shows a splash while the saved session is restored, then
// hands off to home (signed in) or login (signed out) on a key press.
type WelcomeScreen struct {
	restore      func() bool
	homeFactory  func() screen.Screen
	loginFactory func() screen.Screen

	elapsed       time.Duration
	tickCount     int
	restored      bool
	authenticated bool
	transitioned  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. restore runs once in the background and
// reports whether a saved session was found.
func New(restore func() bool, homeFactory, loginFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		restore:      restore,
		homeFactory:  homeFactory,
		loginFactory: loginFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	restore := w.restore
	return tea.Batch(
		tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		}),
		func() tea.Msg {
			authed := false
			if restore != nil {
				authed = restore()
			}
			return restoredMsg{authenticated: authed}
		},
	)
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case restoredMsg:
		w.restored = true
		w.authenticated = msg.authenticated
		return w, nil

	case tea.KeyPressMsg:
		// Wait for the restore before routing anywhere.
		if w.restored {
			return w, w.transition()
		}
		return w, nil
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true

	var next screen.Screen
	if w.authenticated {
		next = w.homeFactory()
	} else {
		next = w.loginFactory()
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.elapsed >= bannerAt {
		sections = append(sections, RenderBanner(width))
	}

	if w.elapsed >= taglineAt {
		sections = append(sections, "")
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(i18n.T("common", "tagline"))
		sections = append(sections, tagline)
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "")
		hint := "press any key to continue"
		if !w.restored {
			hint = "loading..."
		}
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render(hint))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
