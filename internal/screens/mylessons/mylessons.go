package mylessons

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/api"
	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/screens/contentview"
	"github.com/abhisek/lernix/internal/store"
	"github.com/abhisek/lernix/internal/ui/components"
	"github.com/abhisek/lernix/internal/ui/layout"
	"github.com/abhisek/lernix/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// lessonsLoadedMsg delivers the user's lesson list. offline marks a
// local-cache fallback after the backend was unreachable.
type lessonsLoadedMsg struct {
	documents []api.ContentDocument
	offline   bool
	err       error
}

type spinnerTickMsg time.Time

// LessonsScreen lists previously generated lessons for re-reading.
type LessonsScreen struct {
	client    *api.Client
	generator api.QuestionGenerator
	st        *store.Store

	documents []api.ContentDocument
	offline   bool
	selected  int
	loading   bool
	spinner   int
	errMsg    string
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)

// New creates the lesson library screen.
func New(client *api.Client, generator api.QuestionGenerator, st *store.Store) *LessonsScreen {
	return &LessonsScreen{
		client:    client,
		generator: generator,
		st:        st,
		loading:   true,
	}
}

func (s *LessonsScreen) Title() string {
	return "My lessons"
}

func (s *LessonsScreen) Init() tea.Cmd {
	client, st := s.client, s.st
	fetch := func() tea.Msg {
		ctx := context.Background()

		documents, err := client.UserContents(ctx)
		if err == nil {
			return lessonsLoadedMsg{documents: documents}
		}

		// Backend unreachable: fall back to the local cache.
		if st != nil {
			entries, cacheErr := st.ContentRepo().List(ctx)
			if cacheErr == nil && len(entries) > 0 {
				var docs []api.ContentDocument
				for _, e := range entries {
					var doc api.ContentDocument
					if json.Unmarshal(e.Document, &doc) == nil {
						docs = append(docs, doc)
					}
				}
				return lessonsLoadedMsg{documents: docs, offline: true}
			}
		}
		return lessonsLoadedMsg{err: err}
	}
	return tea.Batch(fetch, s.tickSpinner())
}

func (s *LessonsScreen) tickSpinner() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonsLoadedMsg:
		s.loading = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.documents = msg.documents
		s.offline = msg.offline
		return s, nil

	case spinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.spinner++
		return s, s.tickSpinner()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.documents)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.documents) {
				doc := s.documents[s.selected]
				next := contentview.New(s.client, s.generator, s.st, &doc)
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: next}
				}
			}
		}
	}
	return s, nil
}

func (s *LessonsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.loading {
		frame := spinnerFrames[s.spinner%len(spinnerFrames)]
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render(frame+" Loading your lessons..."))
	}
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(s.errMsg))
	}
	if len(s.documents) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No lessons yet. Generate one from the home menu!"))
	}

	var b strings.Builder
	if s.offline {
		b.WriteString(theme.Hint.Render("offline: showing locally cached lessons"))
		b.WriteString("\n\n")
	}
	for i, doc := range s.documents {
		line := doc.Topic
		if doc.DifficultyLevel != "" {
			line += lipgloss.NewStyle().Foreground(theme.Accent).Render("  [" + doc.DifficultyLevel + "]")
		}
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
