package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/store"
	"github.com/abhisek/lernix/internal/ui/components"
	"github.com/abhisek/lernix/internal/ui/layout"
	"github.com/abhisek/lernix/internal/ui/theme"
)

// historyLoadedMsg delivers the attempt history.
type historyLoadedMsg struct {
	attempts []store.Attempt
	stats    store.AttemptStats
	err      error
}

// HistoryScreen lists past quiz attempts with aggregate stats.
type HistoryScreen struct {
	st *store.Store

	attempts []store.Attempt
	stats    store.AttemptStats
	offset   int
	loading  bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the attempt history screen.
func New(st *store.Store) *HistoryScreen {
	return &HistoryScreen{st: st, loading: true}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Init() tea.Cmd {
	st := s.st
	return func() tea.Msg {
		ctx := context.Background()
		repo := st.AttemptRepo()

		attempts, err := repo.List(ctx, 0)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		stats, err := repo.Stats(ctx)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		return historyLoadedMsg{attempts: attempts, stats: stats}
	}
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loading = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.attempts = msg.attempts
		s.stats = msg.stats
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading..."))
	}
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(s.errMsg))
	}
	if len(s.attempts) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No quizzes taken yet"))
	}

	var b strings.Builder

	statsLine := fmt.Sprintf("Tests: %d    Average: %.0f%%    Best: %.0f%%",
		s.stats.TestsTaken, s.stats.AveragePct, s.stats.BestPct)
	b.WriteString(lipgloss.NewStyle().Width(cw - 6).Align(lipgloss.Center).Foreground(theme.TextDim).Render(statsLine))
	b.WriteString("\n\n")

	visible := height - 10
	if visible < 3 {
		visible = 3
	}
	maxOffset := len(s.attempts) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}

	for i := s.offset; i < len(s.attempts) && i-s.offset < visible; i++ {
		a := s.attempts[i]

		pct := 0.0
		if a.Total > 0 {
			pct = float64(a.Score) / float64(a.Total) * 100
		}
		scoreStyle := theme.Correct
		if pct < 50 {
			scoreStyle = theme.Incorrect
		}

		topic := a.Topic
		if len(topic) > 32 {
			topic = topic[:29] + "..."
		}
		line := fmt.Sprintf("%-34s %s  %s",
			topic,
			scoreStyle.Render(fmt.Sprintf("%2d/%2d", a.Score, a.Total)),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(a.TakenAt.Format("Jan 2 15:04")))
		b.WriteString(line)
		b.WriteString("\n")
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
