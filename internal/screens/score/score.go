package score

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/lernix/internal/quiz"
	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/ui/components"
	"github.com/abhisek/lernix/internal/ui/layout"
	"github.com/abhisek/lernix/internal/ui/theme"
)

// ScoreScreen displays a graded quiz with a per-question review.
type ScoreScreen struct {
	topic      string
	controller *qz.Controller
	duration   time.Duration
	retake     func() screen.Screen

	offset int
}

var _ screen.Screen = (*ScoreScreen)(nil)
var _ screen.KeyHintProvider = (*ScoreScreen)(nil)

// New creates a score view for a submitted quiz. retake builds a fresh
// quiz over the same questions.
func New(topic string, controller *qz.Controller, duration time.Duration, retake func() screen.Screen) *ScoreScreen {
	return &ScoreScreen{
		topic:      topic,
		controller: controller,
		duration:   duration,
		retake:     retake,
	}
}

func (s *ScoreScreen) Init() tea.Cmd {
	return nil
}

func (s *ScoreScreen) Title() string {
	return "Score: " + s.topic
}

func (s *ScoreScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Review"},
		{Key: "R", Description: "Retake"},
		{Key: "Esc", Description: "Back to lesson"},
	}
}

func (s *ScoreScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "r":
		if s.retake != nil {
			next := s.retake()
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: next}
			}
		}
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ScoreScreen) View(width, height int) string {
	result := s.controller.Result()
	if result == nil {
		return ""
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Quiz complete!"))
	b.WriteString("\n\n")

	pct := 0.0
	if result.Total > 0 {
		pct = float64(result.Score) / float64(result.Total)
	}
	scoreStyle := theme.Correct
	if pct < 0.5 {
		scoreStyle = theme.Incorrect
	}
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(
		scoreStyle.Render(fmt.Sprintf("%d / %d", result.Score, result.Total)) +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  (%.0f%%)", pct*100))))
	b.WriteString("\n")

	mins := int(s.duration.Minutes())
	secs := int(s.duration.Seconds()) % 60
	meta := fmt.Sprintf("Time: %d:%02d", mins, secs)
	if result.Unscorable > 0 {
		meta += fmt.Sprintf("    %d could not be graded", result.Unscorable)
	}
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).Render(meta))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", pct, true, cw-8)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(s.renderReview(cw, height))

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// renderReview lists each question with its verdict and the correct
// answer for misses.
func (s *ScoreScreen) renderReview(cw, height int) string {
	result := s.controller.Result()
	questions := s.controller.Questions()

	visible := height - 16
	if visible < 3 {
		visible = 3
	}
	maxOffset := len(questions) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}

	var lines []string
	for i := s.offset; i < len(questions) && i-s.offset < visible; i++ {
		q := questions[i]

		mark := theme.Incorrect.Render("✗")
		if result.Correct[i] {
			mark = theme.Correct.Render("✓")
		}

		selected, answered := s.controller.Selection(i)
		detail := ""
		switch {
		case !q.Scorable():
			detail = theme.Hint.Render(" (not graded)")
		case !result.Correct[i] && answered:
			detail = lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("  you: %s · correct: %s", selected, q.CorrectText))
		case !answered:
			detail = lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("  unanswered · correct: " + q.CorrectText)
		}

		prompt := q.Prompt
		if len(prompt) > cw-12 && cw > 15 {
			prompt = prompt[:cw-15] + "..."
		}
		lines = append(lines, fmt.Sprintf("%s %d. %s%s", mark, i+1,
			lipgloss.NewStyle().Foreground(theme.Text).Render(prompt), detail))
	}

	return strings.Join(lines, "\n")
}
