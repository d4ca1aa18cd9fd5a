package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a multiple-choice selector. Unlike a self-grading
// widget, it only tracks which option is highlighted and which is chosen;
// grading happens when the whole quiz is submitted, so Reveal data is set
// by the owner afterwards.
type MultiChoice struct {
	Question string
	Options  []string

	// Highlighted is the option under the cursor.
	Highlighted int

	// Chosen is the locked-in option, -1 when none.
	Chosen int

	// Revealed switches the view to review mode.
	Revealed     bool
	CorrectIndex int
}

// NewMultiChoice creates a selector with nothing chosen.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		Chosen:       -1,
		CorrectIndex: -1,
	}
}

func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Direct letter keys
// (a-d) choose immediately.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Highlighted > 0 {
			m.Highlighted--
		}
	case "down", "j":
		if m.Highlighted < len(m.Options)-1 {
			m.Highlighted++
		}
	case "enter", " ":
		m.Chosen = m.Highlighted
	case "a", "b", "c", "d":
		idx := int(kmsg.String()[0] - 'a')
		if idx < len(m.Options) {
			m.Highlighted = idx
			m.Chosen = idx
		}
	}

	return m, nil
}

// View renders the selector, in review colors once revealed.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}

		marker := " "
		if i == m.Chosen {
			marker = "●"
		}
		prefix := "  "
		if i == m.Highlighted && !m.Revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, label, opt)

		switch {
		case m.Revealed && i == m.CorrectIndex:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case m.Revealed && i == m.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case m.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Highlighted:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}

// ChosenOption returns the text of the chosen option, or "" when none.
func (m MultiChoice) ChosenOption() string {
	if m.Chosen < 0 || m.Chosen >= len(m.Options) {
		return ""
	}
	return m.Options[m.Chosen]
}

// SetChosen restores a previous choice by option text (used when paging
// back to an already answered question).
func (m *MultiChoice) SetChosen(option string) {
	for i, opt := range m.Options {
		if opt == option {
			m.Chosen = i
			m.Highlighted = i
			return
		}
	}
	m.Chosen = -1
}

// Reveal switches to review mode with the correct option marked.
func (m *MultiChoice) Reveal(correctIndex int) {
	m.Revealed = true
	m.CorrectIndex = correctIndex
}
