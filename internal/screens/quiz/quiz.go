package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	qz "github.com/abhisek/lernix/internal/quiz"
	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/screens/score"
	"github.com/abhisek/lernix/internal/store"
	"github.com/abhisek/lernix/internal/ui/components"
	"github.com/abhisek/lernix/internal/ui/layout"
	"github.com/abhisek/lernix/internal/ui/theme"
)

// attemptSavedMsg confirms the attempt row was written.
type attemptSavedMsg struct {
	err error
}

// QuizScreen pages through a question set, one question at a time, and
// submits the whole set for grading at the end.
type QuizScreen struct {
	st         *store.Store
	topic      string
	controller *qz.Controller
	started    time.Time

	current int
	choice  components.MultiChoice

	confirmSubmit bool
	confirmQuit   bool
	errMsg        string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz over the given questions.
func New(st *store.Store, topic string, questions []qz.Question) *QuizScreen {
	controller := qz.NewController()
	controller.LoadQuestions(questions)

	s := &QuizScreen{
		st:         st,
		topic:      topic,
		controller: controller,
		started:    time.Now(),
	}
	s.choice = s.choiceFor(0)
	return s
}

// choiceFor builds the selector for question i, restoring any earlier
// selection.
func (s *QuizScreen) choiceFor(i int) components.MultiChoice {
	questions := s.controller.Questions()
	if i < 0 || i >= len(questions) {
		return components.MultiChoice{}
	}
	q := questions[i]
	mc := components.NewMultiChoice(q.Prompt, q.Options[:])
	if selected, ok := s.controller.Selection(i); ok {
		mc.SetChosen(selected)
	}
	return mc
}

func (s *QuizScreen) Title() string {
	return "Quiz: " + s.topic
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

// ConsumesEsc reports that the quiz owns esc for its abandon flow.
func (s *QuizScreen) ConsumesEsc() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmSubmit || s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/A-D", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Abandon"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptSavedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.confirmSubmit {
		switch key {
		case "y", "Y":
			s.confirmSubmit = false
			return s.submit()
		case "n", "N", "esc":
			s.confirmSubmit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "left", "h":
		if s.current > 0 {
			s.current--
			s.choice = s.choiceFor(s.current)
		}
		return s, nil
	case "right", "l", "n":
		if s.current < s.controller.Len()-1 {
			s.current++
			s.choice = s.choiceFor(s.current)
		}
		return s, nil
	case "s":
		if s.controller.Complete() {
			return s.submit()
		}
		s.confirmSubmit = true
		return s, nil
	}

	prev := s.choice.Chosen
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Chosen != prev && s.choice.Chosen >= 0 {
		if err := s.controller.SelectAnswer(s.current, s.choice.ChosenOption()); err != nil {
			s.errMsg = err.Error()
		}
	}
	return s, cmd
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	result, err := s.controller.Submit()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	var saveCmd tea.Cmd
	if s.st != nil {
		attempt := store.Attempt{
			ID:      uuid.New().String(),
			Topic:   s.topic,
			Score:   result.Score,
			Total:   result.Total,
			TakenAt: time.Now(),
		}
		repo := s.st.AttemptRepo()
		saveCmd = func() tea.Msg {
			return attemptSavedMsg{err: repo.Record(context.Background(), attempt)}
		}
	}

	st, topic, questions := s.st, s.topic, s.controller.Questions()
	retake := func() screen.Screen {
		return New(st, topic, questions)
	}
	next := score.New(s.topic, s.controller, time.Since(s.started), retake)
	replaceCmd := func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
	return s, tea.Batch(saveCmd, replaceCmd)
}

func (s *QuizScreen) View(width, height int) string {
	if s.confirmQuit {
		return confirmBox(width, height, "Abandon this quiz?", "Your answers will be lost.")
	}
	if s.confirmSubmit {
		unanswered := s.controller.Len() - s.controller.Answered()
		return confirmBox(width, height,
			"Submit with unanswered questions?",
			fmt.Sprintf("%d questions are unanswered and will be graded incorrect.", unanswered))
	}

	cw := components.ContentWidth(width)

	var b strings.Builder

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", s.current+1, s.controller.Len()),
		float64(s.controller.Answered())/float64(s.controller.Len()),
		false, cw-4)
	b.WriteString(progress.View())
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func confirmBox(width, height int, title, detail string) string {
	content := theme.Title.Render(title) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render("[Y]es    [N]o")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(content, 50))
}
