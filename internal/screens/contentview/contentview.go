package contentview

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/api"
	"github.com/abhisek/lernix/internal/quiz"
	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/screens/chat"
	quizscreen "github.com/abhisek/lernix/internal/screens/quiz"
	"github.com/abhisek/lernix/internal/screens/videos"
	"github.com/abhisek/lernix/internal/store"
	"github.com/abhisek/lernix/internal/ui/layout"
	"github.com/abhisek/lernix/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// questionsReadyMsg delivers a generated question set. seq drops stale
// replies after the user cancels and starts over.
type questionsReadyMsg struct {
	seq       int
	questions []quiz.Question
	err       error
}

// pdfSavedMsg reports the outcome of a lesson PDF export.
type pdfSavedMsg struct {
	path string
	err  error
}

type spinnerTickMsg time.Time

// ContentScreen displays a lesson document and launches the follow-up
// actions: quiz, videos, chat, PDF export.
type ContentScreen struct {
	client    *api.Client
	generator api.QuestionGenerator
	st        *store.Store
	document  *api.ContentDocument

	offset  int
	busy    bool
	seq     int
	spinner int
	status  string
	errMsg  string
}

var _ screen.Screen = (*ContentScreen)(nil)
var _ screen.KeyHintProvider = (*ContentScreen)(nil)

// New creates a lesson view for the given document.
func New(client *api.Client, generator api.QuestionGenerator, st *store.Store, document *api.ContentDocument) *ContentScreen {
	return &ContentScreen{
		client:    client,
		generator: generator,
		st:        st,
		document:  document,
	}
}

func (s *ContentScreen) Title() string {
	if s.document == nil {
		return "Lesson"
	}
	return s.document.Topic
}

func (s *ContentScreen) Init() tea.Cmd {
	return nil
}

// ConsumesEsc reports whether esc cancels an in-flight request.
func (s *ContentScreen) ConsumesEsc() bool {
	return s.busy
}

func (s *ContentScreen) KeyHints() []layout.KeyHint {
	if s.busy {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "T", Description: "Take test"},
		{Key: "V", Description: "Videos"},
		{Key: "C", Description: "Chat"},
		{Key: "P", Description: "Save PDF"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ContentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		next := quizscreen.New(s.st, s.document.Topic, msg.questions)
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}

	case pdfSavedMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.status = "Saved to " + msg.path
		}
		return s, nil

	case spinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.spinner++
		return s, s.tickSpinner()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *ContentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		if msg.String() == "esc" {
			s.seq++
			s.busy = false
		}
		return s, nil
	}

	switch msg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset -= 10
		if s.offset < 0 {
			s.offset = 0
		}
	case "pgdown":
		s.offset += 10
	case "t":
		return s, s.startQuiz()
	case "v":
		next := videos.New(s.client, s.document.Topic)
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}
	case "c":
		next := chat.New(s.client, s.document)
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}
	case "p":
		return s, s.savePDF()
	}
	return s, nil
}

func (s *ContentScreen) tickSpinner() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *ContentScreen) startQuiz() tea.Cmd {
	s.busy = true
	s.errMsg = ""
	s.status = ""
	s.seq++

	seq := s.seq
	generator := s.generator
	doc := s.document

	fetch := func() tea.Msg {
		questions, err := generator.GenerateQuestions(context.Background(), api.QuestionRequest{
			Content: doc,
		})
		if err != nil {
			return questionsReadyMsg{seq: seq, err: err}
		}
		if len(questions) == 0 {
			return questionsReadyMsg{seq: seq, err: fmt.Errorf("no questions could be generated for this lesson")}
		}
		return questionsReadyMsg{seq: seq, questions: questions}
	}
	return tea.Batch(fetch, s.tickSpinner())
}

func (s *ContentScreen) savePDF() tea.Cmd {
	s.busy = true
	s.errMsg = ""
	s.status = ""

	client := s.client
	doc := s.document

	save := func() tea.Msg {
		raw, err := client.GenerateLessonPDF(context.Background(), doc)
		if err != nil {
			return pdfSavedMsg{err: err}
		}
		path := slugify(doc.Topic) + ".pdf"
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return pdfSavedMsg{err: err}
		}
		return pdfSavedMsg{path: path}
	}
	return tea.Batch(save, s.tickSpinner())
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "lesson"
	}
	return out
}

func (s *ContentScreen) View(width, height int) string {
	if s.document == nil {
		return ""
	}

	lines := s.renderDocument(width)

	// Clamp the scroll to the document.
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	maxOffset := len(lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}

	end := s.offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	body := strings.Join(lines[s.offset:end], "\n")

	var footer string
	switch {
	case s.busy:
		frame := spinnerFrames[s.spinner%len(spinnerFrames)]
		footer = theme.Hint.Render(frame + " Working...")
	case s.errMsg != "":
		footer = theme.Incorrect.Render(s.errMsg)
	case s.status != "":
		footer = theme.Correct.Render(s.status)
	}

	if footer != "" {
		return body + "\n\n" + "  " + footer
	}
	return body
}

// renderDocument flattens the lesson into styled lines for scrolling.
func (s *ContentScreen) renderDocument(width int) []string {
	doc := s.document
	textWidth := width - 6
	if textWidth < 20 {
		textWidth = 20
	}
	wrap := lipgloss.NewStyle().Width(textWidth)

	var lines []string
	push := func(rendered string) {
		lines = append(lines, strings.Split(rendered, "\n")...)
	}

	push("  " + theme.Title.Render(doc.Topic) + "  " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render("["+doc.DifficultyLevel+"]"))
	lines = append(lines, "")
	push(wrap.Foreground(theme.TextDim).Italic(true).Render("  " + doc.Summary))
	lines = append(lines, "")

	for i, section := range doc.Sections {
		heading := fmt.Sprintf("  %d. %s", i+1, section.Title)
		push(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(heading))
		lines = append(lines, "")
		push(wrap.Foreground(theme.Text).Render("  " + section.Content))
		if len(section.KeyPoints) > 0 {
			lines = append(lines, "")
			push(lipgloss.NewStyle().Foreground(theme.Accent).Render("  Key points"))
			for _, kp := range section.KeyPoints {
				push(wrap.Foreground(theme.Text).Render("   • " + kp))
			}
		}
		lines = append(lines, "")
	}

	if len(doc.References) > 0 {
		push(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  References"))
		for _, ref := range doc.References {
			push(wrap.Foreground(theme.TextDim).Render("   • " + ref))
		}
	}

	return lines
}
