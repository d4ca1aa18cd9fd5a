package chat

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/api"
	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/ui/components"
	"github.com/abhisek/lernix/internal/ui/layout"
	"github.com/abhisek/lernix/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// replyMsg delivers the assistant's answer to a question.
type replyMsg struct {
	seq   int
	reply string
	err   error
}

type spinnerTickMsg time.Time

// turn is one question/answer exchange in the transcript.
type turn struct {
	question string
	answer   string
}

// ChatScreen is the study assistant conversation, grounded in the lesson
// the user came from.
type ChatScreen struct {
	client   *api.Client
	document *api.ContentDocument

	input   components.TextInput
	turns   []turn
	waiting bool
	seq     int
	spinner int
	errMsg  string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a chat grounded in document (may be nil for a free-form
// conversation).
func New(client *api.Client, document *api.ContentDocument) *ChatScreen {
	return &ChatScreen{
		client:   client,
		document: document,
		input:    components.NewTextInput("", "Ask anything about this lesson...", 500),
	}
}

func (s *ChatScreen) Title() string {
	return "Study chat"
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.waiting = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			// Drop the unanswered turn so the transcript holds only
			// complete exchanges.
			if len(s.turns) > 0 && s.turns[len(s.turns)-1].answer == "" {
				s.turns = s.turns[:len(s.turns)-1]
			}
			return s, nil
		}
		if len(s.turns) > 0 {
			s.turns[len(s.turns)-1].answer = msg.reply
		}
		return s, nil

	case spinnerTickMsg:
		if !s.waiting {
			return s, nil
		}
		s.spinner++
		return s, s.tickSpinner()

	case tea.KeyMsg:
		if msg.String() == "enter" && !s.waiting {
			return s, s.ask()
		}
	}

	if !s.waiting {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ChatScreen) tickSpinner() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *ChatScreen) ask() tea.Cmd {
	question := strings.TrimSpace(s.input.Value())
	if question == "" {
		return nil
	}

	s.errMsg = ""
	s.waiting = true
	s.seq++
	s.turns = append(s.turns, turn{question: question})
	s.input.Model.SetValue("")

	seq := s.seq
	client := s.client
	req := api.ChatRequest{Question: question, Content: s.document}

	send := func() tea.Msg {
		reply, err := client.Chat(context.Background(), req)
		return replyMsg{seq: seq, reply: reply, err: err}
	}
	return tea.Batch(send, s.tickSpinner())
}

func (s *ChatScreen) View(width, height int) string {
	textWidth := width - 8
	if textWidth < 20 {
		textWidth = 20
	}
	wrap := lipgloss.NewStyle().Width(textWidth)

	var lines []string
	push := func(rendered string) {
		lines = append(lines, strings.Split(rendered, "\n")...)
	}

	for _, t := range s.turns {
		push(wrap.Foreground(theme.Primary).Bold(true).Render("  You: " + t.question))
		if t.answer != "" {
			push(wrap.Foreground(theme.Text).Render("  Lernix: " + t.answer))
		} else if s.waiting {
			frame := spinnerFrames[s.spinner%len(spinnerFrames)]
			push(theme.Hint.Render("  Lernix: " + frame + " thinking..."))
		}
		lines = append(lines, "")
	}

	if s.errMsg != "" {
		push(theme.Incorrect.Render("  " + s.errMsg))
		lines = append(lines, "")
	}

	// Keep the tail of the transcript in view above the input line.
	inputHeight := 3
	visible := height - inputHeight
	if visible < 1 {
		visible = 1
	}
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	transcript := strings.Join(lines, "\n")
	input := "  " + s.input.View()

	gap := visible - len(strings.Split(transcript, "\n"))
	if gap < 0 {
		gap = 0
	}

	return transcript + strings.Repeat("\n", gap+1) + input
}
