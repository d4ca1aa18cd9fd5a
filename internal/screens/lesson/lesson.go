package lesson

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

// contentReadyMsg delivers a generated (or cached) lesson document. seq
// ties the response to the request that produced it; stale responses are
// dropped.
type contentReadyMsg struct {
	seq      int
	document *api.ContentDocument
	err      error
}

type spinnerTickMsg time.Time

// LessonScreen is the topic and difficulty form that produces a lesson.
type LessonScreen struct {
	client    *api.Client
	generator api.QuestionGenerator
	st        *store.Store

	topic      components.TextInput
	difficulty int
	onTopic    bool

	busy    bool
	seq     int
	spinner int
	errMsg  string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates the lesson request form.
func New(client *api.Client, generator api.QuestionGenerator, st *store.Store) *LessonScreen {
	return &LessonScreen{
		client:     client,
		generator:  generator,
		st:         st,
		topic:      components.NewTextInput("Topic", "e.g. Photosynthesis", 120),
		difficulty: 1, // intermediate
		onTopic:    true,
	}
}

func (s *LessonScreen) Title() string {
	return "New lesson"
}

func (s *LessonScreen) Init() tea.Cmd {
	return s.topic.Focus()
}

// ConsumesEsc reports whether esc cancels an in-flight generation.
func (s *LessonScreen) ConsumesEsc() bool {
	return s.busy
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.busy {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Difficulty"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentReadyMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		next := contentview.New(s.client, s.generator, s.st, msg.document)
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}

	case spinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.spinner++
		return s, s.tickSpinner()

	case tea.KeyMsg:
		if s.busy {
			if msg.String() == "esc" {
				// Abandon the in-flight request; its reply will be stale.
				s.seq++
				s.busy = false
			}
			return s, nil
		}
		switch msg.String() {
		case "tab", "down", "up":
			s.onTopic = !s.onTopic
			if s.onTopic {
				return s, s.topic.Focus()
			}
			s.topic.Blur()
			return s, nil
		case "left":
			if !s.onTopic && s.difficulty > 0 {
				s.difficulty--
			}
			return s, nil
		case "right":
			if !s.onTopic && s.difficulty < len(api.Difficulties)-1 {
				s.difficulty++
			}
			return s, nil
		case "enter":
			return s, s.generate()
		}
	}

	if s.onTopic {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) tickSpinner() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *LessonScreen) generate() tea.Cmd {
	topic := strings.TrimSpace(s.topic.Value())
	if topic == "" {
		s.topic.SetError("enter a topic to study")
		return nil
	}
	s.topic.ClearError()
	s.errMsg = ""
	s.busy = true
	s.seq++

	seq := s.seq
	difficulty := api.Difficulties[s.difficulty]
	client := s.client
	st := s.st

	fetch := func() tea.Msg {
		ctx := context.Background()

		// Serve from the local cache when this exact lesson was
		// generated before.
		if st != nil {
			if entry, err := st.ContentRepo().Get(ctx, topic, difficulty); err == nil && entry != nil {
				var doc api.ContentDocument
				if err := json.Unmarshal(entry.Document, &doc); err == nil {
					return contentReadyMsg{seq: seq, document: &doc}
				}
			}
		}

		doc, err := client.GenerateContent(ctx, topic, difficulty)
		if err != nil {
			return contentReadyMsg{seq: seq, err: err}
		}

		if st != nil {
			if raw, err := json.Marshal(doc); err == nil {
				_ = st.ContentRepo().Put(ctx, store.ContentEntry{
					Topic:      topic,
					Difficulty: difficulty,
					Document:   raw,
					FetchedAt:  time.Now(),
				})
			}
		}
		return contentReadyMsg{seq: seq, document: doc}
	}

	return tea.Batch(fetch, s.tickSpinner())
}

func (s *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("What do you want to learn?"))
	b.WriteString("\n\n")
	b.WriteString(s.topic.View())
	b.WriteString("\n\n")
	b.WriteString(s.renderDifficulty())

	if s.busy {
		frame := spinnerFrames[s.spinner%len(spinnerFrames)]
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(frame + " Generating your lesson..."))
	} else if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *LessonScreen) renderDifficulty() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Difficulty")

	var parts []string
	for i, d := range api.Difficulties {
		if i == s.difficulty {
			parts = append(parts, theme.Selected.Render("● "+d))
		} else {
			parts = append(parts, theme.Unselected.Render("○ "+d))
		}
	}
	row := strings.Join(parts, "   ")
	if !s.onTopic {
		row = theme.Selected.Render("▸ ") + row
	} else {
		row = "  " + row
	}
	return label + "\n" + row
}
