package videos

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

// videosLoadedMsg delivers the fetched recommendations.
type videosLoadedMsg struct {
	videos []api.Video
	err    error
}

type spinnerTickMsg time.Time

// VideosScreen lists recommended videos for a topic.
type VideosScreen struct {
	client *api.Client
	topic  string

	videos   []api.Video
	selected int
	loading  bool
	spinner  int
	errMsg   string
}

var _ screen.Screen = (*VideosScreen)(nil)
var _ screen.KeyHintProvider = (*VideosScreen)(nil)

// New creates a video recommendation screen for the topic.
func New(client *api.Client, topic string) *VideosScreen {
	return &VideosScreen{
		client:  client,
		topic:   topic,
		loading: true,
	}
}

func (s *VideosScreen) Title() string {
	return "Videos: " + s.topic
}

func (s *VideosScreen) Init() tea.Cmd {
	client, topic := s.client, s.topic
	fetch := func() tea.Msg {
		videos, err := client.VideoLinks(context.Background(), topic)
		return videosLoadedMsg{videos: videos, err: err}
	}
	return tea.Batch(fetch, s.tickSpinner())
}

func (s *VideosScreen) tickSpinner() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *VideosScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *VideosScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case videosLoadedMsg:
		s.loading = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.videos = msg.videos
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
			if s.selected < len(s.videos)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *VideosScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if s.loading {
		frame := spinnerFrames[s.spinner%len(spinnerFrames)]
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render(frame+" Finding videos..."))
	}
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(s.errMsg))
	}
	if len(s.videos) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No videos found for this topic"))
	}

	var b strings.Builder
	for i, v := range s.videos {
		title := v.Title
		meta := v.Channel
		if v.Duration != "" {
			meta += " · " + v.Duration
		}

		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ " + title))
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + meta))
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Underline(true).Render("    " + v.URL))
		} else {
			b.WriteString(theme.Unselected.Render("  " + title))
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + meta))
		}
		b.WriteString("\n\n")
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
