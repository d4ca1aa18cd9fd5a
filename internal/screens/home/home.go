package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/api"
	"github.com/abhisek/lernix/internal/auth"
	"github.com/abhisek/lernix/internal/i18n"
	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/screens/history"
	"github.com/abhisek/lernix/internal/screens/lesson"
	"github.com/abhisek/lernix/internal/screens/mylessons"
	"github.com/abhisek/lernix/internal/screens/profile"
	"github.com/abhisek/lernix/internal/store"
	"github.com/abhisek/lernix/internal/ui/components"
	"github.com/abhisek/lernix/internal/ui/theme"
)

// HomeScreen is the main menu shown after sign-in.
type HomeScreen struct {
	manager *auth.Manager
	menu    components.Menu
	stats   store.AttemptStats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(client *api.Client, generator api.QuestionGenerator, manager *auth.Manager, st *store.Store, loginFactory func() screen.Screen) *HomeScreen {
	var stats store.AttemptStats
	if st != nil {
		if s, err := st.AttemptRepo().Stats(context.Background()); err == nil {
			stats = s
		}
	}

	items := []components.MenuItem{
		{Label: i18n.T("menu", "newLesson"), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: lesson.New(client, generator, st)}
			}
		}},
		{Label: i18n.T("menu", "myLessons"), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: mylessons.New(client, generator, st)}
			}
		}},
		{Label: i18n.T("menu", "history"), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(st)}
			}
		}},
		{Label: i18n.T("menu", "profile"), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: profile.New(client, manager)}
			}
		}},
		{Label: i18n.T("menu", "signOut"), Action: func() tea.Cmd {
			return func() tea.Msg {
				_ = manager.Logout(context.Background())
				return router.ResetScreenMsg{Screen: loginFactory()}
			}
		}},
		{Label: i18n.T("menu", "exit"), Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		manager: manager,
		menu:    components.NewMenu(items),
		stats:   stats,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	greeting := "Hello"
	if p := h.manager.Profile(); p != nil {
		greeting = "Hello, " + p.DisplayName()
	}

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render(greeting))
	sections = append(sections, h.renderStats(cw))
	sections = append(sections, components.Card(h.menu.View(), cw))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderStats(cw int) string {
	line := fmt.Sprintf("Tests taken: %d    Average: %.0f%%    Best: %.0f%%",
		h.stats.TestsTaken, h.stats.AveragePct, h.stats.BestPct)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(line)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
