package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/api"
	"github.com/abhisek/lernix/internal/auth"
	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/screens/home"
	"github.com/abhisek/lernix/internal/screens/login"
	"github.com/abhisek/lernix/internal/screens/register"
	"github.com/abhisek/lernix/internal/screens/welcome"
	"github.com/abhisek/lernix/internal/store"
	"github.com/abhisek/lernix/internal/ui/layout"
)

// Options carries the application's injected dependencies.
type Options struct {
	Client    *api.Client
	Generator api.QuestionGenerator
	Auth      *auth.Manager
	Store     *store.Store
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	m := AppModel{opts: opts}

	restore := func() bool {
		opts.Auth.Restore(context.Background())
		return opts.Auth.Authenticated()
	}
	welcomeScreen := welcome.New(restore, m.homeFactory(), m.loginFactory())
	m.router = router.New(welcomeScreen)
	return m
}

// homeFactory builds the home screen with the app's dependencies.
func (m AppModel) homeFactory() func() screen.Screen {
	opts := m.opts
	var factory func() screen.Screen
	factory = func() screen.Screen {
		loginFactory := func() screen.Screen {
			return login.New(opts.Client, opts.Auth, factory, registerFactoryFor(opts, factory))
		}
		return home.New(opts.Client, opts.Generator, opts.Auth, opts.Store, loginFactory)
	}
	return factory
}

// loginFactory builds the sign-in screen, closing the login/register/home
// cycle.
func (m AppModel) loginFactory() func() screen.Screen {
	opts := m.opts
	homeFactory := m.homeFactory()
	var factory func() screen.Screen
	factory = func() screen.Screen {
		return login.New(opts.Client, opts.Auth, homeFactory, registerFactoryFor(opts, homeFactory))
	}
	return factory
}

// registerFactoryFor builds the account creation screen wired back to the
// given home factory.
func registerFactoryFor(opts Options, homeFactory func() screen.Screen) func() screen.Screen {
	return func() screen.Screen {
		loginFactory := func() screen.Screen {
			return login.New(opts.Client, opts.Auth, homeFactory, registerFactoryFor(opts, homeFactory))
		}
		return register.New(opts.Client, opts.Auth, homeFactory, loginFactory)
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens with their own esc handling (confirmations,
			// edit modes, in-flight cancels) consume it; otherwise
			// esc pops.
			if m.router.Depth() > 1 {
				if c, ok := m.router.Active().(escConsumer); !ok || !c.ConsumesEsc() {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// escConsumer marks screens that handle esc themselves.
type escConsumer interface {
	ConsumesEsc() bool
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	// The welcome splash renders frameless.
	if title == "" {
		v.SetContent(m.router.View(m.width, m.height))
		return v
	}

	var user string
	if p := m.opts.Auth.Profile(); p != nil {
		user = p.DisplayName()
	}
	header := layout.RenderHeader(title, user, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hinted, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hinted.KeyHints(), footerHints...)
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
