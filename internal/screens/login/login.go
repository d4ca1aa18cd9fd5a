package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/api"
	"github.com/abhisek/lernix/internal/auth"
	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/ui/components"
	"github.com/abhisek/lernix/internal/ui/layout"
	"github.com/abhisek/lernix/internal/ui/theme"
)

// Focusable fields, in tab order.
const (
	fieldUsername = iota
	fieldPassword
	fieldRemember
	fieldSubmit
	fieldRegister
	fieldCount
)

// loginDoneMsg reports the outcome of a sign-in attempt.
type loginDoneMsg struct {
	session *api.Session
	err     error
}

// LoginScreen is the sign-in form.
type LoginScreen struct {
	client  *api.Client
	manager *auth.Manager

	homeFactory     func() screen.Screen
	registerFactory func() screen.Screen

	username components.TextInput
	password components.TextInput
	remember bool
	focus    int

	busy   bool
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the sign-in screen.
func New(client *api.Client, manager *auth.Manager, homeFactory, registerFactory func() screen.Screen) *LoginScreen {
	s := &LoginScreen{
		client:          client,
		manager:         manager,
		homeFactory:     homeFactory,
		registerFactory: registerFactory,
		username:        components.NewTextInput("Username", "", 64),
		password:        components.NewPasswordInput("Password"),
	}
	s.password.Blur()
	return s
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.username.Focus()
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		return s.handleDone(msg)

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			switch s.focus {
			case fieldRemember:
				s.remember = !s.remember
				return s, nil
			case fieldRegister:
				next := s.registerFactory()
				return s, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: next}
				}
			default:
				return s, s.submit()
			}
		case " ":
			if s.focus == fieldRemember {
				s.remember = !s.remember
				return s, nil
			}
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldUsername:
		s.username, cmd = s.username.Update(msg)
	case fieldPassword:
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.username.Blur()
	s.password.Blur()
	switch f {
	case fieldUsername:
		return s.username.Focus()
	case fieldPassword:
		return s.password.Focus()
	}
	return nil
}

func (s *LoginScreen) submit() tea.Cmd {
	s.errMsg = ""
	s.username.ClearError()
	s.password.ClearError()

	creds := api.Credentials{
		Username: strings.TrimSpace(s.username.Value()),
		Password: s.password.Value(),
	}
	s.busy = true
	client := s.client
	return func() tea.Msg {
		session, err := client.LogIn(context.Background(), creds)
		return loginDoneMsg{session: session, err: err}
	}
}

func (s *LoginScreen) handleDone(msg loginDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = false

	if msg.err != nil {
		var valErr *api.ValidationError
		if errors.As(msg.err, &valErr) {
			for field, msgs := range valErr.Fields {
				if len(msgs) == 0 {
					continue
				}
				switch field {
				case "username":
					s.username.SetError(msgs[0])
				case "password":
					s.password.SetError(msgs[0])
				default:
					s.errMsg = msgs[0]
				}
			}
			return s, nil
		}
		var apiErr *api.APIError
		if errors.As(msg.err, &apiErr) && apiErr.Status == 401 {
			s.errMsg = "Invalid username or password"
			return s, nil
		}
		s.errMsg = msg.err.Error()
		return s, nil
	}

	if err := s.manager.Login(context.Background(), msg.session.Token, msg.session.User, s.remember); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	next := s.homeFactory()
	return s, func() tea.Msg {
		return router.ResetScreenMsg{Screen: next}
	}
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Welcome back"))
	b.WriteString("\n\n")
	b.WriteString(s.username.View())
	b.WriteString("\n\n")
	b.WriteString(s.password.View())
	b.WriteString("\n\n")

	check := "[ ]"
	if s.remember {
		check = "[x]"
	}
	rememberLine := check + " Remember me"
	if s.focus == fieldRemember {
		b.WriteString(theme.Selected.Render("▸ " + rememberLine))
	} else {
		b.WriteString(theme.Unselected.Render("  " + rememberLine))
	}
	b.WriteString("\n\n")

	if s.busy {
		b.WriteString(theme.Hint.Render("Signing in..."))
	} else {
		submit := components.NewButton("Sign in", s.focus == fieldSubmit, nil)
		register := components.NewButton("Create account", s.focus == fieldRegister, nil)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, submit.View(), "  ", register.View()))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
