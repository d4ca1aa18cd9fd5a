package register

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
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldSubmit
	fieldBack
	fieldCount
)

// signupDoneMsg reports the outcome of an account creation attempt.
type signupDoneMsg struct {
	session *api.Session
	err     error
}

// RegisterScreen is the account creation form.
type RegisterScreen struct {
	client  *api.Client
	manager *auth.Manager

	homeFactory  func() screen.Screen
	loginFactory func() screen.Screen

	inputs [4]components.TextInput
	focus  int

	busy   bool
	errMsg string
}

var _ screen.Screen = (*RegisterScreen)(nil)
var _ screen.KeyHintProvider = (*RegisterScreen)(nil)

// New creates the account creation screen.
func New(client *api.Client, manager *auth.Manager, homeFactory, loginFactory func() screen.Screen) *RegisterScreen {
	s := &RegisterScreen{
		client:       client,
		manager:      manager,
		homeFactory:  homeFactory,
		loginFactory: loginFactory,
	}
	s.inputs[fieldUsername] = components.NewTextInput("Username", "", 64)
	s.inputs[fieldEmail] = components.NewTextInput("Email", "you@example.com", 128)
	s.inputs[fieldPassword] = components.NewPasswordInput("Password")
	s.inputs[fieldConfirm] = components.NewPasswordInput("Confirm password")
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	return s
}

func (s *RegisterScreen) Title() string {
	return "Create account"
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.inputs[fieldUsername].Focus()
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Create account"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signupDoneMsg:
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
			if s.focus == fieldBack {
				next := s.loginFactory()
				return s, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: next}
				}
			}
			return s, s.submit()
		}
	}

	if s.focus < len(s.inputs) {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *RegisterScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	if f < len(s.inputs) {
		return s.inputs[f].Focus()
	}
	return nil
}

func (s *RegisterScreen) submit() tea.Cmd {
	s.errMsg = ""
	for i := range s.inputs {
		s.inputs[i].ClearError()
	}

	if s.inputs[fieldPassword].Value() != s.inputs[fieldConfirm].Value() {
		s.inputs[fieldConfirm].SetError("passwords do not match")
		return nil
	}

	in := api.RegisterInput{
		Username: strings.TrimSpace(s.inputs[fieldUsername].Value()),
		Email:    strings.TrimSpace(s.inputs[fieldEmail].Value()),
		Password: s.inputs[fieldPassword].Value(),
	}
	s.busy = true
	client := s.client
	return func() tea.Msg {
		session, err := client.Register(context.Background(), in)
		return signupDoneMsg{session: session, err: err}
	}
}

func (s *RegisterScreen) handleDone(msg signupDoneMsg) (screen.Screen, tea.Cmd) {
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
					s.inputs[fieldUsername].SetError(msgs[0])
				case "email":
					s.inputs[fieldEmail].SetError(msgs[0])
				case "password":
					s.inputs[fieldPassword].SetError(msgs[0])
				default:
					s.errMsg = msgs[0]
				}
			}
			return s, nil
		}
		s.errMsg = msg.err.Error()
		return s, nil
	}

	// A fresh account signs straight in; remember defaults to off.
	if err := s.manager.Login(context.Background(), msg.session.Token, msg.session.User, false); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	next := s.homeFactory()
	return s, func() tea.Msg {
		return router.ResetScreenMsg{Screen: next}
	}
}

func (s *RegisterScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Create your account"))
	b.WriteString("\n\n")
	for i := range s.inputs {
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n\n")
	}

	if s.busy {
		b.WriteString(theme.Hint.Render("Creating account..."))
	} else {
		submit := components.NewButton("Create account", s.focus == fieldSubmit, nil)
		back := components.NewButton("Back to sign in", s.focus == fieldBack, nil)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, submit.View(), "  ", back.View()))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
