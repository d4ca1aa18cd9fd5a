package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/api"
	"github.com/abhisek/lernix/internal/auth"
	"github.com/abhisek/lernix/internal/screen"
	"github.com/abhisek/lernix/internal/ui/components"
	"github.com/abhisek/lernix/internal/ui/layout"
	"github.com/abhisek/lernix/internal/ui/theme"
)

// Screen modes.
const (
	modeView = iota
	modeEdit
	modePassword
)

// profileLoadedMsg delivers a refreshed profile from the backend.
type profileLoadedMsg struct {
	profile *auth.Profile
	err     error
}

// profileSavedMsg reports the outcome of a profile update.
type profileSavedMsg struct {
	profile *auth.Profile
	err     error
}

// passwordChangedMsg reports the outcome of a password change.
type passwordChangedMsg struct {
	err error
}

// ProfileScreen shows and edits the signed-in user's account.
type ProfileScreen struct {
	client  *api.Client
	manager *auth.Manager

	mode   int
	inputs []components.TextInput
	focus  int

	busy   bool
	status string
	errMsg string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates the profile screen.
func New(client *api.Client, manager *auth.Manager) *ProfileScreen {
	return &ProfileScreen{
		client:  client,
		manager: manager,
	}
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

// Init refreshes the profile from the backend so stale local data never
// lingers past this screen.
func (s *ProfileScreen) Init() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		p, err := client.FetchProfile(context.Background())
		return profileLoadedMsg{profile: p, err: err}
	}
}

// ConsumesEsc reports whether esc cancels an edit instead of popping.
func (s *ProfileScreen) ConsumesEsc() bool {
	return s.mode != modeView
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeView:
		return []layout.KeyHint{
			{Key: "E", Description: "Edit"},
			{Key: "W", Description: "Change password"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.err == nil && msg.profile != nil {
			_ = s.manager.SetProfile(context.Background(), *msg.profile)
		}
		return s, nil

	case profileSavedMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = errorText(msg.err)
			return s, nil
		}
		// The server's merged profile is authoritative.
		if msg.profile != nil {
			_ = s.manager.SetProfile(context.Background(), *msg.profile)
		}
		s.mode = modeView
		s.status = "Profile updated"
		return s, nil

	case passwordChangedMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = errorText(msg.err)
			return s, nil
		}
		s.mode = modeView
		s.status = "Password changed"
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ProfileScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}

	if s.mode == modeView {
		switch msg.String() {
		case "e":
			s.startEdit()
			return s, s.inputs[0].Focus()
		case "w":
			s.startPassword()
			return s, s.inputs[0].Focus()
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		s.mode = modeView
		s.inputs = nil
		s.errMsg = ""
		return s, nil
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % len(s.inputs))
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + len(s.inputs) - 1) % len(s.inputs))
	case "enter":
		if s.mode == modeEdit {
			return s, s.saveProfile()
		}
		return s, s.changePassword()
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *ProfileScreen) startEdit() {
	p := s.manager.Profile()
	if p == nil {
		return
	}
	email := components.NewTextInput("Email", "", 128)
	email.Model.SetValue(p.Email)
	first := components.NewTextInput("First name", "", 64)
	first.Model.SetValue(p.FirstName)
	last := components.NewTextInput("Last name", "", 64)
	last.Model.SetValue(p.LastName)

	s.inputs = []components.TextInput{email, first, last}
	s.focus = 0
	s.mode = modeEdit
	s.status = ""
	s.errMsg = ""
}

func (s *ProfileScreen) startPassword() {
	s.inputs = []components.TextInput{
		components.NewPasswordInput("Current password"),
		components.NewPasswordInput("New password"),
		components.NewPasswordInput("Confirm new password"),
	}
	s.focus = 0
	s.mode = modePassword
	s.status = ""
	s.errMsg = ""
}

func (s *ProfileScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	return s.inputs[f].Focus()
}

func (s *ProfileScreen) saveProfile() tea.Cmd {
	email := strings.TrimSpace(s.inputs[0].Value())
	first := strings.TrimSpace(s.inputs[1].Value())
	last := strings.TrimSpace(s.inputs[2].Value())

	s.busy = true
	s.errMsg = ""
	client := s.client
	update := api.ProfileUpdate{
		Email:     &email,
		FirstName: &first,
		LastName:  &last,
	}
	return func() tea.Msg {
		p, err := client.UpdateProfile(context.Background(), update)
		return profileSavedMsg{profile: p, err: err}
	}
}

func (s *ProfileScreen) changePassword() tea.Cmd {
	current := s.inputs[0].Value()
	next := s.inputs[1].Value()
	confirm := s.inputs[2].Value()

	if next != confirm {
		s.inputs[2].SetError("passwords do not match")
		return nil
	}
	s.inputs[2].ClearError()

	s.busy = true
	s.errMsg = ""
	client := s.client
	return func() tea.Msg {
		return passwordChangedMsg{err: client.ChangePassword(context.Background(), current, next)}
	}
}

// errorText flattens API errors into a single display line.
func errorText(err error) string {
	var valErr *api.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message()
	}
	return err.Error()
}

func (s *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	switch s.mode {
	case modeView:
		b.WriteString(s.renderView(cw))
	default:
		title := "Edit profile"
		if s.mode == modePassword {
			title = "Change password"
		}
		b.WriteString(theme.Title.Width(cw).Render(title))
		b.WriteString("\n\n")
		for i := range s.inputs {
			b.WriteString(s.inputs[i].View())
			b.WriteString("\n\n")
		}
		if s.busy {
			b.WriteString(theme.Hint.Render("Saving..."))
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}
	if s.status != "" && s.mode == modeView {
		b.WriteString("\n\n")
		b.WriteString(theme.Correct.Render(s.status))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *ProfileScreen) renderView(cw int) string {
	p := s.manager.Profile()
	if p == nil {
		return theme.Hint.Render("Not signed in")
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(14)
	value := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(p.DisplayName()))
	b.WriteString("\n\n")
	b.WriteString(label.Render("Username") + value.Render(p.Username) + "\n")
	b.WriteString(label.Render("Email") + value.Render(p.Email) + "\n")
	if p.FirstName != "" || p.LastName != "" {
		b.WriteString(label.Render("Name") + value.Render(strings.TrimSpace(p.FirstName+" "+p.LastName)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(label.Render("Tests taken") + value.Render(fmt.Sprintf("%d", p.TestsTaken)) + "\n")
	b.WriteString(label.Render("Average") + value.Render(fmt.Sprintf("%.0f%%", p.AverageScore)) + "\n")
	return b.String()
}
