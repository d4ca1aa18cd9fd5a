package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lernix/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Lernix styling and form helpers.
type TextInput struct {
	Model  textinput.Model
	Label  string
	errMsg string
}

// NewTextInput creates a new styled text input.
func NewTextInput(label, placeholder string, maxLen int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return TextInput{
		Model: ti,
		Label: label,
	}
}

// NewPasswordInput creates a masked text input.
func NewPasswordInput(label string) TextInput {
	t := NewTextInput(label, "", 128)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	return t
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the labelled input with any field error beneath it.
func (t TextInput) View() string {
	var s string
	if t.Label != "" {
		s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Label) + "\n"
	}
	s += t.Model.View()
	if t.errMsg != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("  " + t.errMsg)
	}
	return s
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// SetError attaches a field error shown under the input.
func (t *TextInput) SetError(msg string) {
	t.errMsg = msg
}

// ClearError removes the field error.
func (t *TextInput) ClearError() {
	t.errMsg = ""
}
