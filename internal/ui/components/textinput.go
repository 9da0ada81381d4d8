package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/glossmatch/internal/ui/theme"
)

// TextInput wraps a bubbles text input with a label.
type TextInput struct {
	Label       string
	Model       textinput.Model
	NumericOnly bool
}

// NewTextInput returns a focused input. limit caps the character count
// when positive.
func NewTextInput(label, placeholder string, numericOnly bool, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return TextInput{Label: label, Model: ti, NumericOnly: numericOnly}
}

// Update forwards msg to the input, dropping non-digits in numeric mode.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && t.NumericOnly {
		if s := kmsg.String(); len(s) == 1 && (s[0] < '0' || s[0] > '9') {
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Focus gives the input the cursor.
func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

// Blur removes the cursor.
func (t *TextInput) Blur() { t.Model.Blur() }

// Focused reports whether the input has the cursor.
func (t TextInput) Focused() bool { return t.Model.Focused() }

// View renders the label above the input.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Model.Focused() {
		label = label.Foreground(theme.Primary).Bold(true)
	}
	return label.Render(t.Label) + "\n" + t.Model.View()
}

// Value returns the trimmed input text.
func (t TextInput) Value() string { return strings.TrimSpace(t.Model.Value()) }

// IntValue parses the input as an integer, returning def when empty.
func (t TextInput) IntValue(def int) (int, error) {
	if t.Value() == "" {
		return def, nil
	}
	return strconv.Atoi(t.Value())
}
