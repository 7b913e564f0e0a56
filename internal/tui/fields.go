package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactform/internal/contact"
)

// messageIndex is the focus index of the message textarea; lower indexes are
// the single-line inputs in contact.AllFields order.
const messageIndex = 3

// Inputs holds the four form controls on the heap so that the Submitter and
// every copy of Model share the same values.
type Inputs struct {
	text    [3]textinput.Model
	message textarea.Model
	focus   int
}

var _ contact.Fields = (*Inputs)(nil)

func newInputs() *Inputs {
	in := &Inputs{}
	placeholders := [3]string{"Your name", "you@example.com", "What is this about?"}
	for i := range in.text {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 0
		in.text[i] = ti
	}

	ta := textarea.New()
	ta.Placeholder = "Your message..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(5)
	in.message = ta

	in.text[0].Focus()
	return in
}

// Value returns the current value of one control.
func (in *Inputs) Value(f contact.Field) string {
	switch f {
	case contact.FieldName, contact.FieldEmail, contact.FieldSubject:
		return in.text[f].Value()
	case contact.FieldMessage:
		return in.message.Value()
	default:
		return ""
	}
}

// SetValue replaces the value of one control.
func (in *Inputs) SetValue(f contact.Field, v string) {
	switch f {
	case contact.FieldName, contact.FieldEmail, contact.FieldSubject:
		in.text[f].SetValue(v)
	case contact.FieldMessage:
		in.message.SetValue(v)
	}
}

// Reset empties all four controls. Focus is left where it was.
func (in *Inputs) Reset() {
	for i := range in.text {
		in.text[i].Reset()
	}
	in.message.Reset()
}

// Focused returns the focused control.
func (in *Inputs) Focused() contact.Field {
	return contact.AllFields[in.focus]
}

// move shifts focus by delta, wrapping around.
func (in *Inputs) move(delta int) tea.Cmd {
	n := len(contact.AllFields)
	return in.focusIndex(((in.focus+delta)%n + n) % n)
}

func (in *Inputs) focusIndex(idx int) tea.Cmd {
	if in.focus == messageIndex {
		in.message.Blur()
	} else {
		in.text[in.focus].Blur()
	}
	in.focus = idx
	if idx == messageIndex {
		return in.message.Focus()
	}
	return in.text[idx].Focus()
}

// update forwards msg to the focused control.
func (in *Inputs) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if in.focus == messageIndex {
		in.message, cmd = in.message.Update(msg)
	} else {
		in.text[in.focus], cmd = in.text[in.focus].Update(msg)
	}
	return cmd
}

func (in *Inputs) setWidth(w int) {
	for i := range in.text {
		in.text[i].Width = w - len(in.text[i].Prompt) - 1
	}
	in.message.SetWidth(w)
}
