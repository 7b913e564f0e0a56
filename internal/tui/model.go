// Package tui renders the interactive contact form.
package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactform/internal/contact"
)

// SettledMsg delivers the result of a dispatched attempt back to Update.
type SettledMsg struct {
	Settlement contact.Settlement
}

// Model is the Bubble Tea model for the contact form.
type Model struct {
	sub     *contact.Submitter
	inputs  *Inputs
	board   *contact.Board
	ctx     context.Context
	spinner spinner.Model
	help    help.Model
	keys    formKeys
	width   int
	done    bool
}

// Option configures a Model.
type Option func(*options)

type options struct {
	ctx     context.Context
	logger  *slog.Logger
	prefill contact.Payload
}

// WithContext sets the context passed to every submission.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithLogger sets the logger used by the submitter.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPrefill sets the initial field values.
func WithPrefill(p contact.Payload) Option {
	return func(o *options) { o.prefill = p }
}

// New creates the form model. It owns the only Submitter bound to its inputs,
// so each Model has exactly one submit handler.
func New(sender contact.Sender, opts ...Option) Model {
	o := options{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	inputs := newInputs()
	inputs.SetValue(contact.FieldName, o.prefill.Name)
	inputs.SetValue(contact.FieldEmail, o.prefill.Email)
	inputs.SetValue(contact.FieldSubject, o.prefill.Subject)
	inputs.SetValue(contact.FieldMessage, o.prefill.Message)

	board := contact.NewBoard()

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		sub:     contact.NewSubmitter(sender, inputs, board, contact.WithLogger(o.logger)),
		inputs:  inputs,
		board:   board,
		ctx:     o.ctx,
		spinner: s,
		help:    help.New(),
		keys:    FormKeyMap(),
	}
	m.setWidth(80)
	return m
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWidth(msg.Width)
		return m, nil

	case SettledMsg:
		m.sub.Settle(msg.Settlement)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			// The key never reaches the focused control.
			return m, m.submit()
		case key.Matches(msg, m.keys.Next):
			return m, m.inputs.move(1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.inputs.move(-1)
		case key.Matches(msg, m.keys.Advance) && m.inputs.focus != messageIndex:
			return m, m.inputs.move(1)
		}
	}

	return m, m.inputs.update(msg)
}

// submit starts an attempt and returns the command that waits for it.
func (m Model) submit() tea.Cmd {
	attempt := m.sub.Begin()
	sub, ctx := m.sub, m.ctx
	return func() tea.Msg {
		return SettledMsg{Settlement: sub.Send(ctx, attempt)}
	}
}

// View renders the form, the visible notice and the help bar.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Contact us"))
	b.WriteString("\n")

	labels := [...]string{"Name", "Email", "Subject", "Message"}
	for i, label := range labels {
		style := labelStyle
		if i == m.inputs.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		if i == messageIndex {
			b.WriteString(m.inputs.message.View())
		} else {
			b.WriteString(m.inputs.text[i].View())
		}
		b.WriteString("\n")
	}

	if m.sub.State() == contact.StatePending {
		b.WriteString("\n" + m.spinner.View() + " Sending...\n")
	}

	switch n := m.board.Notice(); n.Kind {
	case contact.NoticeSuccess:
		b.WriteString(SuccessNotice(m.width).Render(SuccessText))
		b.WriteString("\n")
	case contact.NoticeError:
		b.WriteString(ErrorNotice(m.width).Render(n.Detail))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")
	return b.String()
}

// Board returns the notice board the form renders.
func (m Model) Board() *contact.Board {
	return m.board
}

// Inputs returns the form controls.
func (m Model) Inputs() *Inputs {
	return m.inputs
}

// Submitter returns the submitter bound to the form.
func (m Model) Submitter() *contact.Submitter {
	return m.sub
}

func (m *Model) setWidth(termWidth int) {
	m.width = formWidth(termWidth)
	m.inputs.setWidth(m.width)
	m.help.Width = m.width
}
