package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/moneymask/internal/errors"
	"github.com/agbru/moneymask/internal/field"
	"github.com/agbru/moneymask/internal/logging"
	"github.com/agbru/moneymask/internal/mask"
	"github.com/agbru/moneymask/internal/numfmt"
	"github.com/agbru/moneymask/internal/ui"
)

// Layout constants for the TUI.
const (
	defaultWidth = 64
	promptText   = "› "
)

// Options configures a TUI session.
type Options struct {
	Masker     mask.Masker
	Descriptor string
	WriteBack  field.WriteBack
	// Observers receive every edit event, in addition to the event log.
	Observers []field.Observer
	Logger    logging.Logger
	Version   string
}

// Model is the root bubbletea model. The text input is only the view of
// the field: every change the input makes is written to a MemoryField,
// where the bound listener reformats it, and the field's text and caret are
// copied back into the input.
type Model struct {
	header HeaderModel
	input  textinput.Model
	help   help.Model
	keymap KeyMap

	masker  mask.Masker
	field   *field.MemoryField
	binding *field.Binding
	events  *EventLog
	styles  Styles

	showEvents bool
	width      int
}

// NewModel creates a TUI model with a field bound to the masker's listener.
func NewModel(opts Options) Model {
	events := NewEventLog(DefaultEventLines)
	styles := NewStyles(ui.CurrentTUI())
	f := field.NewMemoryField(opts.Masker.Mask(""))

	bindOpts := []field.Option{
		field.WithWriteBack(opts.WriteBack),
		field.WithLogger(opts.Logger),
		field.WithName("tui"),
		field.WithObserver(events),
	}
	for _, o := range opts.Observers {
		bindOpts = append(bindOpts, field.WithObserver(o))
	}

	in := textinput.New()
	in.Prompt = promptText
	in.PromptStyle = styles.Prompt
	in.TextStyle = styles.Amount
	in.Placeholder = "type an amount"
	in.Focus()

	m := Model{
		header:     NewHeaderModel(opts.Version, opts.Descriptor, opts.WriteBack.String(), styles),
		input:      in,
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		masker:     opts.Masker,
		field:      f,
		binding:    field.Bind(f, opts.Masker.NewListener(), bindOpts...),
		events:     events,
		styles:     styles,
		showEvents: true,
		width:      defaultWidth,
	}
	m.sync()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Reset):
			m.reset()
			return m, nil
		case key.Matches(msg, m.keymap.ToggleEvents):
			m.showEvents = !m.showEvents
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.field.SetText(v)
		m.sync()
	}
	return m, cmd
}

// sync copies the field's text and caret into the input.
func (m *Model) sync() {
	m.input.SetValue(m.field.Text())
	m.input.SetCursor(m.field.Caret())
}

// reset puts the masker's empty rendering back and binds a fresh listener.
func (m *Model) reset() {
	m.binding.Detach()
	m.field.SetText(m.masker.Mask(""))
	m.binding.Rebind(m.masker.NewListener())
	m.sync()
}

// Field returns the bound field.
func (m Model) Field() *field.MemoryField { return m.field }

// Events returns the event log.
func (m Model) Events() *EventLog { return m.events }

// Close detaches the binding.
func (m Model) Close() { m.binding.Detach() }

// View renders the header, the field, its state, the event log and the
// key help.
func (m Model) View() string {
	inner := max(m.width-4, 20)

	panel := m.styles.Panel.Width(inner)
	fieldPanel := panel.Render(m.input.View())

	text := m.field.Text()
	stats := []string{
		m.stat("value", m.masker.Unmask(text)),
		m.stat("caret", fmt.Sprint(m.field.Caret())),
		m.stat("writes", fmt.Sprint(m.field.Writes())),
		m.stat("edits", fmt.Sprintf("%d reformatted, %d ignored",
			m.events.Count(numfmt.Reformatted)+m.events.Count(numfmt.PrefixReset),
			m.events.Count(numfmt.NoOpUnchanged)+m.events.Count(numfmt.NoOpPrefixOnly)+
				m.events.Count(numfmt.NoOpEmpty)+m.events.Count(numfmt.NoOpAnomaly))),
	}
	if v := m.field.Violations(); v > 0 {
		stats = append(stats, m.styles.Warning.Render(fmt.Sprintf("re-entry cap hit %d times", v)))
	}
	statsPanel := panel.Render(lipgloss.JoinVertical(lipgloss.Left, stats...))

	sections := []string{m.header.View(), fieldPanel, statsPanel}
	if m.showEvents {
		sections = append(sections, panel.Render(m.events.Render(m.styles)))
	}
	sections = append(sections, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) stat(label, value string) string {
	return m.styles.Muted.Render(fmt.Sprintf("%-7s", label)) + m.styles.Value.Render(value)
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, opts Options) int {
	model := NewModel(opts)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		logging.OrNop(opts.Logger).Error("tui failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
