// Package tui implements the interactive advisor chat.
package tui

import (
	"errors"
	"strings"

	"github.com/anoushkasinn/Spend.Sense/internal/advisor"
	"github.com/anoushkasinn/Spend.Sense/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoContext is returned when the chat has no source of advisor data.
var ErrNoContext = errors.New("advisor context source is required")

// chromeHeight is the number of rows used by everything but the transcript.
const chromeHeight = 7

// Model holds the chat state.
type Model struct {
	theme       themes.Theme
	responder   *advisor.Responder
	contextFn   ContextFunc
	keymap      KeyMap
	help        help.Model
	input       textinput.Model
	viewport    viewport.Model
	suggestions []string
	messages    []Message
	selected    int
	width       int
	height      int
	waiting     bool
	quitting    bool
}

// New builds a chat model from options.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Context == nil {
		return Model{}, ErrNoContext
	}
	if cfg.Responder == nil {
		cfg.Responder = advisor.NewResponder()
	}
	return newModel(cfg), nil
}

func newModel(cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "Ask about your spending..."
	input.CharLimit = 200
	input.Prompt = "> "
	input.PromptStyle = cfg.Theme.Prompt
	input.Focus()

	h := help.New()
	h.Styles.ShortKey = cfg.Theme.Help.Bold(true)
	h.Styles.ShortDesc = cfg.Theme.Help
	h.Styles.ShortSeparator = cfg.Theme.Help

	m := Model{
		theme:       cfg.Theme,
		responder:   cfg.Responder,
		contextFn:   cfg.Context,
		keymap:      DefaultKeyMap(),
		help:        h,
		input:       input,
		viewport:    viewport.New(cfg.Width, max(cfg.Height-chromeHeight, 3)),
		suggestions: advisor.Suggestions(),
		messages:    []Message{{Role: RoleBot, Text: advisor.Greeting}},
		selected:    -1,
		width:       cfg.Width,
		height:      cfg.Height,
	}
	m.resize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case answerMsg:
		m.waiting = false
		m.messages = append(m.messages, Message{Role: RoleBot, Text: msg.text})
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Send):
		return m.send()

	case m.showSuggestions() && m.input.Value() == "" && key.Matches(msg, m.keymap.NextSuggestion):
		m.selected = (m.selected + 1) % len(m.suggestions)
		m.refresh()
		return m, nil

	case m.showSuggestions() && m.input.Value() == "" && key.Matches(msg, m.keymap.PrevSuggestion):
		if m.selected <= 0 {
			m.selected = len(m.suggestions)
		}
		m.selected--
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.ScrollUp, m.keymap.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send posts the typed text, or the highlighted suggestion when nothing is
// typed, and asks the advisor for a reply.
func (m Model) send() (tea.Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" && m.showSuggestions() && m.selected >= 0 {
		text = m.suggestions[m.selected]
	}
	if text == "" {
		return m, nil
	}

	m.messages = append(m.messages, Message{Role: RoleUser, Text: text})
	m.input.Reset()
	m.selected = -1
	m.waiting = true
	m.refresh()
	return m, m.ask(text)
}

func (m Model) ask(question string) tea.Cmd {
	responder, contextFn := m.responder, m.contextFn
	return func() tea.Msg {
		return answerMsg{text: responder.Respond(question, contextFn())}
	}
}

// showSuggestions reports whether the user has not asked anything yet.
func (m Model) showSuggestions() bool {
	for _, msg := range m.messages {
		if msg.Role == RoleUser {
			return false
		}
	}
	return len(m.suggestions) > 0
}

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chromeHeight, 3)
	m.input.Width = max(m.width-6, 10)
	m.help.Width = m.width
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// Messages returns the transcript so far.
func (m Model) Messages() []Message {
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Waiting reports whether a reply is pending.
func (m Model) Waiting() bool {
	return m.waiting
}
