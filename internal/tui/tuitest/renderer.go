// Package tuitest drives Bubble Tea models in tests without a terminal.
package tuitest

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes all ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// ContainsInOrder checks if the output contains all specified strings in order.
func ContainsInOrder(output string, expected ...string) bool {
	lastIndex := 0
	for _, exp := range expected {
		index := strings.Index(output[lastIndex:], exp)
		if index == -1 {
			return false
		}
		lastIndex += index + len(exp)
	}
	return true
}

// Renderer feeds messages to a model and keeps the last rendered view.
type Renderer struct {
	Model       tea.Model
	Output      string
	UpdateCount int
}

// NewRenderer wraps model.
func NewRenderer(model tea.Model) *Renderer {
	return &Renderer{Model: model, Output: model.View()}
}

// Send delivers msg to the model and returns the command it produced.
func (r *Renderer) Send(msg tea.Msg) tea.Cmd {
	next, cmd := r.Model.Update(msg)
	r.Model = next
	r.UpdateCount++
	r.Output = next.View()
	return cmd
}

// Type sends each rune of text as a key press. Commands are discarded.
func (r *Renderer) Type(text string) {
	for _, ch := range text {
		r.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ch}})
	}
}

// Press sends a non-rune key.
func (r *Renderer) Press(t tea.KeyType) tea.Cmd {
	return r.Send(tea.KeyMsg{Type: t})
}

// Run executes cmd and delivers its message, returning that message.
func (r *Renderer) Run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg != nil {
		r.Send(msg)
	}
	return msg
}

// PlainOutput returns the last view without ANSI escapes.
func (r *Renderer) PlainOutput() string {
	return StripANSI(r.Output)
}

// WindowSize creates a window size message for testing responsive layouts.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}
