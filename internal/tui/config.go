package tui

import (
	"github.com/anoushkasinn/Spend.Sense/internal/advisor"
	"github.com/anoushkasinn/Spend.Sense/internal/tui/themes"
)

// ContextFunc returns the advisor context a question is answered against.
// It is called once per question so answers reflect current data.
type ContextFunc func() advisor.Context

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Responder *advisor.Responder
	Context   ContextFunc
	Width     int
	Height    int
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Dark,
		Width:     80,
		Height:    24,
		AltScreen: true,
	}
}

// WithTheme sets the colour scheme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithResponder sets the advisor used to answer questions.
func WithResponder(r *advisor.Responder) Option {
	return func(c *Config) {
		c.Responder = r
	}
}

// WithContext sets the source of advisor contexts.
func WithContext(fn ContextFunc) Option {
	return func(c *Config) {
		c.Context = fn
	}
}

// WithSize sets the initial dimensions before the first resize event.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
