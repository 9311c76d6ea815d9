package tui

import (
	"github.com/Veraticus/spice-ledger/internal/controller"
	"github.com/Veraticus/spice-ledger/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme           themes.Theme
	Callbacks       <-chan func()
	Services        controller.Services
	Width           int
	Height          int
	GenerationGuard bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:           themes.Default,
		Width:           80,
		Height:          24,
		GenerationGuard: true,
	}
}

// WithServices sets the remote entity accessors.
func WithServices(svc controller.Services) Option {
	return func(c *Config) {
		c.Services = svc
	}
}

// WithCallbacks sets the channel the transport delivers callbacks on.
func WithCallbacks(ch <-chan func()) Option {
	return func(c *Config) {
		c.Callbacks = ch
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithGenerationGuard controls whether the ledger page drops responses
// from superseded renders.
func WithGenerationGuard(enabled bool) Option {
	return func(c *Config) {
		c.GenerationGuard = enabled
	}
}
