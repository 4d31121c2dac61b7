package tui

import (
	"github.com/Veraticus/roomcraft/internal/service"
	"github.com/Veraticus/roomcraft/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Catalog   service.ProductCatalog
	Category  string
	Start     string
	Exclude   []string
	Width     int
	Height    int
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     80,
		Height:    24,
		AltScreen: true,
	}
}

// WithCatalog sets the product catalog to browse.
func WithCatalog(catalog service.ProductCatalog) Option {
	return func(c *Config) {
		c.Catalog = catalog
	}
}

// WithCategory sets the category to browse and, optionally, the product
// name to start from.
func WithCategory(category, start string) Option {
	return func(c *Config) {
		c.Category = category
		c.Start = start
	}
}

// WithExclude sets product IDs that are never shown.
func WithExclude(ids []string) Option {
	return func(c *Config) {
		c.Exclude = append([]string(nil), ids...)
	}
}

// WithTheme sets the color theme.
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

// WithAltScreen controls whether the browser takes over the full terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
