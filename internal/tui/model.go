// Package tui implements the interactive category browser behind
// `roomcraft browse`.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/model"
	"github.com/Veraticus/roomcraft/internal/service"
	"github.com/Veraticus/roomcraft/internal/tui/themes"
)

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusWarning
	statusSuccess
)

// Model is the browser state. It steps through one category with
// ProductCatalog.NextInCategory and remembers where it has been.
type Model struct {
	catalog    service.ProductCatalog
	chosen     *model.Product
	help       help.Model
	theme      themes.Theme
	keymap     KeyMap
	category   string
	status     string
	current    model.Product
	history    []model.Product
	excluded   []string
	baseline   []string
	width      int
	height     int
	statusKind statusKind
	altScreen  bool
	quitting   bool
}

// NewModel creates a browser positioned on the start product, or on the
// first non-excluded product of the category.
func NewModel(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Catalog == nil {
		return Model{}, fmt.Errorf("catalog is required")
	}
	if strings.TrimSpace(cfg.Category) == "" {
		return Model{}, fmt.Errorf("category is required")
	}

	start, err := startProduct(cfg)
	if err != nil {
		return Model{}, err
	}

	h := help.New()
	h.Width = cfg.Width

	return Model{
		catalog:   cfg.Catalog,
		help:      h,
		theme:     cfg.Theme,
		keymap:    DefaultKeyMap(),
		category:  cfg.Category,
		current:   start,
		excluded:  append([]string(nil), cfg.Exclude...),
		baseline:  append([]string(nil), cfg.Exclude...),
		width:     cfg.Width,
		height:    cfg.Height,
		altScreen: cfg.AltScreen,
	}, nil
}

func startProduct(cfg Config) (model.Product, error) {
	// Same category policy as NextInCategory, so every product the browser
	// can step to is also a valid starting point.
	inCategory := cfg.Catalog.InCategory(cfg.Category)

	excluded := make(map[string]bool, len(cfg.Exclude))
	for _, id := range cfg.Exclude {
		excluded[id] = true
	}

	for _, p := range inCategory {
		if excluded[p.ID] {
			continue
		}
		if cfg.Start == "" || strings.EqualFold(p.Name, cfg.Start) {
			return p, nil
		}
	}

	if cfg.Start != "" {
		return model.Product{}, fmt.Errorf("%w: %q is not an available %s", common.ErrNoProducts, cfg.Start, cfg.Category)
	}
	return model.Product{}, fmt.Errorf("%w: nothing to browse in %q", common.ErrNoProducts, cfg.Category)
}

// Current returns the product on screen.
func (m Model) Current() model.Product {
	return m.current
}

// Chosen returns the product picked with Enter, if any.
func (m Model) Chosen() (model.Product, bool) {
	if m.chosen == nil {
		return model.Product{}, false
	}
	return *m.chosen, true
}

// Excluded returns the IDs currently skipped.
func (m Model) Excluded() []string {
	return append([]string(nil), m.excluded...)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Select):
			chosen := m.current
			m.chosen = &chosen
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Next):
			m.advance()

		case key.Matches(msg, m.keymap.Prev):
			m.back()

		case key.Matches(msg, m.keymap.Exclude):
			m.excludeCurrent()

		case key.Matches(msg, m.keymap.Reset):
			m.excluded = append([]string(nil), m.baseline...)
			m.setStatus(statusInfo, "Exclusions cleared")

		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

func (m *Model) advance() {
	next, ok := m.catalog.NextInCategory(m.category, m.current.Name, m.excluded)
	if !ok {
		m.setStatus(statusWarning, "No other products in this category")
		return
	}
	m.history = append(m.history, m.current)
	m.current = next
	m.setStatus(statusNone, "")
}

func (m *Model) back() {
	if len(m.history) == 0 {
		m.setStatus(statusInfo, "This is the first product you viewed")
		return
	}
	m.current = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.setStatus(statusNone, "")
}

func (m *Model) excludeCurrent() {
	excluded := m.current
	m.excluded = append(m.excluded, excluded.ID)

	next, ok := m.catalog.NextInCategory(m.category, excluded.Name, m.excluded)
	if !ok {
		m.setStatus(statusWarning, "Excluded "+excluded.Name+"; nothing else left to show")
		return
	}
	m.history = append(m.history, excluded)
	m.current = next
	m.setStatus(statusSuccess, "Excluded "+excluded.Name)
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}
