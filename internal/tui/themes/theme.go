// Package themes holds the color themes of the catalog browser.
package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/roomcraft/internal/model"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Price         lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

// palette is the handful of colors a theme is built from.
type palette struct {
	text, subtle, accent, border, muted lipgloss.Color
	success, warning, info              lipgloss.Color
}

func newTheme(p palette) Theme {
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return Theme{
		Primary: p.accent,
		Muted:   p.muted,
		Border:  p.border,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.text).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(p.subtle),
		Normal:   lipgloss.NewStyle().Foreground(p.text),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(p.text),
		Price:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),

		StatusSuccess: status(p.success),
		StatusWarning: status(p.warning),
		StatusInfo:    status(p.info),
	}
}

// Default is a dark walnut theme.
var Default = newTheme(palette{
	text:    "#F3E9DC",
	subtle:  "#B8A898",
	accent:  "#C08552",
	border:  "#5E4B3C",
	muted:   "#8C7B6B",
	success: "#8A9A5B",
	warning: "#E1AD01",
	info:    "#7D8FA0",
})

// Linen is a light theme for bright terminals.
var Linen = newTheme(palette{
	text:    "#2E2A26",
	subtle:  "#6E6A65",
	accent:  "#8B4513",
	border:  "#C9B8A6",
	muted:   "#9C8F84",
	success: "#4F6B2F",
	warning: "#9A6B00",
	info:    "#3F5A73",
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "linen":
		return Linen
	default:
		return Default
	}
}

// CategoryIcons maps categories to emoji icons.
var CategoryIcons = map[model.Category]string{
	model.CategorySofa:    "🛋️",
	model.CategoryChair:   "🪑",
	model.CategoryTable:   "🍽️",
	model.CategoryBed:     "🛏️",
	model.CategoryStorage: "🗄️",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category model.Category) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "📦"
}
