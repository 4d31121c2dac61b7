// Package cli renders roomcraft output for the terminal with lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Warm wood and fabric tones for structure, muted status colors.
var (
	WalnutColor  = lipgloss.Color("#C08552")
	OliveColor   = lipgloss.Color("#8A9A5B")
	MustardColor = lipgloss.Color("#E1AD01")
	BrickColor   = lipgloss.Color("#B5523B")
	SlateColor   = lipgloss.Color("#7D8FA0")
	AshColor     = lipgloss.Color("#6E6A65")
	BorderColor  = lipgloss.Color("#4A403A")
)

// Text styles.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(WalnutColor).MarginBottom(1)
	SuccessStyle = lipgloss.NewStyle().Foreground(OliveColor)
	WarningStyle = lipgloss.NewStyle().Foreground(MustardColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(BrickColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(SlateColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(AshColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)

// Layout styles.
var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(WalnutColor).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(BorderColor)

	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	SofaIcon    = "🛋️"
	RobotIcon   = "🤖"
	ChartIcon   = "📊"
	MoneyIcon   = "💰"
)

func withIcon(style lipgloss.Style, icon, message string) string {
	return style.Render(icon + " " + message)
}

// FormatSuccess prefixes message with a check mark.
func FormatSuccess(message string) string { return withIcon(SuccessStyle, SuccessIcon, message) }

// FormatError prefixes message with a cross.
func FormatError(message string) string { return withIcon(ErrorStyle, ErrorIcon, message) }

// FormatWarning prefixes message with a warning sign.
func FormatWarning(message string) string { return withIcon(WarningStyle, WarningIcon, message) }

// FormatInfo prefixes message with an info sign.
func FormatInfo(message string) string { return withIcon(InfoStyle, InfoIcon, message) }

// FormatTitle renders a section title.
func FormatTitle(title string) string { return withIcon(TitleStyle, SofaIcon, title) }

// RenderBox draws content in a rounded box under a bold title.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}

// StyleTitle renders text in the title style without an icon.
func StyleTitle(text string) string { return TitleStyle.Render(text) }

// StyleSuccess renders text in the success color.
func StyleSuccess(text string) string { return SuccessStyle.Render(text) }

// StyleWarning renders text in the warning color.
func StyleWarning(text string) string { return WarningStyle.Render(text) }
