package tui

import "github.com/charmbracelet/lipgloss"

// Slack brand palette; the rest of the scheme is neutral grays.
var (
	primaryColor   = lipgloss.Color("#36C5F0")
	secondaryColor = lipgloss.Color("#2EB67D")
	warningColor   = lipgloss.Color("#ECB22E")
	errorColor     = lipgloss.Color("#E01E5A")
	mutedColor     = lipgloss.Color("#6B7280")
	textColor      = lipgloss.Color("#F3F4F6")
	dimTextColor   = lipgloss.Color("#9CA3AF")
)

var (
	dimStyle      = lipgloss.NewStyle().Foreground(dimTextColor)
	itemNameStyle = lipgloss.NewStyle().Foreground(textColor)
	warningStyle  = lipgloss.NewStyle().Foreground(warningColor)
	successStyle  = lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	spinnerStyle  = lipgloss.NewStyle().Foreground(warningColor)

	titleStyle    = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	subtitleStyle = dimStyle.Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			Underline(true).
			MarginTop(1)

	highlightBoxStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginTop(1).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor)

	statLabelStyle = dimStyle.Width(12)
	statValueStyle = lipgloss.NewStyle().Foreground(textColor).Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
)

const (
	iconEmoji   = "😀"
	iconSuccess = "✓"
	iconSkipped = "○"
	iconError   = "✗"
	iconArrow   = "→"
	iconFolder  = "📁"
)
