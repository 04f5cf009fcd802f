package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorAccent     = lipgloss.Color("#5f87ff")
	ColorBackground = lipgloss.Color("#1c1c2e")
	ColorForeground = lipgloss.Color("#e8e8f0")
	ColorMuted      = lipgloss.Color("#8a8fa3")

	ColorSuccess = lipgloss.Color("#2ecc71")
	ColorWarning = lipgloss.Color("#f39c12")
	ColorError   = lipgloss.Color("#e74c3c")
	ColorInfo    = lipgloss.Color("#3498db")
)

// Styles shared by the preview table and the picker
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			MarginTop(1).
			MarginBottom(1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorAccent).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ReadyStyle    = lipgloss.NewStyle().Foreground(ColorSuccess)
	ConflictStyle = lipgloss.NewStyle().Foreground(ColorError)
	NoChangeStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	InvalidStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	MoveStyle     = lipgloss.NewStyle().Foreground(ColorInfo)
)
