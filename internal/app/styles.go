package app

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	focusedTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Reverse(true)
	dividerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	handleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	activeHandleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true)
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusAccentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	dividerGlyph = "│"
	handleGlyph  = "┃"
)
