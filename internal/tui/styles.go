package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
	filterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1)
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	pageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).MarginBottom(1)
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	focusStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	fieldErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)
