package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every view.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("214")
	ColorError     = lipgloss.Color("196")
	ColorSelectFg  = lipgloss.Color("229")
	ColorSelectBg  = lipgloss.Color("57")
)

var (
	// HeaderStyle renders the title line.
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

	// LabelStyle and ValueStyle render "label: value" pairs in the status bar.
	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)

	// ActiveStyle marks the active sort column and selected filter values.
	ActiveStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	HelpStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorHeader).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorMuted)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorSelectFg).
				Background(ColorSelectBg)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
)
