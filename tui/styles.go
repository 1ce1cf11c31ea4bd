package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
)

var (
	// Prompts
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	HintStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"}) // Darker Gray

	// Report
	SenderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	SummaryStyle   = lipgloss.NewStyle()
	KeywordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	NoContentStyle = lipgloss.NewStyle().Faint(true)
	FailedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	NoMailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
)

// Browser colors
var (
	ListSelectedStyle = tcell.StyleDefault.
				Foreground(tcell.ColorWhite).
				Background(tcell.ColorSteelBlue).
				Attributes(tcell.AttrBold)
	SecondaryTextColor = tcell.ColorDimGray
)
