package interactive

import "github.com/charmbracelet/lipgloss"

var (
	Primary = lipgloss.Color("212")
	Error   = lipgloss.Color("196")
	Success = lipgloss.Color("42")
	Muted   = lipgloss.Color("241")
)

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	errorHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(Error)
	successHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(Success)
	mutedStyle         = lipgloss.NewStyle().Foreground(Muted)
	errorTextStyle     = lipgloss.NewStyle().Foreground(Error)

	labelStyle        = lipgloss.NewStyle().Bold(true)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	containerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	errorContainerStyle = containerStyle.BorderForeground(Error)

	selectStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	focusedSelectStyle  = selectStyle.BorderForeground(Primary)
	disabledSelectStyle = selectStyle.Foreground(Muted)

	itemStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	highlightedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255")).
				Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)
	buttonFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(Primary).
				Bold(true).
				Padding(0, 2)
)
