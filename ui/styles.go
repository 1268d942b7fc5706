package ui

import "github.com/charmbracelet/lipgloss"

// Styles.
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	transientStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true)
	frameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("3"))
	frameAltStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("15")).
			Bold(true)
	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("5"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Background(lipgloss.Color("0"))
	rootStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Background(lipgloss.Color("8"))
	tableHeadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	tableRowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	tableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("15"))
	logTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	logLineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	logMatchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	logSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("5"))
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
