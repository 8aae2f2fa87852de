package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusKey     lipgloss.Style
	Message       lipgloss.Style
	Help          lipgloss.Style
	Cell          lipgloss.Style
	FocusedCell   lipgloss.Style
	PreferredCell lipgloss.Style
	CellTitle     lipgloss.Style
	CellSubtitle  lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusKey: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Message:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Help:      lipgloss.NewStyle().Faint(true).MarginTop(1),
		Cell: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Align(lipgloss.Center),
		FocusedCell: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(0, 1).
			Align(lipgloss.Center),
		PreferredCell: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(0, 1).
			Align(lipgloss.Center),
		CellTitle:     lipgloss.NewStyle().Bold(true),
		CellSubtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// CellColor returns the border color for an item, falling back to gray
func CellColor(color string) lipgloss.Color {
	if color == "" {
		return lipgloss.Color("241")
	}
	return lipgloss.Color(color)
}
