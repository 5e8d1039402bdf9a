package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Prompt       lipgloss.Style
	ToggleOn     lipgloss.Style
	ToggleOff    lipgloss.Style
	Error        lipgloss.Style
	Match        lipgloss.Style
	CurrentMatch lipgloss.Style
	Status       lipgloss.Style
	Dim          lipgloss.Style
	Help         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		ToggleOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		ToggleOff: lipgloss.NewStyle().Faint(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Match: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")),
		CurrentMatch: lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("220")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Help:   lipgloss.NewStyle().Faint(true),
	}
}
