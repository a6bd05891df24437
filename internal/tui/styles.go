// ABOUTME: Lipgloss styles for the interactive grid.
// ABOUTME: One accent color per exercise category plus status line styles.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/gymbot/internal/models"
)

// Styles holds every style the view renders with.
type Styles struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Prompt   lipgloss.Style
	Healthy  lipgloss.Style
	Unwell   lipgloss.Style
	Category map[models.Category]lipgloss.Style
	Table    table.Styles
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Healthy: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Unwell:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Category: map[models.Category]lipgloss.Style{
			models.CategoryPush: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
			models.CategoryPull: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170")),
			models.CategoryLeg:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("142")),
		},
		Table: ts,
	}
}
