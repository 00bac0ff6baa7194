package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/talentgraph/pkg/network"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8B5CF6")).
			MarginLeft(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3B82F6")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	canvasStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151"))

	detailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#06B6D4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A5B4FC"))

	advisoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(1)
)

// nodePalette cycles by node order; the selected node is drawn in amber.
var nodePalette = []lipgloss.Color{
	"#3B82F6", "#8B5CF6", "#EC4899", "#F97316",
	"#06B6D4", "#10B981", "#F59E0B", "#EF4444",
}

const selectedColor = lipgloss.Color("#F59E0B")

func edgeColor(t network.ConnectionType) lipgloss.Color {
	switch t {
	case network.ConnectionSkill:
		return "#8B5CF6"
	case network.ConnectionCompany:
		return "#06B6D4"
	case network.ConnectionLocation:
		return "#10B981"
	default:
		return "#6B7280"
	}
}
