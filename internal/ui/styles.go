package ui

import (
	"github.com/charmbracelet/lipgloss"

	"taskdesk.com/taskdesk/internal/constants"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	overdueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var priorityColors = map[constants.TaskPriority]lipgloss.Color{
	constants.PriorityLow:    lipgloss.Color("10"),
	constants.PriorityMedium: lipgloss.Color("11"),
	constants.PriorityHigh:   lipgloss.Color("208"),
	constants.PriorityUrgent: lipgloss.Color("9"),
}

var statusColors = map[constants.TaskStatus]lipgloss.Color{
	constants.StatusPending:    lipgloss.Color("8"),
	constants.StatusInProgress: lipgloss.Color("12"),
	constants.StatusCompleted:  lipgloss.Color("10"),
	constants.StatusCancelled:  lipgloss.Color("9"),
}

func priorityBadge(p constants.TaskPriority) string {
	return lipgloss.NewStyle().Foreground(priorityColors[p]).Render(string(p))
}

func statusBadge(s constants.TaskStatus) string {
	return lipgloss.NewStyle().Foreground(statusColors[s]).Render(string(s))
}
