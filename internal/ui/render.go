// Package ui renders tasks, statistics and profiles for the terminal and
// runs the interactive task board.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskdesk.com/taskdesk/internal/constants"
	"taskdesk.com/taskdesk/internal/validators"
	model "taskdesk.com/taskdesk/pkg/models"
)

// TaskLine renders one task on a single line, followed by its details when
// it has any.
func TaskLine(t model.Task, now time.Time) string {
	title := t.Title
	if t.IsCompleted() {
		title = doneStyle.Render(title)
	}

	parts := []string{
		mutedStyle.Render("#" + t.ID.String()),
		title,
		priorityBadge(t.Priority),
		statusBadge(t.Status),
	}

	if due, ok := t.Due(); ok {
		label := "due " + due.Format("2006-01-02")
		if t.IsOverdue(now) {
			parts = append(parts, overdueStyle.Render(label+" (overdue)"))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	if t.Category != "" {
		parts = append(parts, mutedStyle.Render("["+t.Category+"]"))
	}

	line := strings.Join(parts, "  ")

	var details []string
	if t.Description != "" {
		details = append(details, t.Description)
	}
	if t.Tags != "" {
		details = append(details, "tags: "+t.Tags)
	}
	if len(details) > 0 {
		line += "\n    " + mutedStyle.Render(strings.Join(details, " | "))
	}
	return line
}

// TaskList renders active tasks first and completed tasks under their own
// heading.
func TaskList(tasks []model.Task, now time.Time) string {
	if len(tasks) == 0 {
		return mutedStyle.Render("No tasks found.") + "\n"
	}

	active, completed := model.Partition(tasks)

	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Active (%d)", len(active))) + "\n")
	for _, t := range active {
		b.WriteString(TaskLine(t, now) + "\n")
	}
	if len(completed) > 0 {
		b.WriteString("\n" + headingStyle.Render(fmt.Sprintf("Completed (%d)", len(completed))) + "\n")
		for _, t := range completed {
			b.WriteString(TaskLine(t, now) + "\n")
		}
	}
	return b.String()
}

func Statistics(stats model.Statistics) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard") + "\n\n")

	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(fmt.Sprintf("Total\n%d", stats.TotalTasks)),
		boxStyle.Render(fmt.Sprintf("Overdue\n%s", overdueStyle.Render(fmt.Sprint(stats.OverdueTasksCount)))),
		boxStyle.Render(fmt.Sprintf("Due today\n%d", stats.TodayTasksCount)),
		boxStyle.Render(fmt.Sprintf("Due this week\n%d", stats.WeekTasksCount)),
	)
	b.WriteString(summary + "\n\n")

	b.WriteString(headingStyle.Render("By status") + "\n")
	for _, s := range constants.Statuses() {
		b.WriteString(bar(statusBadge(s), stats.ByStatus[string(s)], stats.TotalTasks) + "\n")
	}

	b.WriteString("\n" + headingStyle.Render("By priority") + "\n")
	for _, p := range constants.Priorities() {
		b.WriteString(bar(priorityBadge(p), stats.ByPriority[string(p)], stats.TotalTasks) + "\n")
	}
	return b.String()
}

const barWidth = 30

func bar(label string, n, total int64) string {
	filled := 0
	if total > 0 {
		filled = int(min(max(n*barWidth/total, 0), barWidth))
	}
	return fmt.Sprintf("  %-*s %s %d",
		12+len(label)-lipgloss.Width(label), label,
		strings.Repeat("█", filled)+mutedStyle.Render(strings.Repeat("░", barWidth-filled)),
		n,
	)
}

func Profile(p model.Profile) string {
	rows := [][2]string{
		{"Username", p.Username},
		{"Email", p.Email},
		{"First name", p.FirstName},
		{"Last name", p.LastName},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.DisplayName()) + "\n")
	for _, r := range rows {
		value := r[1]
		if value == "" {
			value = mutedStyle.Render("-")
		}
		b.WriteString(fmt.Sprintf("  %-11s %s\n", r[0]+":", value))
	}
	return b.String()
}

// FieldErrors lists one message per field in field order.
func FieldErrors(errs validators.FieldErrors) string {
	var b strings.Builder
	for _, f := range errs.Fields() {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  %s: %s", f, errs[f])) + "\n")
	}
	return b.String()
}
