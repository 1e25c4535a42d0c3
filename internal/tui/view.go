package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case isFormState(m.state):
		content = docStyle.Render(m.form.View())
	case m.state == constants.StateConfirmDelete:
		content = m.viewConfirm()
	case m.state == constants.StateWeek:
		content = docStyle.Render(m.week.View())
	case m.state == constants.StateAssignments:
		content = docStyle.Render(m.assignments.View())
	case m.state == constants.StateRecommendations:
		content = docStyle.Render(m.recs.View())
	case m.state == constants.StatePreferences:
		content = docStyle.Render(m.viewPreferences())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if isFormState(m.state) || m.state == constants.StateConfirmDelete {
		active = m.previousState
	}
	rendered := make([]string, len(tabs))
	for i, s := range tabs {
		if s == active {
			rendered[i] = activeTabStyle.Render(tabTitles[i])
		} else {
			rendered[i] = inactiveTabStyle.Render(tabTitles[i])
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewStatus() string {
	var lines []string
	if m.formError != "" {
		lines = append(lines, dangerStyle.Render("Error: "+m.formError))
	} else if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	if m.validationWarning != "" {
		lines = append(lines, warningStyle.Render(m.validationWarning))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewPreferences() string {
	if m.prefs.IsEmpty() {
		return "No time preferences; every free period is eligible.\nPress 'a' to add one."
	}
	var b strings.Builder
	writeRanges(&b, "Preferred (only these times are recommended)", m.prefs.Preferred)
	b.WriteString("\n")
	writeRanges(&b, "Avoid (never recommended)", m.prefs.Avoid)
	return b.String()
}

func writeRanges(b *strings.Builder, title string, ranges []models.TimeRange) {
	fmt.Fprintf(b, "%s:\n", title)
	if len(ranges) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, r := range ranges {
		fmt.Fprintf(b, "  %s\n", r)
	}
}

func (m Model) viewConfirm() string {
	message := "Are you sure?"
	if m.confirm != nil {
		message = m.confirm.Message
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(message),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
