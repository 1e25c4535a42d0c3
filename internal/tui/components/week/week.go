package week

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/scheduler"
)

var (
	freeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	busyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nameStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

// Model draws one timetable against the period catalog.
type Model struct {
	catalog   scheduler.Catalog
	timetable models.Timetable
	free      map[models.Interval]bool
	width     int
}

func New(catalog scheduler.Catalog) Model {
	return Model{catalog: catalog, free: map[models.Interval]bool{}}
}

// SetTimetable replaces the timetable and the free periods computed for it.
func (m *Model) SetTimetable(tt models.Timetable, free []models.Interval) {
	m.timetable = tt
	m.free = make(map[models.Interval]bool, len(free))
	for _, slot := range free {
		m.free[slot] = true
	}
}

func (m Model) Timetable() models.Timetable {
	return m.timetable
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) View() string {
	headers := []string{""}
	for _, d := range m.catalog.Days {
		headers = append(headers, d.String())
	}

	rows := make([][]string, 0, len(m.catalog.Periods))
	for _, p := range m.catalog.Periods {
		row := []string{p.String()}
		for _, d := range m.catalog.Days {
			if m.free[models.Interval{Day: d, Start: p.Start, End: p.End}] {
				row = append(row, freeStyle.Render("free"))
				continue
			}
			row = append(row, busyStyle.Render(subjects(m.timetable.EntriesOn(d), p)))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...)
	if m.width > 0 {
		t = t.Width(m.width)
	}

	title := nameStyle.Render(m.timetable.Name)
	if len(m.timetable.Entries) == 0 {
		title += "\nNo classes yet. Press 'a' to add one."
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, t.String())
}

func subjects(entries []models.ScheduleEntry, period models.TimeRange) string {
	var names []string
	for _, e := range entries {
		if e.Start < period.End && e.End > period.Start {
			if e.Subject == "" {
				names = append(names, "class")
			} else {
				names = append(names, e.Subject)
			}
		}
	}
	return strings.Join(names, ", ")
}
