package assignmentlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studyslot/internal/models"
)

type AddMsg struct{}

type EditMsg struct {
	Assignment models.Assignment
}

type DeleteMsg struct {
	Assignment models.Assignment
}

type ToggleIncludeMsg struct {
	Assignment models.Assignment
}

type ToggleCompleteMsg struct {
	Assignment models.Assignment
}

type Item struct {
	Assignment models.Assignment
}

func (i Item) Title() string {
	a := i.Assignment
	switch {
	case a.Completed:
		return "✓ " + a.Title
	case !a.IncludedInPlanning:
		return "· " + a.Title + " (not planned)"
	}
	return a.Title
}

func (i Item) Description() string {
	a := i.Assignment
	desc := fmt.Sprintf("%d min | %s", a.EstimatedMin, a.Priority)
	if a.Progress > 0 {
		desc += fmt.Sprintf(" | %d%% done, %d min left", a.Progress, a.RemainingMinutes())
	}
	if a.DueDate != "" {
		desc += " | due " + a.DueDate
	}
	return desc
}

func (i Item) FilterValue() string { return i.Assignment.Title }

type KeyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Include  key.Binding
	Complete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit/progress"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Include: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "include in planning"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(assignments []models.Assignment, width, height int) Model {
	l := list.New(items(assignments), list.NewDefaultDelegate(), width, height)
	l.Title = "Assignments"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Include, keys.Complete, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func items(assignments []models.Assignment) []list.Item {
	out := make([]list.Item, len(assignments))
	for i, a := range assignments {
		out[i] = Item{Assignment: a}
	}
	return out
}

func (m *Model) SetAssignments(assignments []models.Assignment) {
	m.list.SetItems(items(assignments))
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddMsg{} }
		}
		if i, ok := m.list.SelectedItem().(Item); ok {
			switch {
			case key.Matches(msg, m.keys.Edit):
				return m, func() tea.Msg { return EditMsg(i) }
			case key.Matches(msg, m.keys.Delete):
				return m, func() tea.Msg { return DeleteMsg(i) }
			case key.Matches(msg, m.keys.Include):
				return m, func() tea.Msg { return ToggleIncludeMsg(i) }
			case key.Matches(msg, m.keys.Complete):
				return m, func() tea.Msg { return ToggleCompleteMsg(i) }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No assignments yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
