package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/tui/components/assignmentlist"
)

func isFormState(s constants.SessionState) bool {
	switch s {
	case constants.StateAddAssignment, constants.StateEditAssignment,
		constants.StateAddClass, constants.StateRemoveClass, constants.StateAddPreference:
		return true
	}
	return false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
	}

	if isFormState(m.state) {
		return m, m.updateForm(msg)
	}
	if m.state == constants.StateConfirmDelete {
		return m, m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case constants.ConfirmationMsg:
		m.confirm = &msg
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case deleteAssignmentMsg:
		m.deleteAssignment(msg)
		return m, nil

	case clearPreferencesMsg:
		m.clearPreferences()
		return m, nil

	case assignmentlist.AddMsg:
		return m, m.openAssignmentForm(nil)

	case assignmentlist.EditMsg:
		a := msg.Assignment
		return m, m.openAssignmentForm(&a)

	case assignmentlist.DeleteMsg:
		return m, confirm("Delete \""+msg.Assignment.Title+"\"?", deleteAssignmentMsg{ID: msg.Assignment.ID, Title: msg.Assignment.Title})

	case assignmentlist.ToggleIncludeMsg:
		a := msg.Assignment
		a.IncludedInPlanning = !a.IncludedInPlanning
		m.saveAssignment(a)
		return m, nil

	case assignmentlist.ToggleCompleteMsg:
		a := msg.Assignment
		a.Completed = !a.Completed
		m.saveAssignment(a)
		return m, nil

	case tea.KeyMsg:
		if m.state == constants.StateAssignments && m.assignments.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab(-1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if handled, cmd := m.handleTabKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateAssignments:
		m.assignments, cmd = m.assignments.Update(msg)
	case constants.StateRecommendations:
		m.recs, cmd = m.recs.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab(step int) {
	idx := 0
	for i, s := range tabs {
		if s == m.state {
			idx = i
		}
	}
	m.state = tabs[(idx+step+len(tabs))%len(tabs)]
	m.status = ""
	m.formError = ""
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// Tabs, status line and help take the remaining rows
	h, v := docStyle.GetFrameSize()
	bodyHeight := height - v - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.week.SetWidth(width - h)
	m.assignments.SetSize(width-h, bodyHeight)
	m.recs.SetSize(width-h, bodyHeight)
}

func (m *Model) handleTabKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch m.state {
	case constants.StateWeek:
		switch {
		case key.Matches(msg, m.keys.Add):
			return true, m.openClassForm()
		case key.Matches(msg, m.keys.Remove):
			return true, m.openRemoveClassForm()
		case key.Matches(msg, m.keys.Next):
			m.nextTimetable()
			return true, nil
		}
	case constants.StateRecommendations:
		switch {
		case key.Matches(msg, m.keys.Generate):
			m.generate()
			return true, nil
		case key.Matches(msg, m.keys.NoPrefs):
			m.noPrefs = !m.noPrefs
			m.generate()
			return true, nil
		case key.Matches(msg, m.keys.Save):
			m.savePlan()
			return true, nil
		}
	case constants.StatePreferences:
		switch {
		case key.Matches(msg, m.keys.Add):
			return true, m.openPreferenceForm()
		case key.Matches(msg, m.keys.Clear):
			if m.prefs.IsEmpty() {
				return true, nil
			}
			return true, confirm("Clear all time preferences?", clearPreferencesMsg{})
		}
	}
	return false, nil
}

// confirm asks for a y/n answer and delivers msg on yes.
func confirm(message string, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return constants.ConfirmationMsg{
			Message: message,
			Action: func() tea.Cmd {
				return func() tea.Msg { return msg }
			},
		}
	}
}

func (m *Model) updateConfirm(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		var cmd tea.Cmd
		if m.confirm != nil && m.confirm.Action != nil {
			cmd = m.confirm.Action()
		}
		m.confirm = nil
		m.state = m.previousState
		return cmd
	case key.Matches(keyMsg, m.keys.Cancel), key.Matches(keyMsg, m.keys.Quit):
		m.confirm = nil
		m.state = m.previousState
	}
	return nil
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			m.setError(err)
		}
		m.closeForm()
		return nil
	case huh.StateAborted:
		m.closeForm()
		return nil
	}
	return cmd
}

func (m *Model) closeForm() {
	m.state = m.previousState
	m.form = nil
	m.assignmentForm = nil
	m.classForm = nil
	m.removeForm = nil
	m.prefForm = nil
	m.editing = nil
}

func (m *Model) openForm(state constants.SessionState, form *huh.Form) tea.Cmd {
	m.previousState = m.state
	m.state = state
	m.form = form.WithWidth(m.width)
	return m.form.Init()
}
