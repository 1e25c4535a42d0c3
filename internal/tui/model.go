package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/logger"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/scheduler"
	"github.com/julianstephens/studyslot/internal/storage"
	"github.com/julianstephens/studyslot/internal/tui/components/assignmentlist"
	"github.com/julianstephens/studyslot/internal/tui/components/recommendations"
	"github.com/julianstephens/studyslot/internal/tui/components/week"
	"github.com/julianstephens/studyslot/internal/validation"
)

// Tab states in display order.
var tabs = []constants.SessionState{
	constants.StateWeek,
	constants.StateAssignments,
	constants.StateRecommendations,
	constants.StatePreferences,
}

var tabTitles = []string{"Week", "Assignments", "Recommend", "Preferences"}

type Model struct {
	store     storage.Provider
	scheduler *scheduler.Scheduler
	validator *validation.Validator

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	week        week.Model
	assignments assignmentlist.Model
	recs        recommendations.Model
	prefs       models.PreferenceSet
	noPrefs     bool

	form           *huh.Form
	assignmentForm *AssignmentFormModel
	classForm      *ClassFormModel
	removeForm     *RemoveClassFormModel
	prefForm       *PreferenceFormModel
	editing        *models.Assignment
	confirm        *constants.ConfirmationMsg

	quitting          bool
	width             int
	height            int
	validationWarning string
	status            string
	formError         string
}

func NewModel(store storage.Provider, sched *scheduler.Scheduler, v *validation.Validator) Model {
	m := Model{
		store:       store,
		scheduler:   sched,
		validator:   v,
		state:       constants.StateWeek,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		week:        week.New(sched.Catalog()),
		assignments: assignmentlist.New(nil, 0, 0),
		recs:        recommendations.New(0, 0),
	}
	m.reload()
	return m
}

// reload refreshes every tab from the store.
func (m *Model) reload() {
	tt, err := storage.CurrentTimetable(m.store)
	if err != nil {
		m.setError(err)
	} else {
		m.week.SetTimetable(tt, m.scheduler.FindFreeSlots(tt.Entries))
		if plan, err := m.store.GetLatestPlan(tt.ID); err == nil {
			m.recs.SetSaved(&plan)
		} else {
			m.recs.SetSaved(nil)
		}
	}

	if all, err := m.store.GetAllAssignments(); err != nil {
		m.setError(err)
	} else {
		m.assignments.SetAssignments(all)
	}

	if prefs, err := m.store.GetPreferences(); err != nil {
		m.setError(err)
	} else {
		m.prefs = prefs
	}

	m.updateValidationStatus()
}

func (m *Model) setError(err error) {
	logger.Error("TUI operation failed", "error", err)
	m.status = ""
	m.formError = err.Error()
}

func (m *Model) setStatus(format string, a ...any) {
	m.formError = ""
	m.status = fmt.Sprintf(format, a...)
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus() {
	timetables, err := m.store.GetAllTimetables()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}
	all, err := m.store.GetAllAssignments()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}

	result := m.validator.ValidateAll(timetables, all, m.prefs)
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'studyslot validate'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateWeek:
		keys = append(keys, m.keys.Add, m.keys.Remove, m.keys.Next)
	case constants.StateRecommendations:
		keys = append(keys, m.keys.Generate, m.keys.NoPrefs, m.keys.Save)
	case constants.StatePreferences:
		keys = append(keys, m.keys.Add, m.keys.Clear)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case constants.StateWeek:
		actions = []key.Binding{m.keys.Add, m.keys.Remove, m.keys.Next}
	case constants.StateRecommendations:
		actions = []key.Binding{m.keys.Generate, m.keys.NoPrefs, m.keys.Save}
	case constants.StatePreferences:
		actions = []key.Binding{m.keys.Add, m.keys.Clear}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
