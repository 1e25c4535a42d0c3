package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/storage"
	"github.com/julianstephens/studyslot/internal/utils"
)

type deleteAssignmentMsg struct {
	ID    string
	Title string
}

type clearPreferencesMsg struct{}

func (m *Model) openAssignmentForm(existing *models.Assignment) tea.Cmd {
	if existing == nil {
		estimate := constants.DefaultEstimateMin
		if settings, err := m.store.GetSettings(); err == nil && settings.DefaultEstimateMin > 0 {
			estimate = settings.DefaultEstimateMin
		}
		m.editing = nil
		m.assignmentForm = &AssignmentFormModel{
			Estimate: strconv.Itoa(estimate),
			Progress: "0",
			Priority: models.PriorityMedium,
			Included: true,
		}
		return m.openForm(constants.StateAddAssignment, NewAssignmentForm(m.assignmentForm))
	}

	m.editing = existing
	m.assignmentForm = &AssignmentFormModel{
		Title:    existing.Title,
		Due:      existing.DueDate,
		Estimate: strconv.Itoa(existing.EstimatedMin),
		Progress: strconv.Itoa(existing.Progress),
		Priority: existing.Priority,
		Included: existing.IncludedInPlanning,
	}
	return m.openForm(constants.StateEditAssignment, NewAssignmentForm(m.assignmentForm))
}

func (m *Model) openClassForm() tea.Cmd {
	m.classForm = &ClassFormModel{Day: models.Monday}
	return m.openForm(constants.StateAddClass, NewClassForm(m.classForm))
}

func (m *Model) openRemoveClassForm() tea.Cmd {
	tt := m.week.Timetable()
	if len(tt.Entries) == 0 {
		m.setStatus("No classes to remove.")
		return nil
	}
	m.removeForm = &RemoveClassFormModel{}
	return m.openForm(constants.StateRemoveClass, NewRemoveClassForm(m.removeForm, tt))
}

func (m *Model) openPreferenceForm() tea.Cmd {
	m.prefForm = &PreferenceFormModel{Avoid: true}
	return m.openForm(constants.StateAddPreference, NewPreferenceForm(m.prefForm))
}

func (m *Model) submitForm() error {
	switch m.state {
	case constants.StateAddAssignment, constants.StateEditAssignment:
		return m.submitAssignment()
	case constants.StateAddClass:
		return m.submitClass()
	case constants.StateRemoveClass:
		return m.submitRemoveClass()
	case constants.StateAddPreference:
		return m.submitPreference()
	}
	return nil
}

func (m *Model) submitAssignment() error {
	fm := m.assignmentForm
	a := models.Assignment{
		ID:   uuid.NewString(),
		Kind: constants.AssignmentKindSchool,
	}
	if m.editing != nil {
		a = *m.editing
	}
	a.Title = strings.TrimSpace(fm.Title)
	a.DueDate = strings.TrimSpace(fm.Due)
	a.EstimatedMin, _ = strconv.Atoi(strings.TrimSpace(fm.Estimate))
	a.Progress, _ = strconv.Atoi(strings.TrimSpace(fm.Progress))
	a.Priority = fm.Priority
	a.IncludedInPlanning = fm.Included
	if a.Progress == 100 {
		a.Completed = true
	}

	if result := m.validator.ValidateAssignment(a); result.HasConflicts() {
		for _, c := range result.Conflicts {
			if c.Type != constants.ConflictUnplaceable {
				return result.Err()
			}
		}
	}

	if m.editing == nil {
		if err := m.store.AddAssignment(a); err != nil {
			return err
		}
		m.setStatus("Added %q", a.Title)
	} else {
		if err := m.store.UpdateAssignment(a); err != nil {
			return err
		}
		m.setStatus("Updated %q", a.Title)
	}
	m.reload()
	return nil
}

func (m *Model) saveAssignment(a models.Assignment) {
	if err := m.store.UpdateAssignment(a); err != nil {
		m.setError(err)
		return
	}
	m.reload()
}

func (m *Model) deleteAssignment(msg deleteAssignmentMsg) {
	if err := m.store.DeleteAssignment(msg.ID); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Deleted %q", msg.Title)
	m.reload()
}

func (m *Model) submitClass() error {
	fm := m.classForm
	start, err := utils.CanonicalTime(fm.Start)
	if err != nil {
		return err
	}
	end, err := utils.CanonicalTime(fm.End)
	if err != nil {
		return err
	}

	tt := m.week.Timetable()
	entry := models.ScheduleEntry{
		Interval: models.Interval{Day: fm.Day, Start: start, End: end},
		Subject:  strings.TrimSpace(fm.Subject),
	}
	tt.Entries = append(append([]models.ScheduleEntry(nil), tt.Entries...), entry)
	if result := m.validator.ValidateTimetable(tt); result.HasConflicts() {
		return result.Err()
	}
	if err := m.store.ReplaceEntries(tt.ID, tt.Entries); err != nil {
		return err
	}
	m.setStatus("Added class %s", entry.Interval)
	m.reload()
	return nil
}

func (m *Model) submitRemoveClass() error {
	tt := m.week.Timetable()
	kept := make([]models.ScheduleEntry, 0, len(tt.Entries))
	for _, e := range tt.Entries {
		if e.ID != m.removeForm.EntryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(tt.Entries) {
		return fmt.Errorf("class: %w", storage.ErrNotFound)
	}
	if err := m.store.ReplaceEntries(tt.ID, kept); err != nil {
		return err
	}
	m.setStatus("Removed class")
	m.reload()
	return nil
}

func (m *Model) nextTimetable() {
	all, err := m.store.GetAllTimetables()
	if err != nil {
		m.setError(err)
		return
	}
	if len(all) < 2 {
		m.setStatus("Only one timetable; add more with 'studyslot timetable add'.")
		return
	}
	current := m.week.Timetable().ID
	next := all[0]
	for i, tt := range all {
		if tt.ID == current {
			next = all[(i+1)%len(all)]
		}
	}

	settings, err := m.store.GetSettings()
	if err != nil {
		m.setError(err)
		return
	}
	settings.CurrentTimetable = next.ID
	if err := m.store.SaveSettings(settings); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Planning against %q", next.Name)
	m.reload()
}

func (m *Model) submitPreference() error {
	fm := m.prefForm
	start, err := utils.CanonicalTime(fm.Start)
	if err != nil {
		return err
	}
	end, err := utils.CanonicalTime(fm.End)
	if err != nil {
		return err
	}
	r := models.TimeRange{Start: start, End: end}

	prefs := m.prefs
	if fm.Avoid {
		prefs.Avoid = append(append([]models.TimeRange(nil), prefs.Avoid...), r)
	} else {
		prefs.Preferred = append(append([]models.TimeRange(nil), prefs.Preferred...), r)
	}
	if result := m.validator.ValidatePreferences(prefs); result.HasConflicts() {
		return result.Err()
	}
	if err := m.store.SavePreferences(prefs); err != nil {
		return err
	}
	m.setStatus("Saved %s", r)
	m.reload()
	return nil
}

func (m *Model) clearPreferences() {
	if err := m.store.SavePreferences(models.PreferenceSet{}); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Preferences cleared")
	m.reload()
}

func (m *Model) generate() {
	tt := m.week.Timetable()
	all, err := m.store.GetAllAssignments()
	if err != nil {
		m.setError(err)
		return
	}
	var prefs *models.PreferenceSet
	if !m.noPrefs {
		p := m.prefs
		prefs = &p
	}
	recs, report := m.scheduler.RecommendWithReport(tt.Entries, all, prefs)
	m.recs.SetRecommendations(recs, report, m.noPrefs)
	m.setStatus("%d recommendation(s) for %q", len(recs), tt.Name)
}

func (m *Model) savePlan() {
	recs := m.recs.Recommendations()
	if len(recs) == 0 {
		m.setStatus("Nothing to save; press 'g' first.")
		return
	}
	saved, err := m.store.SavePlan(models.Plan{
		TimetableID:     m.week.Timetable().ID,
		Recommendations: recs,
	})
	if err != nil {
		m.setError(err)
		return
	}
	m.recs.SetSaved(&saved)
	m.setStatus("Saved plan revision %d", saved.Revision)
}
