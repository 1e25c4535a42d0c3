package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/scheduler"
	"github.com/julianstephens/studyslot/internal/storage"
	"github.com/julianstephens/studyslot/internal/storage/sqlite"
	"github.com/julianstephens/studyslot/internal/tui/components/assignmentlist"
	"github.com/julianstephens/studyslot/internal/validation"
)

func setupTestModel(t *testing.T) (Model, storage.Provider) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tt, err := storage.CurrentTimetable(store)
	if err != nil {
		t.Fatalf("CurrentTimetable failed: %v", err)
	}
	if err := store.ReplaceEntries(tt.ID, []models.ScheduleEntry{
		{Interval: models.Interval{Day: models.Monday, Start: "09:00", End: "10:00"}, Subject: "Math"},
	}); err != nil {
		t.Fatalf("ReplaceEntries failed: %v", err)
	}
	if err := store.AddAssignment(models.Assignment{ID: "a1", Title: "Essay", EstimatedMin: 60, IncludedInPlanning: true}); err != nil {
		t.Fatalf("AddAssignment failed: %v", err)
	}

	sched := scheduler.NewDefault()
	m := NewModel(store, sched, validation.New(sched.Catalog().LongestPeriodMin()))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), store
}

func press(t *testing.T, m Model, keys string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestTabCycle(t *testing.T) {
	m, _ := setupTestModel(t)
	if m.state != constants.StateWeek {
		t.Fatalf("initial state = %v, want week", m.state)
	}

	want := []constants.SessionState{
		constants.StateAssignments,
		constants.StateRecommendations,
		constants.StatePreferences,
		constants.StateWeek,
	}
	for _, w := range want {
		m, _ = press(t, m, "tab")
		if m.state != w {
			t.Fatalf("state = %v, want %v", m.state, w)
		}
	}

	m, _ = press(t, m, "shift+tab")
	if m.state != constants.StatePreferences {
		t.Errorf("shift+tab state = %v, want preferences", m.state)
	}
}

func TestWeekViewShowsFreePeriods(t *testing.T) {
	m, _ := setupTestModel(t)
	view := m.View()
	for _, want := range []string{"Week", "Math", "free"} {
		if !strings.Contains(view, want) {
			t.Errorf("week view missing %q", want)
		}
	}
}

func TestGenerateAndSave(t *testing.T) {
	m, store := setupTestModel(t)
	m.state = constants.StateRecommendations

	m, _ = press(t, m, "g")
	recs := m.recs.Recommendations()
	if len(recs) != 1 || recs[0].Assignment.Title != "Essay" {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
	// Monday 09:00 is a class, so the first free period is Monday 10:00
	if recs[0].Slot != (models.Interval{Day: models.Monday, Start: "10:00", End: "11:00"}) {
		t.Errorf("unexpected slot %v", recs[0].Slot)
	}

	m, _ = press(t, m, "s")
	tt := m.week.Timetable()
	plan, err := store.GetLatestPlan(tt.ID)
	if err != nil {
		t.Fatalf("GetLatestPlan failed: %v", err)
	}
	if plan.Revision != 1 || len(plan.Recommendations) != 1 {
		t.Errorf("unexpected saved plan: %+v", plan)
	}
	if !strings.Contains(m.status, "revision 1") {
		t.Errorf("status = %q", m.status)
	}
}

func TestToggleNoPrefs(t *testing.T) {
	m, store := setupTestModel(t)
	if err := store.SavePreferences(models.PreferenceSet{Avoid: []models.TimeRange{{Start: "00:00", End: "23:59"}}}); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}
	m.reload()
	m.state = constants.StateRecommendations

	m, _ = press(t, m, "g")
	if len(m.recs.Recommendations()) != 0 {
		t.Fatal("avoid-all preference should block every period")
	}
	m, _ = press(t, m, "n")
	if !m.noPrefs || len(m.recs.Recommendations()) != 1 {
		t.Errorf("ignoring preferences should produce a recommendation")
	}
}

func TestDeleteAssignmentConfirmation(t *testing.T) {
	m, store := setupTestModel(t)
	m.state = constants.StateAssignments

	a, err := store.GetAssignment("a1")
	if err != nil {
		t.Fatalf("GetAssignment failed: %v", err)
	}
	next, cmd := m.Update(assignmentlist.DeleteMsg{Assignment: a})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected a confirmation command")
	}
	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.state != constants.StateConfirmDelete || !strings.Contains(m.View(), "Essay") {
		t.Fatalf("expected confirmation for Essay, state %v", m.state)
	}

	m, cmd = press(t, m, "y")
	if m.state != constants.StateAssignments || cmd == nil {
		t.Fatalf("confirm should return to assignments with an action, state %v", m.state)
	}
	next, _ = m.Update(cmd())
	m = next.(Model)

	if _, err := store.GetAssignment("a1"); err == nil {
		t.Error("assignment should be deleted after confirmation")
	}
	if !strings.Contains(m.status, "Deleted") {
		t.Errorf("status = %q", m.status)
	}
}

func TestToggleInclude(t *testing.T) {
	m, store := setupTestModel(t)
	a, _ := store.GetAssignment("a1")

	next, _ := m.Update(assignmentlist.ToggleIncludeMsg{Assignment: a})
	m = next.(Model)
	got, _ := store.GetAssignment("a1")
	if got.IncludedInPlanning {
		t.Error("toggle should exclude the assignment")
	}
	if m.formError != "" {
		t.Errorf("unexpected error %q", m.formError)
	}
}
