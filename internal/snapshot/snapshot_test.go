package snapshot

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/storage"
	"github.com/julianstephens/studyslot/internal/storage/sqlite"
)

const legacyYAML = `
currentTimetableId: "1"
timetables:
  - id: "1"
    name: 시간표 1
    schedule:
      - {day: 월, startTime: "09:00", endTime: "10:00", subject: 데이터구조}
      - {day: 화, startTime: "9시", endTime: "10시 30분", subject: 운영체제}
      - {day: 토, startTime: "09:00", endTime: "10:00", subject: 주말}
      - {day: 수, startTime: "25:00", endTime: "26:00"}
assignments:
  - id: "1"
    title: 자료구조 과제
    dueDate: "2026-03-10"
    estimatedTime: 60
    priority: high
    completed: false
    type: school
    progress: 50
    addedToAI: true
  - id: "2"
    title: "  "
    estimatedTime: 30
preferences:
  avoidTimeSlots:
    - {startTime: "12:00", endTime: "13:00"}
  preferredTimeSlots:
    - {startTime: "13", endTime: "1700"}
    - {startTime: "x", endTime: "18:00"}
`

func TestDecodeLegacyYAML(t *testing.T) {
	doc, err := Decode(strings.NewReader(legacyYAML), FormatYAML)
	require.NoError(t, err)

	c, problems := doc.Convert()
	require.Len(t, c.Timetables, 1)
	tt := c.Timetables[0]
	assert.Equal(t, "시간표 1", tt.Name)
	require.Len(t, tt.Entries, 2)
	assert.Equal(t, models.Interval{Day: models.Monday, Start: "09:00", End: "10:00"}, tt.Entries[0].Interval)
	assert.Equal(t, models.Interval{Day: models.Tuesday, Start: "09:00", End: "10:30"}, tt.Entries[1].Interval)

	require.Len(t, c.Assignments, 1)
	a := c.Assignments[0]
	assert.Equal(t, "자료구조 과제", a.Title)
	assert.Equal(t, 60, a.EstimatedMin)
	assert.True(t, a.IncludedInPlanning)
	assert.Equal(t, models.PriorityHigh, a.Priority)
	assert.Equal(t, 30, a.RemainingMinutes())

	assert.Equal(t, []models.TimeRange{{Start: "12:00", End: "13:00"}}, c.Preferences.Avoid)
	assert.Equal(t, []models.TimeRange{{Start: "13:00", End: "17:00"}}, c.Preferences.Preferred)

	// weekend slot, out of range slot, blank title, bad preferred range
	require.Len(t, problems, 4)
	assert.Contains(t, problems[0].String(), "slot 3")
	assert.Contains(t, problems[1].String(), "slot 4")
	assert.Contains(t, problems[2].String(), "missing title")
	assert.Contains(t, problems[3].String(), "preferred range 2")
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version": 99}`), FormatJSON)
	assert.ErrorContains(t, err, "newer than supported")
}

func TestDecodeEmptyYAML(t *testing.T) {
	doc, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	c, problems := doc.Convert()
	assert.Empty(t, c.Timetables)
	assert.Empty(t, problems)
	assert.True(t, c.Preferences.IsEmpty())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("plan.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("plan.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("plan"))
}

func TestEncodeUsesLegacyFieldNames(t *testing.T) {
	deleted := "2026-03-01T00:00:00Z"
	doc := FromContents(Contents{
		Timetables: []models.Timetable{{
			ID:   "tt",
			Name: "Spring",
			Entries: []models.ScheduleEntry{
				{Interval: models.Interval{Day: models.Thursday, Start: "09:00", End: "10:00"}, Subject: "Math"},
			},
		}},
		Assignments: []models.Assignment{
			{ID: "a1", Title: "Essay", EstimatedMin: 45, IncludedInPlanning: true},
			{ID: "a2", Title: "Gone", EstimatedMin: 10, DeletedAt: &deleted},
		},
		Preferences: models.PreferenceSet{Avoid: []models.TimeRange{{Start: "12:00", End: "13:00"}}},
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc, FormatJSON))
	out := buf.String()
	for _, field := range []string{`"startTime"`, `"endTime"`, `"estimatedTime": 45`, `"addedToAI": true`, `"avoidTimeSlots"`, `"day": "Thu"`} {
		assert.Contains(t, out, field)
	}
	assert.NotContains(t, out, "Gone")

	back, err := Decode(&buf, FormatJSON)
	require.NoError(t, err)
	c, problems := back.Convert()
	assert.Empty(t, problems)
	assert.Equal(t, models.Thursday, c.Timetables[0].Entries[0].Day)
}

func TestConvertSkipsNonNumericAssignments(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `{"assignments": [
			{"id": "good", "title": "Essay", "estimatedTime": 30, "progress": "25", "addedToAI": true},
			{"id": "bad", "title": "Lab report", "estimatedTime": "abc", "addedToAI": true},
			{"id": "worse", "title": "Reading", "estimatedTime": 20, "progress": true}
		]}`},
		{"yaml", FormatYAML, `
assignments:
  - {id: good, title: Essay, estimatedTime: "30", progress: 25, addedToAI: true}
  - {id: bad, title: Lab report, estimatedTime: abc, addedToAI: true}
  - {id: worse, title: Reading, estimatedTime: 20, progress: [1]}
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Decode(strings.NewReader(tc.input), tc.format)
			require.NoError(t, err)

			c, problems := doc.Convert()
			require.Len(t, c.Assignments, 1)
			assert.Equal(t, "good", c.Assignments[0].ID)
			assert.Equal(t, 30, c.Assignments[0].EstimatedMin)
			assert.Equal(t, 25, c.Assignments[0].Progress)

			require.Len(t, problems, 2)
			assert.Contains(t, problems[0].String(), "Lab report")
			assert.Contains(t, problems[0].String(), "estimatedTime")
			assert.Contains(t, problems[1].String(), "progress")
		})
	}
}

func TestNumberDecoding(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		invalid bool
	}{
		{`45`, 45, false},
		{`45.9`, 45, false},
		{`" 60 "`, 60, false},
		{`null`, 0, false},
		{`"1h"`, 0, true},
		{`""`, 0, true},
		{`false`, 0, true},
	}
	for _, tt := range tests {
		var n Number
		require.NoError(t, n.UnmarshalJSON([]byte(tt.input)), tt.input)
		assert.Equal(t, tt.want, n.Value, tt.input)
		assert.Equal(t, tt.invalid, n.Invalid, tt.input)
	}
}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestImportAndExport(t *testing.T) {
	store := newStore(t)

	doc, err := Decode(strings.NewReader(legacyYAML), FormatYAML)
	require.NoError(t, err)
	c, _ := doc.Convert()

	sum, err := Import(store, c)
	require.NoError(t, err)
	assert.Equal(t, Summary{TimetablesAdded: 1, AssignmentsAdded: 1, PreferencesReplaced: true}, sum)

	current, err := storage.CurrentTimetable(store)
	require.NoError(t, err)
	assert.Equal(t, "시간표 1", current.Name)
	assert.NotEqual(t, "1", current.ID)
	assert.Len(t, current.Entries, 2)

	// Importing again replaces classes and updates the assignment in place
	c.Assignments[0].Progress = 80
	sum, err = Import(store, c)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.TimetablesReplaced)
	assert.Equal(t, 1, sum.AssignmentsUpdated)

	a, err := store.GetAssignment("1")
	require.NoError(t, err)
	assert.Equal(t, 80, a.Progress)

	exported, err := Export(store)
	require.NoError(t, err)
	assert.Len(t, exported.Timetables, 2)
	assert.Len(t, exported.Assignments, 1)
	assert.Equal(t, current.ID, exported.CurrentTimetableID)
	assert.Equal(t, c.Preferences, exported.Preferences)
}

func TestImportReaddsDeletedAssignment(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.AddAssignment(models.Assignment{ID: "1", Title: "Old", EstimatedMin: 20}))
	require.NoError(t, store.DeleteAssignment("1"))

	sum, err := Import(store, Contents{Assignments: []models.Assignment{{ID: "1", Title: "New", EstimatedMin: 20}}})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.AssignmentsAdded)

	all, err := store.GetAllAssignments()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "New", all[0].Title)
	assert.NotEqual(t, "1", all[0].ID)
}
