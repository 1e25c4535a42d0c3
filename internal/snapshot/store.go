package snapshot

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/studyslot/internal/storage"
)

// Summary counts what Import changed.
type Summary struct {
	TimetablesAdded     int
	TimetablesReplaced  int
	AssignmentsAdded    int
	AssignmentsUpdated  int
	PreferencesReplaced bool
}

func (s Summary) String() string {
	prefs := "kept"
	if s.PreferencesReplaced {
		prefs = "replaced"
	}
	return fmt.Sprintf("timetables: %d added, %d replaced; assignments: %d added, %d updated; preferences %s",
		s.TimetablesAdded, s.TimetablesReplaced, s.AssignmentsAdded, s.AssignmentsUpdated, prefs)
}

// Import merges c into p. Timetables match by name and have their classes
// replaced. Assignments match by ID and are updated in place. Preferences are
// replaced only when c carries any.
func Import(p storage.Provider, c Contents) (Summary, error) {
	var sum Summary

	ids := make(map[string]string, len(c.Timetables))
	for _, tt := range c.Timetables {
		existing, err := p.GetTimetableByName(tt.Name)
		switch {
		case err == nil:
			if err := p.ReplaceEntries(existing.ID, tt.Entries); err != nil {
				return sum, err
			}
			ids[tt.ID] = existing.ID
			sum.TimetablesReplaced++
		case errors.Is(err, storage.ErrNotFound):
			// Snapshot IDs come from other devices and are not trusted
			source := tt.ID
			tt.ID = uuid.NewString()
			if err := p.AddTimetable(tt); err != nil {
				return sum, err
			}
			ids[source] = tt.ID
			sum.TimetablesAdded++
		default:
			return sum, err
		}
	}

	all, err := p.GetAllAssignmentsIncludingDeleted()
	if err != nil {
		return sum, err
	}
	deleted := make(map[string]bool, len(all))
	for _, a := range all {
		deleted[a.ID] = a.DeletedAt != nil
	}

	for _, a := range c.Assignments {
		isDeleted, known := deleted[a.ID]
		if a.ID != "" && known && !isDeleted {
			current, err := p.GetAssignment(a.ID)
			if err != nil {
				return sum, err
			}
			a.CreatedAt = current.CreatedAt
			if err := p.UpdateAssignment(a); err != nil {
				return sum, err
			}
			sum.AssignmentsUpdated++
			continue
		}
		if known {
			a.ID = ""
		}
		if err := p.AddAssignment(a); err != nil {
			return sum, err
		}
		sum.AssignmentsAdded++
	}

	if !c.Preferences.IsEmpty() {
		if err := p.SavePreferences(c.Preferences); err != nil {
			return sum, err
		}
		sum.PreferencesReplaced = true
	}

	settings, err := p.GetSettings()
	if err != nil {
		return sum, err
	}
	if id, ok := ids[c.CurrentTimetableID]; ok && c.CurrentTimetableID != "" {
		settings.CurrentTimetable = id
	}
	settings.HideClasses = c.HideClasses
	if err := p.SaveSettings(settings); err != nil {
		return sum, err
	}
	return sum, nil
}

// Export reads everything a snapshot carries from p.
func Export(p storage.Provider) (Contents, error) {
	timetables, err := p.GetAllTimetables()
	if err != nil {
		return Contents{}, err
	}
	assignments, err := p.GetAllAssignments()
	if err != nil {
		return Contents{}, err
	}
	prefs, err := p.GetPreferences()
	if err != nil {
		return Contents{}, err
	}
	settings, err := p.GetSettings()
	if err != nil {
		return Contents{}, err
	}
	return Contents{
		Timetables:         timetables,
		CurrentTimetableID: settings.CurrentTimetable,
		Assignments:        assignments,
		Preferences:        prefs,
		HideClasses:        settings.HideClasses,
	}, nil
}
