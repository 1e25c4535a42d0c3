package storage

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
)

// Seed fills in default settings and creates a first timetable when the
// store has none. It is safe to call on an already seeded store.
func Seed(p Provider) error {
	settings, err := p.GetSettings()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	timetables, err := p.GetAllTimetables()
	if err != nil {
		return fmt.Errorf("failed to list timetables: %w", err)
	}
	if len(timetables) == 0 {
		tt := models.Timetable{ID: uuid.NewString(), Name: constants.DefaultTimetableName}
		if err := p.AddTimetable(tt); err != nil {
			return fmt.Errorf("failed to create default timetable: %w", err)
		}
		timetables = append(timetables, tt)
	}

	if !hasTimetable(timetables, settings.CurrentTimetable) {
		settings.CurrentTimetable = timetables[0].ID
	}

	if err := p.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}

func hasTimetable(timetables []models.Timetable, id string) bool {
	for _, tt := range timetables {
		if tt.ID == id {
			return true
		}
	}
	return false
}

// CurrentTimetable returns the timetable selected in settings.
func CurrentTimetable(p Provider) (models.Timetable, error) {
	settings, err := p.GetSettings()
	if err != nil {
		return models.Timetable{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if settings.CurrentTimetable == "" {
		return models.Timetable{}, fmt.Errorf("no timetable selected: %w", ErrNotFound)
	}
	return p.GetTimetable(settings.CurrentTimetable)
}

// ResolveTimetable finds a timetable by id or name. An empty ref selects the
// current timetable.
func ResolveTimetable(p Provider, ref string) (models.Timetable, error) {
	if ref == "" {
		return CurrentTimetable(p)
	}
	if tt, err := p.GetTimetable(ref); err == nil {
		return tt, nil
	} else if !errors.Is(err, ErrNotFound) {
		return models.Timetable{}, err
	}
	return p.GetTimetableByName(ref)
}
