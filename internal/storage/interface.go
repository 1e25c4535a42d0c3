package storage

import (
	"errors"

	"github.com/julianstephens/studyslot/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist or is soft-deleted
	ErrNotFound = errors.New("not found")
	// ErrLastTimetable is returned when deleting the only remaining timetable
	ErrLastTimetable = errors.New("at least one timetable must remain")
	// ErrNotInitialized is returned by Load when the database has not been created
	ErrNotInitialized = errors.New("storage not initialized, run 'studyslot init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Timetables
	AddTimetable(models.Timetable) error
	GetTimetable(id string) (models.Timetable, error)
	GetTimetableByName(name string) (models.Timetable, error)
	GetAllTimetables() ([]models.Timetable, error)
	RenameTimetable(id, name string) error
	// DeleteTimetable removes a timetable and its entries. It returns
	// ErrLastTimetable when id is the only timetable left.
	DeleteTimetable(id string) error
	// ReplaceEntries swaps the timetable's class entries for entries.
	ReplaceEntries(timetableID string, entries []models.ScheduleEntry) error

	// Assignments
	AddAssignment(models.Assignment) error
	GetAssignment(id string) (models.Assignment, error)
	GetAllAssignments() ([]models.Assignment, error)
	GetAllAssignmentsIncludingDeleted() ([]models.Assignment, error)
	UpdateAssignment(models.Assignment) error
	DeleteAssignment(id string) error
	RestoreAssignment(id string) error

	// Preferences
	GetPreferences() (models.PreferenceSet, error)
	SavePreferences(models.PreferenceSet) error

	// Plans
	// SavePlan stores plan as the next revision for its timetable and
	// returns the saved plan with Revision and ID filled in.
	SavePlan(models.Plan) (models.Plan, error)
	GetLatestPlan(timetableID string) (models.Plan, error)
	GetPlanRevision(timetableID string, revision int) (models.Plan, error)

	// Utils
	GetConfigPath() string
}
