package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
)

type assignmentRow struct {
	ID                 string         `db:"id"`
	Title              string         `db:"title"`
	DueDate            string         `db:"due_date"`
	EstimatedMin       int            `db:"estimated_min"`
	Priority           string         `db:"priority"`
	Completed          bool           `db:"completed"`
	IncludedInPlanning bool           `db:"included_in_planning"`
	Progress           int            `db:"progress"`
	Kind               string         `db:"kind"`
	Memo               string         `db:"memo"`
	Repeat             string         `db:"repeat_rule"`
	Reminder           string         `db:"reminder"`
	CreatedAt          string         `db:"created_at"`
	DeletedAt          sql.NullString `db:"deleted_at"`
}

func (r assignmentRow) toModel() models.Assignment {
	a := models.Assignment{
		ID:                 r.ID,
		Title:              r.Title,
		DueDate:            r.DueDate,
		EstimatedMin:       r.EstimatedMin,
		Priority:           models.Priority(r.Priority),
		Completed:          r.Completed,
		IncludedInPlanning: r.IncludedInPlanning,
		Progress:           r.Progress,
		Kind:               constants.AssignmentKind(r.Kind),
		Memo:               r.Memo,
		Repeat:             r.Repeat,
		Reminder:           r.Reminder,
		CreatedAt:          r.CreatedAt,
	}
	if r.DeletedAt.Valid {
		a.DeletedAt = &r.DeletedAt.String
	}
	return a
}

const assignmentColumns = `id, title, due_date, estimated_min, priority, completed, included_in_planning,
	progress, kind, memo, repeat_rule, reminder, created_at, deleted_at`

func withDefaults(a models.Assignment) models.Assignment {
	if a.Priority == "" {
		a.Priority = models.PriorityMedium
	}
	if a.Kind == "" {
		a.Kind = constants.AssignmentKindSchool
	}
	if a.Repeat == "" {
		a.Repeat = "none"
	}
	if a.Reminder == "" {
		a.Reminder = "none"
	}
	return a
}

func (s *Store) AddAssignment(a models.Assignment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt == "" {
		a.CreatedAt = timestamp()
	}
	a = withDefaults(a)

	_, err := s.db.Exec(s.db.Rebind(`INSERT INTO assignments (`+assignmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`),
		a.ID, a.Title, a.DueDate, a.EstimatedMin, string(a.Priority), a.Completed, a.IncludedInPlanning,
		a.Progress, string(a.Kind), a.Memo, a.Repeat, a.Reminder, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert assignment %q: %w", a.Title, err)
	}
	return nil
}

func (s *Store) GetAssignment(id string) (models.Assignment, error) {
	var row assignmentRow
	err := s.db.Get(&row, s.db.Rebind("SELECT "+assignmentColumns+" FROM assignments WHERE id = ? AND deleted_at IS NULL"), id)
	if err != nil {
		return models.Assignment{}, notFound(err, fmt.Sprintf("assignment %s", id))
	}
	return row.toModel(), nil
}

func (s *Store) selectAssignments(query string) ([]models.Assignment, error) {
	var rows []assignmentRow
	if err := s.db.Select(&rows, query); err != nil {
		return nil, err
	}
	assignments := make([]models.Assignment, 0, len(rows))
	for _, r := range rows {
		assignments = append(assignments, r.toModel())
	}
	return assignments, nil
}

func (s *Store) GetAllAssignments() ([]models.Assignment, error) {
	return s.selectAssignments("SELECT " + assignmentColumns + " FROM assignments WHERE deleted_at IS NULL ORDER BY created_at, id")
}

func (s *Store) GetAllAssignmentsIncludingDeleted() ([]models.Assignment, error) {
	return s.selectAssignments("SELECT " + assignmentColumns + " FROM assignments ORDER BY created_at, id")
}

func (s *Store) UpdateAssignment(a models.Assignment) error {
	a = withDefaults(a)
	res, err := s.db.Exec(s.db.Rebind(`UPDATE assignments SET
		title = ?, due_date = ?, estimated_min = ?, priority = ?, completed = ?, included_in_planning = ?,
		progress = ?, kind = ?, memo = ?, repeat_rule = ?, reminder = ?
		WHERE id = ? AND deleted_at IS NULL`),
		a.Title, a.DueDate, a.EstimatedMin, string(a.Priority), a.Completed, a.IncludedInPlanning,
		a.Progress, string(a.Kind), a.Memo, a.Repeat, a.Reminder, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment %q: %w", a.Title, err)
	}
	return expectAffected(res, fmt.Sprintf("assignment %s", a.ID))
}

func (s *Store) DeleteAssignment(id string) error {
	res, err := s.db.Exec(s.db.Rebind("UPDATE assignments SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL"), timestamp(), id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return expectAffected(res, fmt.Sprintf("assignment %s", id))
}

func (s *Store) RestoreAssignment(id string) error {
	res, err := s.db.Exec(s.db.Rebind("UPDATE assignments SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL"), id)
	if err != nil {
		return fmt.Errorf("failed to restore assignment: %w", err)
	}
	return expectAffected(res, fmt.Sprintf("deleted assignment %s", id))
}
