package sqlstore

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/studyslot/internal/models"
)

type planRow struct {
	ID          string `db:"id"`
	TimetableID string `db:"timetable_id"`
	Revision    int    `db:"revision"`
	AcceptedAt  string `db:"accepted_at"`
}

type planItemRow struct {
	PlanID       string `db:"plan_id"`
	Position     int    `db:"position"`
	Day          int    `db:"day"`
	Start        string `db:"start_time"`
	End          string `db:"end_time"`
	AssignmentID string `db:"assignment_id"`
	Assignment   string `db:"assignment"`
	RemainingMin int    `db:"remaining_min"`
	Reason       string `db:"reason"`
}

// SavePlan never overwrites an earlier revision; every call appends one.
func (s *Store) SavePlan(plan models.Plan) (models.Plan, error) {
	plan.ID = uuid.NewString()
	if plan.AcceptedAt == "" {
		plan.AcceptedAt = timestamp()
	}

	err := s.withTx(func(tx *sqlx.Tx) error {
		var latest int
		if err := tx.Get(&latest, tx.Rebind("SELECT COALESCE(MAX(revision), 0) FROM plans WHERE timetable_id = ?"), plan.TimetableID); err != nil {
			return fmt.Errorf("failed to read latest plan revision: %w", err)
		}
		plan.Revision = latest + 1

		if _, err := tx.Exec(tx.Rebind("INSERT INTO plans (id, timetable_id, revision, accepted_at) VALUES (?, ?, ?, ?)"),
			plan.ID, plan.TimetableID, plan.Revision, plan.AcceptedAt); err != nil {
			return fmt.Errorf("failed to insert plan: %w", err)
		}

		query := tx.Rebind(`INSERT INTO plan_items (plan_id, position, day, start_time, end_time, assignment_id, assignment, remaining_min, reason)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		for i, rec := range plan.Recommendations {
			snapshot, err := json.Marshal(rec.Assignment)
			if err != nil {
				return fmt.Errorf("failed to encode assignment %q: %w", rec.Assignment.Title, err)
			}
			if _, err := tx.Exec(query, plan.ID, i, int(rec.Slot.Day), rec.Slot.Start, rec.Slot.End,
				rec.Assignment.ID, string(snapshot), rec.RemainingMin, rec.Reason); err != nil {
				return fmt.Errorf("failed to insert plan item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Plan{}, err
	}
	return plan, nil
}

func (s *Store) loadPlan(where string, args ...any) (models.Plan, error) {
	var row planRow
	query := s.db.Rebind("SELECT id, timetable_id, revision, accepted_at FROM plans WHERE " + where)
	if err := s.db.Get(&row, query, args...); err != nil {
		return models.Plan{}, notFound(err, "plan")
	}

	var items []planItemRow
	err := s.db.Select(&items, s.db.Rebind(`SELECT plan_id, position, day, start_time, end_time, assignment_id, assignment, remaining_min, reason
		FROM plan_items WHERE plan_id = ? ORDER BY position`), row.ID)
	if err != nil {
		return models.Plan{}, fmt.Errorf("failed to load plan items: %w", err)
	}

	plan := models.Plan{
		ID:              row.ID,
		TimetableID:     row.TimetableID,
		Revision:        row.Revision,
		AcceptedAt:      row.AcceptedAt,
		Recommendations: make([]models.Recommendation, 0, len(items)),
	}
	for _, it := range items {
		var a models.Assignment
		if err := json.Unmarshal([]byte(it.Assignment), &a); err != nil {
			return models.Plan{}, fmt.Errorf("failed to decode assignment snapshot for %s: %w", it.AssignmentID, err)
		}
		plan.Recommendations = append(plan.Recommendations, models.Recommendation{
			Slot:         models.Interval{Day: models.Weekday(it.Day), Start: it.Start, End: it.End},
			Assignment:   a,
			RemainingMin: it.RemainingMin,
			Reason:       it.Reason,
		})
	}
	return plan, nil
}

func (s *Store) GetLatestPlan(timetableID string) (models.Plan, error) {
	return s.loadPlan("timetable_id = ? ORDER BY revision DESC LIMIT 1", timetableID)
}

func (s *Store) GetPlanRevision(timetableID string, revision int) (models.Plan, error) {
	return s.loadPlan("timetable_id = ? AND revision = ?", timetableID, revision)
}
