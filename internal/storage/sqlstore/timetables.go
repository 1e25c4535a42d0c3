package sqlstore

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/storage"
)

type timetableRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
}

type entryRow struct {
	ID          string `db:"id"`
	TimetableID string `db:"timetable_id"`
	Day         int    `db:"day"`
	Start       string `db:"start_time"`
	End         string `db:"end_time"`
	Subject     string `db:"subject"`
	Position    int    `db:"position"`
}

func (r entryRow) toModel() models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:       r.ID,
		Interval: models.Interval{Day: models.Weekday(r.Day), Start: r.Start, End: r.End},
		Subject:  r.Subject,
	}
}

const timetableColumns = "id, name, created_at"

func (s *Store) AddTimetable(tt models.Timetable) error {
	if tt.ID == "" {
		tt.ID = uuid.NewString()
	}
	if tt.CreatedAt == "" {
		tt.CreatedAt = timestamp()
	}
	return s.withTx(func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(tx.Rebind("INSERT INTO timetables (id, name, created_at) VALUES (?, ?, ?)"),
			tt.ID, tt.Name, tt.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert timetable %q: %w", tt.Name, err)
		}
		return insertEntries(tx, tt.ID, tt.Entries)
	})
}

func insertEntries(tx *sqlx.Tx, timetableID string, entries []models.ScheduleEntry) error {
	query := tx.Rebind(`INSERT INTO schedule_entries (id, timetable_id, day, start_time, end_time, subject, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for i, e := range entries {
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.Exec(query, id, timetableID, int(e.Day), e.Start, e.End, e.Subject, i); err != nil {
			return fmt.Errorf("failed to insert class %s: %w", e.Interval, err)
		}
	}
	return nil
}

func (s *Store) loadEntries(tt *models.Timetable) error {
	var rows []entryRow
	err := s.db.Select(&rows, s.db.Rebind(`SELECT id, timetable_id, day, start_time, end_time, subject, position
		FROM schedule_entries WHERE timetable_id = ? ORDER BY position`), tt.ID)
	if err != nil {
		return fmt.Errorf("failed to load classes for timetable %q: %w", tt.Name, err)
	}
	tt.Entries = make([]models.ScheduleEntry, 0, len(rows))
	for _, r := range rows {
		tt.Entries = append(tt.Entries, r.toModel())
	}
	return nil
}

func (s *Store) getTimetableWhere(where string, arg any, what string) (models.Timetable, error) {
	var row timetableRow
	query := s.db.Rebind("SELECT " + timetableColumns + " FROM timetables WHERE " + where)
	if err := s.db.Get(&row, query, arg); err != nil {
		return models.Timetable{}, notFound(err, what)
	}
	tt := models.Timetable{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}
	if err := s.loadEntries(&tt); err != nil {
		return models.Timetable{}, err
	}
	return tt, nil
}

func (s *Store) GetTimetable(id string) (models.Timetable, error) {
	return s.getTimetableWhere("id = ?", id, fmt.Sprintf("timetable %s", id))
}

func (s *Store) GetTimetableByName(name string) (models.Timetable, error) {
	return s.getTimetableWhere("name = ?", name, fmt.Sprintf("timetable %q", name))
}

func (s *Store) GetAllTimetables() ([]models.Timetable, error) {
	var rows []timetableRow
	if err := s.db.Select(&rows, "SELECT "+timetableColumns+" FROM timetables ORDER BY created_at, name"); err != nil {
		return nil, err
	}

	timetables := make([]models.Timetable, 0, len(rows))
	for _, row := range rows {
		tt := models.Timetable{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}
		if err := s.loadEntries(&tt); err != nil {
			return nil, err
		}
		timetables = append(timetables, tt)
	}
	return timetables, nil
}

func (s *Store) RenameTimetable(id, name string) error {
	res, err := s.db.Exec(s.db.Rebind("UPDATE timetables SET name = ? WHERE id = ?"), name, id)
	if err != nil {
		return fmt.Errorf("failed to rename timetable: %w", err)
	}
	return expectAffected(res, fmt.Sprintf("timetable %s", id))
}

func (s *Store) DeleteTimetable(id string) error {
	return s.withTx(func(tx *sqlx.Tx) error {
		var count int
		if err := tx.Get(&count, "SELECT count(*) FROM timetables"); err != nil {
			return err
		}
		var exists int
		if err := tx.Get(&exists, tx.Rebind("SELECT count(*) FROM timetables WHERE id = ?"), id); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("timetable %s: %w", id, storage.ErrNotFound)
		}
		if count <= 1 {
			return storage.ErrLastTimetable
		}

		stmts := []string{
			"DELETE FROM plan_items WHERE plan_id IN (SELECT id FROM plans WHERE timetable_id = ?)",
			"DELETE FROM plans WHERE timetable_id = ?",
			"DELETE FROM schedule_entries WHERE timetable_id = ?",
			"DELETE FROM timetables WHERE id = ?",
		}
		for _, stmt := range stmts {
			if _, err := tx.Exec(tx.Rebind(stmt), id); err != nil {
				return fmt.Errorf("failed to delete timetable: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) ReplaceEntries(timetableID string, entries []models.ScheduleEntry) error {
	return s.withTx(func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.Get(&exists, tx.Rebind("SELECT count(*) FROM timetables WHERE id = ?"), timetableID); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("timetable %s: %w", timetableID, storage.ErrNotFound)
		}
		if _, err := tx.Exec(tx.Rebind("DELETE FROM schedule_entries WHERE timetable_id = ?"), timetableID); err != nil {
			return fmt.Errorf("failed to clear classes: %w", err)
		}
		return insertEntries(tx, timetableID, entries)
	})
}
