package sqlstore

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/studyslot/internal/models"
)

const (
	prefAvoid     = "avoid"
	prefPreferred = "preferred"
)

func (s *Store) GetPreferences() (models.PreferenceSet, error) {
	var rows []struct {
		Kind  string `db:"kind"`
		Start string `db:"start_time"`
		End   string `db:"end_time"`
	}
	if err := s.db.Select(&rows, "SELECT kind, start_time, end_time FROM preferences ORDER BY kind, position"); err != nil {
		return models.PreferenceSet{}, err
	}

	prefs := models.PreferenceSet{Preferred: []models.TimeRange{}, Avoid: []models.TimeRange{}}
	for _, r := range rows {
		rng := models.TimeRange{Start: r.Start, End: r.End}
		switch r.Kind {
		case prefAvoid:
			prefs.Avoid = append(prefs.Avoid, rng)
		case prefPreferred:
			prefs.Preferred = append(prefs.Preferred, rng)
		}
	}
	return prefs, nil
}

func (s *Store) SavePreferences(prefs models.PreferenceSet) error {
	return s.withTx(func(tx *sqlx.Tx) error {
		if _, err := tx.Exec("DELETE FROM preferences"); err != nil {
			return fmt.Errorf("failed to clear preferences: %w", err)
		}
		query := tx.Rebind("INSERT INTO preferences (kind, start_time, end_time, position) VALUES (?, ?, ?, ?)")
		insert := func(kind string, ranges []models.TimeRange) error {
			for i, r := range ranges {
				if _, err := tx.Exec(query, kind, r.Start, r.End, i); err != nil {
					return fmt.Errorf("failed to save %s range %s: %w", kind, r, err)
				}
			}
			return nil
		}
		if err := insert(prefAvoid, prefs.Avoid); err != nil {
			return err
		}
		return insert(prefPreferred, prefs.Preferred)
	})
}
