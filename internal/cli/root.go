// Package cli holds the state shared by studyslot's kong commands.
// Commands live in the sub-packages and receive a *Context from Run.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/studyslot/internal/backup"
	"github.com/julianstephens/studyslot/internal/config"
	"github.com/julianstephens/studyslot/internal/keyring"
	"github.com/julianstephens/studyslot/internal/logger"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/scheduler"
	"github.com/julianstephens/studyslot/internal/storage"
	"github.com/julianstephens/studyslot/internal/storage/postgres"
	"github.com/julianstephens/studyslot/internal/storage/sqlite"
	"github.com/julianstephens/studyslot/internal/validation"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Validator *validation.Validator
	Config    *config.Config

	// Out and In default to stdout and stdin.
	Out io.Writer
	In  io.Reader
}

// IsPostgres reports whether database names a PostgreSQL server rather than
// a SQLite file.
func IsPostgres(database string) bool {
	return strings.HasPrefix(database, "postgres://") ||
		strings.HasPrefix(database, "postgresql://") ||
		strings.Contains(database, "host=")
}

// OpenStore picks the backend for database. "keyring" reads the connection
// string from the OS keyring. The store is not loaded.
func OpenStore(database string) (storage.Provider, error) {
	resolved, err := keyring.ResolveDatabase(database)
	if err != nil {
		return nil, err
	}
	if IsPostgres(resolved) {
		// Keyring entries may carry a password; the keyring is the safe place for it
		if database != "keyring" {
			if err := postgres.ValidateConnString(resolved); err != nil {
				return nil, err
			}
		}
		return postgres.New(resolved), nil
	}
	return sqlite.NewStore(config.ExpandHome(resolved)), nil
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, a ...any) {
	fmt.Fprintf(c.out(), format, a...)
}

func (c *Context) Println(a ...any) {
	fmt.Fprintln(c.out(), a...)
}

// Confirm asks a yes/no question. Anything but y/yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// BackupManager returns a backup manager when the store is a SQLite file.
func (c *Context) BackupManager() (*backup.Manager, bool) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, false
	}
	return backup.NewManager(c.Store.GetConfigPath()), true
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr, ok := c.BackupManager()
	if !ok {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Planning is the input and output of one recommendation run.
type Planning struct {
	Timetable       models.Timetable
	Preferences     models.PreferenceSet
	Recommendations []models.Recommendation
	Report          scheduler.Report
}

// Plan runs the scheduler against the current timetable. With noPrefs the
// stored preferences are ignored.
func (c *Context) Plan(noPrefs bool) (Planning, error) {
	tt, err := storage.CurrentTimetable(c.Store)
	if err != nil {
		return Planning{}, err
	}
	assignments, err := c.Store.GetAllAssignments()
	if err != nil {
		return Planning{}, err
	}
	prefs, err := c.Store.GetPreferences()
	if err != nil {
		return Planning{}, err
	}

	var prefArg *models.PreferenceSet
	if !noPrefs {
		prefArg = &prefs
	}
	recs, report := c.Scheduler.RecommendWithReport(tt.Entries, assignments, prefArg)
	return Planning{
		Timetable:       tt,
		Preferences:     prefs,
		Recommendations: recs,
		Report:          report,
	}, nil
}

// PrintRecommendations writes one line per recommendation, or the report's
// hints when there are none.
func (c *Context) PrintRecommendations(recs []models.Recommendation, report *scheduler.Report) {
	if len(recs) == 0 {
		c.Println("No recommendations.")
		if report != nil {
			for _, h := range report.Hints {
				c.Printf("  hint: %s\n", h)
			}
		}
		return
	}
	for i, r := range recs {
		c.Printf("%2d. %s  %s\n", i+1, r.Slot, r.Assignment.Title)
		c.Printf("    %s\n", r.Reason)
	}
}

// FindAssignment accepts a full ID, a unique ID prefix or an exact title
// (case-insensitive).
func (c *Context) FindAssignment(ref string) (models.Assignment, error) {
	if a, err := c.Store.GetAssignment(ref); err == nil {
		return a, nil
	}
	all, err := c.Store.GetAllAssignments()
	if err != nil {
		return models.Assignment{}, err
	}

	var matches []models.Assignment
	for _, a := range all {
		if strings.HasPrefix(a.ID, ref) || strings.EqualFold(a.Title, ref) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return models.Assignment{}, fmt.Errorf("assignment %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Assignment{}, fmt.Errorf("%q matches %d assignments; use a longer ID", ref, len(matches))
	}
}

// ShortID is the first eight characters of an ID, enough to pass back to
// FindAssignment.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
