package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()

	if c.Force && !cli.IsPostgres(ctx.Config.Database) {
		if c.Source != "" {
			absDB, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDB
			}
			if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized studyslot storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		source, err := cli.OpenStore(c.Source)
		if err != nil {
			return err
		}
		if err := source.Load(); err != nil {
			return fmt.Errorf("failed to load source database: %w", err)
		}
		defer source.Close()

		if err := CopyData(ctx, source, ctx.Store); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

// CopyData copies every record from src into a freshly initialized dst. The
// timetable dst seeded for itself is dropped when src brings its own.
func CopyData(ctx *cli.Context, src, dst storage.Provider) error {
	seeded, err := dst.GetAllTimetables()
	if err != nil {
		return err
	}

	ctx.Println("  Copying timetables...")
	timetables, err := src.GetAllTimetables()
	if err != nil {
		return fmt.Errorf("failed to get timetables from source: %w", err)
	}
	copied := make(map[string]bool, len(timetables))
	for _, tt := range timetables {
		if err := dst.AddTimetable(tt); err != nil {
			return fmt.Errorf("failed to add timetable %q: %w", tt.Name, err)
		}
		copied[tt.ID] = true
	}
	if len(timetables) > 0 {
		for _, tt := range seeded {
			if copied[tt.ID] {
				continue
			}
			if err := dst.DeleteTimetable(tt.ID); err != nil && !errors.Is(err, storage.ErrLastTimetable) {
				return fmt.Errorf("failed to drop seeded timetable: %w", err)
			}
		}
	}
	ctx.Printf("    Copied %d timetables\n", len(timetables))

	ctx.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	ctx.Println("  Copying assignments...")
	assignments, err := src.GetAllAssignmentsIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get assignments from source: %w", err)
	}
	for _, a := range assignments {
		if err := dst.AddAssignment(a); err != nil {
			return fmt.Errorf("failed to add assignment %s: %w", a.ID, err)
		}
		if a.DeletedAt != nil {
			if err := dst.DeleteAssignment(a.ID); err != nil {
				return fmt.Errorf("failed to mark assignment %s deleted: %w", a.ID, err)
			}
		}
	}
	ctx.Printf("    Copied %d assignments\n", len(assignments))

	ctx.Println("  Copying preferences...")
	prefs, err := src.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences from source: %w", err)
	}
	if err := dst.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	ctx.Println("  Copying plans...")
	plans := 0
	for _, tt := range timetables {
		for rev := 1; ; rev++ {
			plan, err := src.GetPlanRevision(tt.ID, rev)
			if errors.Is(err, storage.ErrNotFound) {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to get plan revision %d: %w", rev, err)
			}
			if _, err := dst.SavePlan(plan); err != nil {
				return fmt.Errorf("failed to save plan revision %d: %w", rev, err)
			}
			plans++
		}
	}
	ctx.Printf("    Copied %d plans\n", plans)
	return nil
}
