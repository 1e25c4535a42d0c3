package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/studyslot/internal/backup"
	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/storage"
	"github.com/julianstephens/studyslot/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
	// warnOnly failures do not fail the run
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Clock/timezone", needsDB: true, run: checkClockTimezone},
	{name: "Current timetable", needsDB: true, run: checkCurrentTimetable},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	return m.Runner().ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	st, err := m.Runner().Status()
	if err != nil {
		return err
	}
	if !st.UpToDate() {
		return fmt.Errorf("%d pending migration(s), schema at version %d of %d; run 'studyslot migrate'", len(st.Pending), st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, ok := ctx.BackupManager()
	if !ok {
		return nil
	}
	latest, err := mgr.Latest()
	if errors.Is(err, backup.ErrNoBackups) {
		return fmt.Errorf("no backups found in %s; run 'studyslot backup create'", mgr.BackupDir())
	}
	if err != nil {
		return err
	}
	if age := time.Since(latest.Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	timetables, err := ctx.Store.GetAllTimetables()
	if err != nil {
		return err
	}
	assignments, err := ctx.Store.GetAllAssignments()
	if err != nil {
		return err
	}
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}
	result := ctx.Validator.ValidateAll(timetables, assignments, prefs)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found; run 'studyslot validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("stored timezone %q is not a valid IANA name", settings.Timezone)
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkCurrentTimetable(ctx *cli.Context) error {
	_, err := storage.CurrentTimetable(ctx.Store)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no valid timetable selected; run 'studyslot timetable use <name>'")
	}
	return err
}
