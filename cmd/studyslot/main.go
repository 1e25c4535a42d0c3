package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/cli/assignments"
	"github.com/julianstephens/studyslot/internal/cli/backups"
	"github.com/julianstephens/studyslot/internal/cli/plans"
	"github.com/julianstephens/studyslot/internal/cli/prefs"
	"github.com/julianstephens/studyslot/internal/cli/system"
	"github.com/julianstephens/studyslot/internal/cli/timetables"
	"github.com/julianstephens/studyslot/internal/cli/transfer"
	"github.com/julianstephens/studyslot/internal/config"
	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/errors"
	"github.com/julianstephens/studyslot/internal/logger"
	"github.com/julianstephens/studyslot/internal/scheduler"
	"github.com/julianstephens/studyslot/internal/validation"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path. Defaults to ~/.config/studyslot/config.yaml when present." type:"path"`
	Database string `help:"SQLite path, PostgreSQL connection string, or 'keyring'. PostgreSQL connection strings must NOT embed a password; store them with 'studyslot keyring set' instead." short:"d"`
	Debug    bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize studyslot storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Validate system.ValidateCmd `cmd:"" help:"Check timetables, assignments and preferences for conflicts."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup   backups.BackupCmd  `cmd:"" help:"Manage database backups."`

	Timetable  timetables.TimetableCmd   `cmd:"" help:"Manage timetables."`
	Class      timetables.ClassCmd       `cmd:"" help:"Manage classes in a timetable."`
	Assignment assignments.AssignmentCmd `cmd:"" help:"Manage assignments." aliases:"a"`
	Prefs      prefs.PrefsCmd            `cmd:"" help:"Manage preferred and avoided study times."`
	Recommend  plans.RecommendCmd        `cmd:"" help:"Recommend free periods for pending assignments."`
	Plan       plans.PlanCmd             `cmd:"" help:"Show saved plans."`
	Import     transfer.ImportCmd        `cmd:"" help:"Import a planner snapshot."`
	Export     transfer.ExportCmd        `cmd:"" help:"Export a planner snapshot."`
}

// Commands that load the store themselves.
var skipLoad = map[string]bool{
	"init":   true,
	"doctor": true,
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Find free class periods and fill them with your assignments"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Database != "" {
		cfg.Database = CLI.Database
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: config.DefaultDir()}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Close() }()
	logger.Debug("Starting studyslot", "command", kctx.Command(), "database", cfg.Database, "log", logger.Path())

	catalog, err := cfg.BuildCatalog()
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Scheduler: scheduler.New(catalog),
		Validator: validation.New(catalog.LongestPeriodMin()),
		Config:    cfg,
	}

	// keyring commands manage the connection string and never touch the store
	top := strings.Fields(kctx.Command())[0]
	if top != "keyring" {
		store, err := cli.OpenStore(cfg.Database)
		if err != nil {
			errors.Fatal(err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close storage", "error", err)
			}
		}()
		appCtx.Store = store

		if !skipLoad[top] {
			if err := store.Load(); err != nil {
				errors.Fatal(err)
			}
		}
	}

	if err := kctx.Run(appCtx); err != nil {
		if appCtx.Store != nil {
			_ = appCtx.Store.Close()
		}
		errors.Fatal(err)
	}
}
