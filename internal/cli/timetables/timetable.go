package timetables

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/storage"
	"github.com/julianstephens/studyslot/internal/tui/components/week"
)

type TimetableCmd struct {
	List   TimetableListCmd   `cmd:"" help:"List timetables." default:"1"`
	Add    TimetableAddCmd    `cmd:"" help:"Create an empty timetable."`
	Rename TimetableRenameCmd `cmd:"" help:"Rename a timetable."`
	Delete TimetableDeleteCmd `cmd:"" help:"Delete a timetable and its plans."`
	Use    TimetableUseCmd    `cmd:"" help:"Select the timetable planning runs against."`
	Show   TimetableShowCmd   `cmd:"" help:"Show the weekly grid with free periods."`
}

type TimetableListCmd struct{}

func (c *TimetableListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Store.GetAllTimetables()
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	for _, tt := range all {
		marker := " "
		if tt.ID == settings.CurrentTimetable {
			marker = "*"
		}
		ctx.Printf("%s %s  %s (%d classes)\n", marker, cli.ShortID(tt.ID), tt.Name, len(tt.Entries))
	}
	return nil
}

type TimetableAddCmd struct {
	Name string `arg:"" help:"Timetable name."`
	Use  bool   `help:"Select the new timetable."`
}

func (c *TimetableAddCmd) Run(ctx *cli.Context) error {
	tt := models.Timetable{Name: strings.TrimSpace(c.Name)}
	if result := ctx.Validator.ValidateTimetable(tt); result.HasConflicts() {
		return result.Err()
	}
	if _, err := ctx.Store.GetTimetableByName(tt.Name); err == nil {
		return fmt.Errorf("a timetable named %q already exists", tt.Name)
	}
	if err := ctx.Store.AddTimetable(tt); err != nil {
		return err
	}
	ctx.Printf("Added timetable %q\n", tt.Name)
	if c.Use {
		return selectTimetable(ctx, tt.Name)
	}
	return nil
}

type TimetableRenameCmd struct {
	Timetable string `arg:"" help:"Timetable name or ID."`
	Name      string `arg:"" help:"New name."`
}

func (c *TimetableRenameCmd) Run(ctx *cli.Context) error {
	tt, err := storage.ResolveTimetable(ctx.Store, c.Timetable)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("timetable name must not be empty")
	}
	if err := ctx.Store.RenameTimetable(tt.ID, name); err != nil {
		return err
	}
	ctx.Printf("Renamed %q to %q\n", tt.Name, name)
	return nil
}

type TimetableDeleteCmd struct {
	Timetable string `arg:"" help:"Timetable name or ID."`
}

func (c *TimetableDeleteCmd) Run(ctx *cli.Context) error {
	tt, err := storage.ResolveTimetable(ctx.Store, c.Timetable)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteTimetable(tt.ID); err != nil {
		if errors.Is(err, storage.ErrLastTimetable) {
			return fmt.Errorf("cannot delete %q: %w", tt.Name, err)
		}
		return err
	}
	ctx.Printf("Deleted timetable %q\n", tt.Name)

	// Keep the selection pointing at a timetable that exists
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if settings.CurrentTimetable == tt.ID {
		return storage.Seed(ctx.Store)
	}
	return nil
}

type TimetableUseCmd struct {
	Timetable string `arg:"" help:"Timetable name or ID."`
}

func (c *TimetableUseCmd) Run(ctx *cli.Context) error {
	return selectTimetable(ctx, c.Timetable)
}

func selectTimetable(ctx *cli.Context, ref string) error {
	tt, err := storage.ResolveTimetable(ctx.Store, ref)
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	settings.CurrentTimetable = tt.ID
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}
	ctx.Printf("Now planning against %q\n", tt.Name)
	return nil
}

type TimetableShowCmd struct {
	Timetable string `arg:"" optional:"" help:"Timetable name or ID. Defaults to the current one."`
}

func (c *TimetableShowCmd) Run(ctx *cli.Context) error {
	tt, err := storage.ResolveTimetable(ctx.Store, c.Timetable)
	if err != nil {
		return err
	}
	ctx.Println(RenderWeek(ctx, tt))
	return nil
}

// RenderWeek draws the catalog grid with class subjects in occupied cells
// and "free" elsewhere.
func RenderWeek(ctx *cli.Context, tt models.Timetable) string {
	grid := week.New(ctx.Scheduler.Catalog())
	grid.SetTimetable(tt, ctx.Scheduler.FindFreeSlots(tt.Entries))
	return grid.View()
}
