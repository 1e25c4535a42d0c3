package timetables

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/storage"
	"github.com/julianstephens/studyslot/internal/utils"
)

type ClassCmd struct {
	Add    ClassAddCmd    `cmd:"" help:"Add a class to a timetable."`
	Remove ClassRemoveCmd `cmd:"" help:"Remove a class from a timetable."`
}

type ClassAddCmd struct {
	Day       string `arg:"" help:"Weekday (Mon-Fri, 1-5 or 월-금)."`
	Start     string `arg:"" help:"Start time, e.g. 9:00 or 9시."`
	End       string `arg:"" help:"End time."`
	Subject   string `arg:"" optional:"" help:"Subject name."`
	Timetable string `short:"t" help:"Timetable name or ID. Defaults to the current one."`
}

func (c *ClassAddCmd) Run(ctx *cli.Context) error {
	entry, err := ParseEntry(c.Day, c.Start, c.End, c.Subject)
	if err != nil {
		return err
	}
	tt, err := storage.ResolveTimetable(ctx.Store, c.Timetable)
	if err != nil {
		return err
	}

	tt.Entries = append(tt.Entries, entry)
	if result := ctx.Validator.ValidateTimetable(tt); result.HasConflicts() {
		return result.Err()
	}
	if err := ctx.Store.ReplaceEntries(tt.ID, tt.Entries); err != nil {
		return err
	}
	ctx.Printf("Added %s to %q\n", describe(entry), tt.Name)
	return nil
}

type ClassRemoveCmd struct {
	Day       string `arg:"" help:"Weekday of the class."`
	Start     string `arg:"" help:"Start time of the class."`
	Timetable string `short:"t" help:"Timetable name or ID. Defaults to the current one."`
}

func (c *ClassRemoveCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseWeekday(c.Day)
	if err != nil {
		return err
	}
	start, err := utils.CanonicalTime(c.Start)
	if err != nil {
		return err
	}
	tt, err := storage.ResolveTimetable(ctx.Store, c.Timetable)
	if err != nil {
		return err
	}

	kept := make([]models.ScheduleEntry, 0, len(tt.Entries))
	var removed *models.ScheduleEntry
	for i, e := range tt.Entries {
		if removed == nil && e.Day == day && e.Start == start {
			removed = &tt.Entries[i]
			continue
		}
		kept = append(kept, e)
	}
	if removed == nil {
		return fmt.Errorf("no class on %s at %s in %q: %w", day, start, tt.Name, storage.ErrNotFound)
	}
	if err := ctx.Store.ReplaceEntries(tt.ID, kept); err != nil {
		return err
	}
	ctx.Printf("Removed %s from %q\n", describe(*removed), tt.Name)
	return nil
}

// ParseEntry builds a schedule entry from loosely formatted input. Times
// are canonicalized to HH:MM.
func ParseEntry(day, start, end, subject string) (models.ScheduleEntry, error) {
	d, err := models.ParseWeekday(day)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	s, err := utils.CanonicalTime(start)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	e, err := utils.CanonicalTime(end)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	return models.ScheduleEntry{
		Interval: models.Interval{Day: d, Start: s, End: e},
		Subject:  strings.TrimSpace(subject),
	}, nil
}

func describe(e models.ScheduleEntry) string {
	if e.Subject == "" {
		return e.Interval.String()
	}
	return fmt.Sprintf("%s (%s)", e.Subject, e.Interval)
}
