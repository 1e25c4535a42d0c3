package system

import (
	"fmt"

	"github.com/julianstephens/studyslot/internal/cli"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
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
	ctx.Printf("%s", result.FormatReport())
	if !result.HasConflicts() {
		ctx.Println()
		return nil
	}
	return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
}
