package transfer

import (
	"fmt"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/snapshot"
)

type ImportCmd struct {
	File   string `arg:"" help:"Snapshot file (.yaml, .yml or .json)." type:"existingfile"`
	DryRun bool   `help:"Report what would be imported without writing anything." name:"dry-run"`
	Strict bool   `help:"Abort when any record is skipped."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	doc, err := snapshot.ReadFile(c.File)
	if err != nil {
		return err
	}

	contents, problems := doc.Convert()
	for _, p := range problems {
		ctx.Printf("skipped %s\n", p)
	}
	if c.Strict && len(problems) > 0 {
		return fmt.Errorf("%d records could not be imported", len(problems))
	}

	result := ctx.Validator.ValidateAll(contents.Timetables, contents.Assignments, contents.Preferences)
	if result.HasConflicts() {
		ctx.Printf("%s", result.FormatReport())
		return fmt.Errorf("snapshot has conflicts; fix them and import again")
	}

	if c.DryRun {
		ctx.Printf("Would import %d timetables and %d assignments.\n", len(contents.Timetables), len(contents.Assignments))
		return nil
	}

	ctx.PerformAutomaticBackup()
	summary, err := snapshot.Import(ctx.Store, contents)
	if err != nil {
		return err
	}
	ctx.Printf("Imported %s: %s\n", c.File, summary)
	return nil
}

type ExportCmd struct {
	File string `arg:"" help:"Destination file; the extension picks YAML or JSON."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	contents, err := snapshot.Export(ctx.Store)
	if err != nil {
		return err
	}
	if err := snapshot.WriteFile(c.File, snapshot.FromContents(contents)); err != nil {
		return err
	}
	ctx.Printf("Exported %d timetables and %d assignments to %s\n", len(contents.Timetables), len(contents.Assignments), c.File)
	return nil
}
