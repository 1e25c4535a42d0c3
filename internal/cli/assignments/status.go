package assignments

import (
	"fmt"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/models"
)

type AssignmentProgressCmd struct {
	Assignment string `arg:"" help:"Assignment ID, ID prefix or title."`
	Percent    int    `arg:"" help:"Progress percentage (0-100)."`
}

func (c *AssignmentProgressCmd) Validate() error {
	if c.Percent < 0 || c.Percent > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}

func (c *AssignmentProgressCmd) Run(ctx *cli.Context) error {
	return update(ctx, c.Assignment, func(a *models.Assignment) string {
		a.Progress = c.Percent
		if c.Percent == 100 {
			a.Completed = true
		}
		return fmt.Sprintf("%q is %d%% done, %d min left", a.Title, a.Progress, a.RemainingMinutes())
	})
}

type AssignmentCompleteCmd struct {
	Assignment string `arg:"" help:"Assignment ID, ID prefix or title."`
	Undo       bool   `help:"Mark the assignment as not complete."`
}

func (c *AssignmentCompleteCmd) Run(ctx *cli.Context) error {
	return update(ctx, c.Assignment, func(a *models.Assignment) string {
		a.Completed = !c.Undo
		if c.Undo {
			return fmt.Sprintf("%q reopened", a.Title)
		}
		return fmt.Sprintf("%q completed", a.Title)
	})
}

type AssignmentIncludeCmd struct {
	Assignment string `arg:"" help:"Assignment ID, ID prefix or title."`
}

func (c *AssignmentIncludeCmd) Run(ctx *cli.Context) error {
	return update(ctx, c.Assignment, func(a *models.Assignment) string {
		a.IncludedInPlanning = true
		return fmt.Sprintf("%q included in planning", a.Title)
	})
}

type AssignmentExcludeCmd struct {
	Assignment string `arg:"" help:"Assignment ID, ID prefix or title."`
}

func (c *AssignmentExcludeCmd) Run(ctx *cli.Context) error {
	return update(ctx, c.Assignment, func(a *models.Assignment) string {
		a.IncludedInPlanning = false
		return fmt.Sprintf("%q excluded from planning", a.Title)
	})
}

func update(ctx *cli.Context, ref string, apply func(*models.Assignment) string) error {
	a, err := ctx.FindAssignment(ref)
	if err != nil {
		return err
	}
	msg := apply(&a)
	if err := ctx.Store.UpdateAssignment(a); err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	ctx.Println(msg)
	return nil
}
