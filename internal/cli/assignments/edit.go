package assignments

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
)

type AssignmentEditCmd struct {
	Assignment string  `arg:"" help:"Assignment ID, ID prefix or title."`
	Title      *string `help:"New title."`
	Due        *string `short:"d" help:"New due date (YYYY-MM-DD); empty clears it."`
	Estimate   *int    `short:"e" help:"New estimate in minutes."`
	Priority   *string `short:"p" help:"New priority (high|medium|low)."`
	Kind       *string `short:"k" help:"New kind (school|personal)."`
	Memo       *string `short:"m" help:"New note."`
	Repeat     *string `help:"New repeat rule."`
	Reminder   *string `help:"New reminder."`
}

func (c *AssignmentEditCmd) Run(ctx *cli.Context) error {
	a, err := ctx.FindAssignment(c.Assignment)
	if err != nil {
		return err
	}

	updated := false
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
			updated = true
		}
	}
	set(&a.Title, c.Title)
	set(&a.DueDate, c.Due)
	set(&a.Memo, c.Memo)
	set(&a.Repeat, c.Repeat)
	set(&a.Reminder, c.Reminder)
	if c.Estimate != nil {
		a.EstimatedMin = *c.Estimate
		updated = true
	}
	if c.Priority != nil {
		a.Priority = models.Priority(*c.Priority)
		updated = true
	}
	if c.Kind != nil {
		a.Kind = constants.AssignmentKind(*c.Kind)
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified.")
		return nil
	}
	if err := checkAssignment(ctx, a); err != nil {
		return err
	}
	if err := ctx.Store.UpdateAssignment(a); err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	ctx.Printf("Updated assignment %q\n", a.Title)
	return nil
}

// checkAssignment runs field validation plus the duplicate title check
// against the other live assignments.
func checkAssignment(ctx *cli.Context, a models.Assignment) error {
	all, err := ctx.Store.GetAllAssignments()
	if err != nil {
		return err
	}
	others := make([]models.Assignment, 0, len(all)+1)
	for _, o := range all {
		if o.ID != a.ID {
			others = append(others, o)
		}
	}
	result := ctx.Validator.ValidateAssignments(append(others, a))

	// Only report problems that involve a; older records are doctor's job
	var mine []string
	for _, conflict := range result.Conflicts {
		if !slices.Contains(conflict.IDs, a.ID) {
			continue
		}
		if conflict.Type == constants.ConflictUnplaceable {
			ctx.Printf("warning: %s\n", conflict.Description)
			continue
		}
		mine = append(mine, conflict.Description)
	}
	if len(mine) > 0 {
		return fmt.Errorf("%s", strings.Join(mine, "; "))
	}
	return nil
}
