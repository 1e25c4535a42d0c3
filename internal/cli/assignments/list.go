package assignments

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/models"
)

type AssignmentListCmd struct {
	Pending bool `help:"Show only assignments that take part in planning."`
	Deleted bool `help:"Show deleted assignments instead."`
}

func (c *AssignmentListCmd) Run(ctx *cli.Context) error {
	var (
		all []models.Assignment
		err error
	)
	if c.Deleted {
		all, err = ctx.Store.GetAllAssignmentsIncludingDeleted()
	} else {
		all, err = ctx.Store.GetAllAssignments()
	}
	if err != nil {
		return fmt.Errorf("failed to get assignments: %w", err)
	}

	shown := 0
	for _, a := range all {
		if c.Deleted != (a.DeletedAt != nil) {
			continue
		}
		if c.Pending && !a.IsPending() {
			continue
		}
		ctx.Println(FormatAssignment(a))
		shown++
	}
	if shown == 0 {
		ctx.Println("No assignments found")
	}
	return nil
}

// FormatAssignment renders one assignment as a single list line.
func FormatAssignment(a models.Assignment) string {
	status := "todo"
	switch {
	case a.Completed:
		status = "done"
	case !a.IncludedInPlanning:
		status = "skip"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  [%s] %s  %s", status, cli.ShortID(a.ID), a.Title)
	fmt.Fprintf(&b, " - %dm", a.EstimatedMin)
	if a.Progress > 0 {
		fmt.Fprintf(&b, " (%d%%, %dm left)", a.Progress, a.RemainingMinutes())
	}
	if a.DueDate != "" {
		fmt.Fprintf(&b, ", due %s", a.DueDate)
	}
	fmt.Fprintf(&b, ", %s", a.Priority)
	return b.String()
}
