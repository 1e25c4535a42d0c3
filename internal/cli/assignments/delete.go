package assignments

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/storage"
)

type AssignmentDeleteCmd struct {
	Assignment string `arg:"" help:"Assignment ID, ID prefix or title."`
}

func (c *AssignmentDeleteCmd) Run(ctx *cli.Context) error {
	a, err := ctx.FindAssignment(c.Assignment)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteAssignment(a.ID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	ctx.Printf("Deleted %q. Restore it with: studyslot assignment restore %s\n", a.Title, cli.ShortID(a.ID))
	return nil
}

type AssignmentRestoreCmd struct {
	Assignment string `arg:"" help:"ID, ID prefix or title of a deleted assignment."`
}

func (c *AssignmentRestoreCmd) Run(ctx *cli.Context) error {
	a, err := findDeleted(ctx, c.Assignment)
	if err != nil {
		return err
	}
	if err := ctx.Store.RestoreAssignment(a.ID); err != nil {
		return fmt.Errorf("failed to restore assignment: %w", err)
	}
	ctx.Printf("Restored %q\n", a.Title)
	return nil
}

func findDeleted(ctx *cli.Context, ref string) (models.Assignment, error) {
	all, err := ctx.Store.GetAllAssignmentsIncludingDeleted()
	if err != nil {
		return models.Assignment{}, err
	}
	var matches []models.Assignment
	for _, a := range all {
		if a.DeletedAt == nil {
			continue
		}
		if a.ID == ref {
			return a, nil
		}
		if strings.HasPrefix(a.ID, ref) || strings.EqualFold(a.Title, ref) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return models.Assignment{}, fmt.Errorf("deleted assignment %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Assignment{}, fmt.Errorf("%q matches %d deleted assignments; use a longer ID", ref, len(matches))
	}
}
