package plans

import (
	"errors"
	"fmt"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/storage"
)

type PlanCmd struct {
	Show PlanShowCmd `cmd:"" help:"Show a saved plan." default:"1"`
}

type PlanShowCmd struct {
	Revision  int    `short:"r" help:"Plan revision. Defaults to the latest."`
	Timetable string `short:"t" help:"Timetable name or ID. Defaults to the current one."`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	tt, err := storage.ResolveTimetable(ctx.Store, c.Timetable)
	if err != nil {
		return err
	}

	var plan models.Plan
	if c.Revision > 0 {
		plan, err = ctx.Store.GetPlanRevision(tt.ID, c.Revision)
	} else {
		plan, err = ctx.Store.GetLatestPlan(tt.ID)
	}
	if errors.Is(err, storage.ErrNotFound) {
		ctx.Printf("No saved plan for %q. Create one with: studyslot recommend --accept\n", tt.Name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}

	ctx.Printf("Plan for %q, revision %d (accepted %s)\n", tt.Name, plan.Revision, plan.AcceptedAt)
	ctx.PrintRecommendations(plan.Recommendations, nil)
	return nil
}
