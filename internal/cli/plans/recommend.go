package plans

import (
	"fmt"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/utils"
)

type RecommendCmd struct {
	Accept  bool `help:"Save the recommendations as a new plan revision."`
	NoPrefs bool `help:"Ignore stored time preferences." name:"no-prefs"`
	Today   bool `help:"Only show recommendations for today's weekday."`
	Yes     bool `short:"y" help:"Accept without asking for confirmation."`
}

func (c *RecommendCmd) Run(ctx *cli.Context) error {
	planning, err := ctx.Plan(c.NoPrefs)
	if err != nil {
		return err
	}

	recs := planning.Recommendations
	if c.Today {
		day, ok, err := utils.TodayWeekday(ctx.Config.Timezone)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Today is not a school day.")
			return nil
		}
		recs = onDay(recs, day)
	}

	ctx.Printf("Recommendations for %q:\n", planning.Timetable.Name)
	ctx.PrintRecommendations(recs, &planning.Report)

	if !c.Accept || len(recs) == 0 {
		return nil
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Save %d recommendations as a new plan?", len(recs)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Plan not saved.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	saved, err := ctx.Store.SavePlan(models.Plan{
		TimetableID:     planning.Timetable.ID,
		Recommendations: recs,
	})
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	ctx.Printf("Saved plan revision %d for %q\n", saved.Revision, planning.Timetable.Name)
	return nil
}

func onDay(recs []models.Recommendation, day models.Weekday) []models.Recommendation {
	var out []models.Recommendation
	for _, r := range recs {
		if r.Slot.Day == day {
			out = append(out, r)
		}
	}
	return out
}
