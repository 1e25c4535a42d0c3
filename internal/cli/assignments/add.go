package assignments

import (
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
)

type AssignmentAddCmd struct {
	Title    string `arg:"" help:"Assignment title."`
	Due      string `short:"d" help:"Due date (YYYY-MM-DD)."`
	Estimate int    `short:"e" help:"Estimated minutes. Defaults to the configured default estimate."`
	Priority string `short:"p" help:"Priority (high|medium|low)." default:"medium" enum:"high,medium,low"`
	Kind     string `short:"k" help:"Kind (school|personal)." default:"school" enum:"school,personal"`
	Memo     string `short:"m" help:"Free-form note."`
	Repeat   string `help:"Repeat rule (none|daily|weekly|monthly)." default:"none" enum:"none,daily,weekly,monthly"`
	Reminder string `help:"Reminder (none|10min|30min|1hour|1day)." default:"none" enum:"none,10min,30min,1hour,1day"`
	Exclude  bool   `help:"Do not include the assignment in planning."`
}

func (c *AssignmentAddCmd) Run(ctx *cli.Context) error {
	estimate := c.Estimate
	if estimate == 0 {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		estimate = settings.DefaultEstimateMin
	}

	a := models.Assignment{
		ID:                 uuid.NewString(),
		Title:              strings.TrimSpace(c.Title),
		DueDate:            strings.TrimSpace(c.Due),
		EstimatedMin:       estimate,
		Priority:           models.Priority(c.Priority),
		IncludedInPlanning: !c.Exclude,
		Kind:               constants.AssignmentKind(c.Kind),
		Memo:               c.Memo,
		Repeat:             c.Repeat,
		Reminder:           c.Reminder,
	}
	if err := checkAssignment(ctx, a); err != nil {
		return err
	}
	if err := ctx.Store.AddAssignment(a); err != nil {
		return err
	}
	ctx.Printf("Added assignment %q (%s)\n", a.Title, cli.ShortID(a.ID))
	return nil
}
