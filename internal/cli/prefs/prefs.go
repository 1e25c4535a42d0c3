package prefs

import (
	"fmt"

	"github.com/julianstephens/studyslot/internal/cli"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/utils"
)

type PrefsCmd struct {
	Show   PrefsShowCmd   `cmd:"" help:"Show preferred and avoided time ranges." default:"1"`
	Avoid  PrefsAvoidCmd  `cmd:"" help:"Never recommend periods that overlap this range."`
	Prefer PrefsPreferCmd `cmd:"" help:"Only recommend periods inside preferred ranges."`
	Clear  PrefsClearCmd  `cmd:"" help:"Clear time preferences."`
}

type PrefsShowCmd struct{}

func (c *PrefsShowCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	if prefs.IsEmpty() {
		ctx.Println("No time preferences set; every free period is eligible.")
		return nil
	}
	printRanges(ctx, "Preferred", prefs.Preferred)
	printRanges(ctx, "Avoid", prefs.Avoid)
	return nil
}

func printRanges(ctx *cli.Context, label string, ranges []models.TimeRange) {
	ctx.Printf("%s:\n", label)
	if len(ranges) == 0 {
		ctx.Println("  (none)")
		return
	}
	for _, r := range ranges {
		ctx.Printf("  %s\n", r)
	}
}

type PrefsAvoidCmd struct {
	Start string `arg:"" help:"Range start, e.g. 12:00."`
	End   string `arg:"" help:"Range end."`
}

func (c *PrefsAvoidCmd) Run(ctx *cli.Context) error {
	return addRange(ctx, c.Start, c.End, func(p *models.PreferenceSet, r models.TimeRange) {
		p.Avoid = append(p.Avoid, r)
	})
}

type PrefsPreferCmd struct {
	Start string `arg:"" help:"Range start, e.g. 13:00."`
	End   string `arg:"" help:"Range end."`
}

func (c *PrefsPreferCmd) Run(ctx *cli.Context) error {
	return addRange(ctx, c.Start, c.End, func(p *models.PreferenceSet, r models.TimeRange) {
		p.Preferred = append(p.Preferred, r)
	})
}

// ParseRange canonicalizes both ends of a time range.
func ParseRange(start, end string) (models.TimeRange, error) {
	s, err := utils.CanonicalTime(start)
	if err != nil {
		return models.TimeRange{}, err
	}
	e, err := utils.CanonicalTime(end)
	if err != nil {
		return models.TimeRange{}, err
	}
	return models.TimeRange{Start: s, End: e}, nil
}

func addRange(ctx *cli.Context, start, end string, add func(*models.PreferenceSet, models.TimeRange)) error {
	r, err := ParseRange(start, end)
	if err != nil {
		return err
	}
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	add(&prefs, r)
	if result := ctx.Validator.ValidatePreferences(prefs); result.HasConflicts() {
		return result.Err()
	}
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	ctx.Printf("Saved %s\n", r)
	return nil
}

type PrefsClearCmd struct {
	Avoid     bool `help:"Clear only the avoid list."`
	Preferred bool `help:"Clear only the preferred list."`
}

func (c *PrefsClearCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	both := !c.Avoid && !c.Preferred
	if c.Avoid || both {
		prefs.Avoid = nil
	}
	if c.Preferred || both {
		prefs.Preferred = nil
	}
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	ctx.Println("Preferences cleared.")
	return nil
}
