package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/utils"
)

type AssignmentFormModel struct {
	Title    string
	Due      string
	Estimate string
	Progress string
	Priority models.Priority
	Included bool
}

type ClassFormModel struct {
	Day     models.Weekday
	Start   string
	End     string
	Subject string
}

type RemoveClassFormModel struct {
	EntryID string
}

type PreferenceFormModel struct {
	Avoid bool
	Start string
	End   string
}

func validateTime(s string) error {
	if !utils.ValidateTimeFormat(s) {
		return fmt.Errorf("enter a time such as 9:30 or 13시")
	}
	return nil
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || utils.ValidateDateFormat(s) {
		return nil
	}
	return fmt.Errorf("due date must be YYYY-MM-DD")
}

func validateEstimate(s string) error {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("estimate must be a number of minutes")
	}
	if i < constants.MinEstimateMin || i > constants.MaxEstimateMin {
		return fmt.Errorf("estimate must be between %d and %d minutes", constants.MinEstimateMin, constants.MaxEstimateMin)
	}
	return nil
}

func validateProgress(s string) error {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i < 0 || i > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}

// NewAssignmentForm creates the add/edit assignment form
func NewAssignmentForm(fm *AssignmentFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, optional").
				Value(&fm.Due).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Estimate (min)").
				Value(&fm.Estimate).
				Validate(validateEstimate),
			huh.NewInput().
				Title("Progress (%)").
				Value(&fm.Progress).
				Validate(validateProgress),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("High", models.PriorityHigh),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("Low", models.PriorityLow),
				).
				Value(&fm.Priority),
			huh.NewConfirm().
				Title("Include in planning?").
				Value(&fm.Included),
		),
	)
}

// NewClassForm creates the add class form
func NewClassForm(fm *ClassFormModel) *huh.Form {
	days := make([]huh.Option[models.Weekday], 0, len(models.Weekdays))
	for _, d := range models.Weekdays {
		days = append(days, huh.NewOption(d.String(), d))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Weekday]().
				Title("Day").
				Options(days...).
				Value(&fm.Day),
			huh.NewInput().
				Title("Start").
				Value(&fm.Start).
				Validate(validateTime),
			huh.NewInput().
				Title("End").
				Value(&fm.End).
				Validate(validateTime),
			huh.NewInput().
				Title("Subject").
				Value(&fm.Subject),
		),
	)
}

// NewRemoveClassForm lets the user pick one of tt's classes
func NewRemoveClassForm(fm *RemoveClassFormModel, tt models.Timetable) *huh.Form {
	opts := make([]huh.Option[string], 0, len(tt.Entries))
	for _, e := range tt.Entries {
		label := e.Interval.String()
		if e.Subject != "" {
			label += " " + e.Subject
		}
		opts = append(opts, huh.NewOption(label, e.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Remove which class?").
				Options(opts...).
				Value(&fm.EntryID),
		),
	)
}

// NewPreferenceForm creates the add time preference form
func NewPreferenceForm(fm *PreferenceFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("Kind").
				Options(
					huh.NewOption("Avoid this time", true),
					huh.NewOption("Prefer this time", false),
				).
				Value(&fm.Avoid),
			huh.NewInput().
				Title("Start").
				Value(&fm.Start).
				Validate(validateTime),
			huh.NewInput().
				Title("End").
				Value(&fm.End).
				Validate(validateTime),
		),
	)
}
