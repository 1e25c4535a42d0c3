package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/utils"
)

// Conflict represents a problem found in user data
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Day         string   // weekday label (if applicable)
	Items       []string // titles, subjects or ranges involved
	IDs         []string // record ids involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends the conflicts of other.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Err returns nil when there are no conflicts, otherwise an error listing them.
func (vr ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	msgs := make([]string, len(vr.Conflicts))
	for i, c := range vr.Conflicts {
		msgs[i] = c.Description
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Validator checks timetables, assignments and preferences before they are
// stored or handed to the scheduler.
type Validator struct {
	structs          *validator.Validate
	longestPeriodMin int
}

// New creates a Validator. longestPeriodMin is the longest class period in
// the active catalog; assignments that need more time are reported as
// unplaceable. Zero disables that check.
func New(longestPeriodMin int) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimeFormat(fl.Field().String())
	})
	return &Validator{structs: v, longestPeriodMin: longestPeriodMin}
}

// ValidateTimetable checks entry days and times and reports classes that
// overlap on the same day.
func (v *Validator) ValidateTimetable(tt models.Timetable) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if err := v.structs.Var(tt.Name, "required"); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictInvalidRecord,
			Description: "Timetable name must not be empty",
			IDs:         []string{tt.ID},
		})
	}

	byDay := make(map[models.Weekday][]models.ScheduleEntry)
	for _, e := range tt.Entries {
		label := entryLabel(e)
		if !e.Day.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidDay,
				Description: fmt.Sprintf("Class %s is not on a weekday (Mon-Fri)", label),
				Items:       []string{label},
				IDs:         []string{e.ID},
			})
			continue
		}

		startOK := utils.ValidateTimeFormat(e.Start)
		endOK := utils.ValidateTimeFormat(e.End)
		if !startOK || !endOK {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidTime,
				Description: fmt.Sprintf("Class %s on %s has an invalid time: %s-%s", label, e.Day, e.Start, e.End),
				Day:         e.Day.String(),
				Items:       []string{label},
				IDs:         []string{e.ID},
			})
			continue
		}
		if utils.DurationMinutes(e.Start, e.End) == 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidTime,
				Description: fmt.Sprintf("Class %s on %s ends (%s) before or when it starts (%s)", label, e.Day, e.End, e.Start),
				Day:         e.Day.String(),
				Items:       []string{label},
				IDs:         []string{e.ID},
			})
			continue
		}
		byDay[e.Day] = append(byDay[e.Day], e)
	}

	for _, day := range models.Weekdays {
		entries := byDay[day]
		sort.SliceStable(entries, func(i, j int) bool {
			return utils.Minutes(entries[i].Start) < utils.Minutes(entries[j].Start)
		})
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				a, b := entries[i], entries[j]
				if utils.Minutes(b.Start) >= utils.Minutes(a.End) {
					break
				}
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: constants.ConflictOverlappingClasses,
					Description: fmt.Sprintf("Classes overlap on %s: %s (%s-%s) and %s (%s-%s)",
						day, entryLabel(a), a.Start, a.End, entryLabel(b), b.Start, b.End),
					Day:   day.String(),
					Items: []string{entryLabel(a), entryLabel(b)},
					IDs:   []string{a.ID, b.ID},
				})
			}
		}
	}

	return result
}

func entryLabel(e models.ScheduleEntry) string {
	if e.Subject != "" {
		return fmt.Sprintf("%q", e.Subject)
	}
	return e.Interval.String()
}

// ValidateAssignment checks a single assignment's fields.
func (v *Validator) ValidateAssignment(a models.Assignment) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	err := v.structs.Struct(a)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			result.Conflicts = append(result.Conflicts, fieldConflict(a, fe))
		}
	} else if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictInvalidRecord,
			Description: fmt.Sprintf("Assignment %q could not be validated: %v", a.Title, err),
			IDs:         []string{a.ID},
		})
	}

	if v.longestPeriodMin > 0 && a.IsPending() && a.RemainingMinutes() > v.longestPeriodMin {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: constants.ConflictUnplaceable,
			Description: fmt.Sprintf("Assignment %q needs %d min but the longest class period is %d min; it will never be recommended",
				a.Title, a.RemainingMinutes(), v.longestPeriodMin),
			Items: []string{a.Title},
			IDs:   []string{a.ID},
		})
	}

	return result
}

func fieldConflict(a models.Assignment, fe validator.FieldError) Conflict {
	c := Conflict{Items: []string{a.Title}, IDs: []string{a.ID}}
	switch fe.Field() {
	case "Title":
		c.Type = constants.ConflictInvalidRecord
		c.Description = "Assignment title must not be empty"
	case "DueDate":
		c.Type = constants.ConflictInvalidDueDate
		c.Description = fmt.Sprintf("Assignment %q has an invalid due date %q (want YYYY-MM-DD)", a.Title, a.DueDate)
	case "EstimatedMin":
		c.Type = constants.ConflictInvalidEstimate
		c.Description = fmt.Sprintf("Assignment %q must have a positive estimate, got %d", a.Title, a.EstimatedMin)
	case "Progress":
		c.Type = constants.ConflictInvalidProgress
		c.Description = fmt.Sprintf("Assignment %q has progress %d%% outside 0-100", a.Title, a.Progress)
	default:
		c.Type = constants.ConflictInvalidRecord
		c.Description = fmt.Sprintf("Assignment %q has an invalid %s: %v", a.Title, strings.ToLower(fe.Field()), fe.Value())
	}
	return c
}

// ValidateAssignments checks every live assignment and reports duplicate titles.
func (v *Validator) ValidateAssignments(assignments []models.Assignment) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	titles := make(map[string][]string)
	var order []string
	for _, a := range assignments {
		if a.DeletedAt != nil {
			continue
		}
		result.Merge(v.ValidateAssignment(a))

		if a.Title == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(a.Title))
		if _, seen := titles[key]; !seen {
			order = append(order, key)
		}
		titles[key] = append(titles[key], a.ID)
	}

	for _, key := range order {
		if ids := titles[key]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateTitle,
				Description: fmt.Sprintf("Duplicate assignment title: %q (IDs: %v)", key, ids),
				Items:       []string{key},
				IDs:         ids,
			})
		}
	}

	return result
}

// ValidatePreferences reports malformed or reversed ranges and preferred
// ranges that the avoid list covers completely.
func (v *Validator) ValidatePreferences(prefs models.PreferenceSet) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	check := func(kind string, ranges []models.TimeRange) {
		for _, r := range ranges {
			if err := v.structs.Struct(r); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictInvalidPreference,
					Description: fmt.Sprintf("%s range %s has an invalid time", kind, r),
					Items:       []string{r.String()},
				})
				continue
			}
			if utils.DurationMinutes(r.Start, r.End) == 0 {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictInvalidPreference,
					Description: fmt.Sprintf("%s range %s ends before or when it starts", kind, r),
					Items:       []string{r.String()},
				})
			}
		}
	}
	check("Avoid", prefs.Avoid)
	check("Preferred", prefs.Preferred)

	for _, p := range prefs.Preferred {
		if utils.DurationMinutes(p.Start, p.End) > 0 && coveredBy(p, prefs.Avoid) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictPreferredFullyAvoided,
				Description: fmt.Sprintf("Preferred range %s is entirely inside avoided time", p),
				Items:       []string{p.String()},
			})
		}
	}

	return result
}

// coveredBy reports whether the union of ranges covers target.
func coveredBy(target models.TimeRange, ranges []models.TimeRange) bool {
	sorted := append([]models.TimeRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool {
		return utils.Minutes(sorted[i].Start) < utils.Minutes(sorted[j].Start)
	})

	cursor, end := utils.Minutes(target.Start), utils.Minutes(target.End)
	for _, r := range sorted {
		if utils.Minutes(r.Start) > cursor {
			break
		}
		if e := utils.Minutes(r.End); e > cursor {
			cursor = e
		}
		if cursor >= end {
			return true
		}
	}
	return cursor >= end
}

// ValidateAll runs every check over a complete planner state.
func (v *Validator) ValidateAll(timetables []models.Timetable, assignments []models.Assignment, prefs models.PreferenceSet) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, tt := range timetables {
		result.Merge(v.ValidateTimetable(tt))
	}
	result.Merge(v.ValidateAssignments(assignments))
	result.Merge(v.ValidatePreferences(prefs))
	return result
}
