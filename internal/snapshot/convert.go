package snapshot

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/utils"
)

// Problem is a record that could not be converted and was skipped.
type Problem struct {
	Where string
	Err   error
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %v", p.Where, p.Err)
}

// Contents is a Document converted to typed models.
type Contents struct {
	Timetables         []models.Timetable
	CurrentTimetableID string
	Assignments        []models.Assignment
	Preferences        models.PreferenceSet
	HideClasses        bool
}

// Convert normalizes times and weekday labels. Records whose day, times or
// numeric fields cannot be parsed are skipped and reported; everything else
// is kept as is for the validator to judge.
func (d Document) Convert() (Contents, []Problem) {
	var out Contents
	var problems []Problem

	for ti, rec := range d.Timetables {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			problems = append(problems, Problem{
				Where: fmt.Sprintf("timetable %d", ti+1),
				Err:   fmt.Errorf("missing name"),
			})
			continue
		}

		tt := models.Timetable{ID: rec.ID, Name: name, Entries: []models.ScheduleEntry{}}
		for si, slot := range rec.Schedule {
			entry, err := slot.toEntry()
			if err != nil {
				problems = append(problems, Problem{
					Where: fmt.Sprintf("timetable %q slot %d", name, si+1),
					Err:   err,
				})
				continue
			}
			tt.Entries = append(tt.Entries, entry)
		}
		out.Timetables = append(out.Timetables, tt)
	}
	out.CurrentTimetableID = d.CurrentTimetableID

	for ai, rec := range d.Assignments {
		if strings.TrimSpace(rec.Title) == "" {
			problems = append(problems, Problem{
				Where: fmt.Sprintf("assignment %d", ai+1),
				Err:   fmt.Errorf("missing title"),
			})
			continue
		}
		if field, n := rec.invalidNumber(); field != "" {
			problems = append(problems, Problem{
				Where: fmt.Sprintf("assignment %q", strings.TrimSpace(rec.Title)),
				Err:   fmt.Errorf("%s %q is not a number", field, n.Raw),
			})
			continue
		}
		out.Assignments = append(out.Assignments, rec.toModel())
	}

	out.Preferences = models.PreferenceSet{Preferred: []models.TimeRange{}, Avoid: []models.TimeRange{}}
	convertRanges := func(kind string, recs []RangeRecord) []models.TimeRange {
		ranges := []models.TimeRange{}
		for i, r := range recs {
			rng, err := r.toRange()
			if err != nil {
				problems = append(problems, Problem{Where: fmt.Sprintf("%s range %d", kind, i+1), Err: err})
				continue
			}
			ranges = append(ranges, rng)
		}
		return ranges
	}
	out.Preferences.Preferred = convertRanges("preferred", d.Preferences.PreferredTimeSlots)
	out.Preferences.Avoid = convertRanges("avoid", d.Preferences.AvoidTimeSlots)
	out.HideClasses = d.Preferences.HideClassesInMonthly

	return out, problems
}

func (s SlotRecord) toEntry() (models.ScheduleEntry, error) {
	day, err := models.ParseWeekday(s.Day)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	rng, err := RangeRecord{StartTime: s.StartTime, EndTime: s.EndTime}.toRange()
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	return models.ScheduleEntry{
		Interval: models.Interval{Day: day, Start: rng.Start, End: rng.End},
		Subject:  strings.TrimSpace(s.Subject),
	}, nil
}

func (r RangeRecord) toRange() (models.TimeRange, error) {
	start, err := utils.CanonicalTime(r.StartTime)
	if err != nil {
		return models.TimeRange{}, fmt.Errorf("start: %w", err)
	}
	end, err := utils.CanonicalTime(r.EndTime)
	if err != nil {
		return models.TimeRange{}, fmt.Errorf("end: %w", err)
	}
	return models.TimeRange{Start: start, End: end}, nil
}

func (r AssignmentRecord) invalidNumber() (string, Number) {
	switch {
	case r.EstimatedTime.Invalid:
		return "estimatedTime", r.EstimatedTime
	case r.Progress.Invalid:
		return "progress", r.Progress
	}
	return "", Number{}
}

func (r AssignmentRecord) toModel() models.Assignment {
	return models.Assignment{
		ID:                 r.ID,
		Title:              strings.TrimSpace(r.Title),
		DueDate:            r.DueDate,
		EstimatedMin:       r.EstimatedTime.Value,
		Priority:           models.Priority(r.Priority),
		Completed:          r.Completed,
		IncludedInPlanning: r.AddedToAI,
		Progress:           r.Progress.Value,
		Kind:               constants.AssignmentKind(r.Type),
		Memo:               r.Memo,
		Repeat:             r.Repeat,
		Reminder:           r.Reminder,
	}
}

// FromContents builds a Document for export. Soft-deleted assignments are
// left out.
func FromContents(c Contents) Document {
	doc := Document{
		Version:            currentVersion,
		CurrentTimetableID: c.CurrentTimetableID,
		Timetables:         []TimetableRecord{},
		Assignments:        []AssignmentRecord{},
		Preferences: PreferencesRecord{
			PreferredTimeSlots:   rangeRecords(c.Preferences.Preferred),
			AvoidTimeSlots:       rangeRecords(c.Preferences.Avoid),
			HideClassesInMonthly: c.HideClasses,
		},
	}

	for _, tt := range c.Timetables {
		rec := TimetableRecord{ID: tt.ID, Name: tt.Name, Schedule: []SlotRecord{}}
		for _, e := range tt.Entries {
			rec.Schedule = append(rec.Schedule, SlotRecord{
				Day:       e.Day.String(),
				StartTime: e.Start,
				EndTime:   e.End,
				Subject:   e.Subject,
			})
		}
		doc.Timetables = append(doc.Timetables, rec)
	}

	for _, a := range c.Assignments {
		if a.DeletedAt != nil {
			continue
		}
		doc.Assignments = append(doc.Assignments, AssignmentRecord{
			ID:            a.ID,
			Title:         a.Title,
			DueDate:       a.DueDate,
			EstimatedTime: Number{Value: a.EstimatedMin},
			Priority:      string(a.Priority),
			Completed:     a.Completed,
			Type:          string(a.Kind),
			Progress:      Number{Value: a.Progress},
			AddedToAI:     a.IncludedInPlanning,
			Memo:          a.Memo,
			Repeat:        a.Repeat,
			Reminder:      a.Reminder,
		})
	}
	return doc
}

func rangeRecords(ranges []models.TimeRange) []RangeRecord {
	out := make([]RangeRecord, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, RangeRecord{StartTime: r.Start, EndTime: r.End})
	}
	return out
}
