package models

import "fmt"

// TimeRange is a start/end pair of canonical HH:MM times with no weekday.
type TimeRange struct {
	Start string `json:"start" yaml:"start" mapstructure:"start" validate:"required,hhmm"`
	End   string `json:"end" yaml:"end" mapstructure:"end" validate:"required,hhmm"`
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Interval is a time range on a specific weekday. Start < End is assumed
// but not enforced.
type Interval struct {
	Day   Weekday `json:"day"`
	Start string  `json:"start"` // HH:MM format
	End   string  `json:"end"`   // HH:MM format
}

// Range drops the weekday.
func (i Interval) Range() TimeRange {
	return TimeRange{Start: i.Start, End: i.End}
}

func (i Interval) String() string {
	return fmt.Sprintf("%s %s-%s", i.Day, i.Start, i.End)
}

// ScheduleEntry is an occupied interval in a timetable, usually a class.
type ScheduleEntry struct {
	ID string `json:"id"`
	Interval
	Subject string `json:"subject,omitempty"`
}
