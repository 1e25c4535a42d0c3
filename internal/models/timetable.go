package models

// Timetable is a named weekly class schedule.
type Timetable struct {
	ID        string          `json:"id"`
	Name      string          `json:"name" validate:"required"`
	Entries   []ScheduleEntry `json:"entries"`
	CreatedAt string          `json:"created_at"` // RFC3339 timestamp
}

// EntriesOn returns the entries scheduled on day, in timetable order.
func (t Timetable) EntriesOn(day Weekday) []ScheduleEntry {
	var out []ScheduleEntry
	for _, e := range t.Entries {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}
