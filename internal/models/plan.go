package models

// Recommendation pairs a free slot with the assignment chosen for it.
type Recommendation struct {
	Slot         Interval   `json:"slot"`
	Assignment   Assignment `json:"assignment"`
	RemainingMin int        `json:"remaining_min"`
	Reason       string     `json:"reason"`
}

// Plan is an accepted set of recommendations for a timetable. Plans are
// never edited in place; each acceptance stores a new revision.
type Plan struct {
	ID              string           `json:"id"`
	TimetableID     string           `json:"timetable_id"`
	Revision        int              `json:"revision"`
	Recommendations []Recommendation `json:"recommendations"`
	AcceptedAt      string           `json:"accepted_at"` // RFC3339 timestamp
}
