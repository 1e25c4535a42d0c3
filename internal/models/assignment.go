package models

import (
	"math"

	"github.com/julianstephens/studyslot/internal/constants"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for planning. Unknown values rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

type Assignment struct {
	ID                 string                   `json:"id"`
	Title              string                   `json:"title" validate:"required"`
	DueDate            string                   `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"` // YYYY-MM-DD format
	EstimatedMin       int                      `json:"estimated_min" validate:"gt=0"`
	Priority           Priority                 `json:"priority" validate:"omitempty,oneof=high medium low"`
	Completed          bool                     `json:"completed"`
	IncludedInPlanning bool                     `json:"included_in_planning"`
	Progress           int                      `json:"progress" validate:"min=0,max=100"`
	Kind               constants.AssignmentKind `json:"kind,omitempty" validate:"omitempty,oneof=school personal"`
	Memo               string                   `json:"memo,omitempty"`
	Repeat             string                   `json:"repeat,omitempty" validate:"omitempty,oneof=none daily weekly monthly"`
	Reminder           string                   `json:"reminder,omitempty" validate:"omitempty,oneof=none 10min 30min 1hour 1day"`
	CreatedAt          string                   `json:"created_at,omitempty"` // RFC3339 timestamp
	DeletedAt          *string                  `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// RemainingMinutes is the estimate scaled down by progress, rounded up.
func (a Assignment) RemainingMinutes() int {
	return int(math.Ceil(float64(a.EstimatedMin*(100-a.Progress)) / 100))
}

// IsPending reports whether the assignment takes part in planning.
func (a Assignment) IsPending() bool {
	if a.Completed || !a.IncludedInPlanning || a.DeletedAt != nil {
		return false
	}
	if a.EstimatedMin <= 0 || a.Progress < 0 || a.Progress > 100 {
		return false
	}
	return a.RemainingMinutes() > 0
}
