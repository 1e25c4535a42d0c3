package scheduler

import (
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/utils"
)

// Eligibility is the outcome of checking a slot against a PreferenceSet.
type Eligibility int

const (
	Eligible Eligibility = iota
	RejectedByAvoid
	RejectedByPreferred
)

// Check applies the avoid list first, then the preferred list when it is
// non-empty. The slot's weekday is ignored.
func Check(slot models.Interval, prefs models.PreferenceSet) Eligibility {
	for _, r := range prefs.Avoid {
		if utils.Overlaps(slot.Start, slot.End, r.Start, r.End) {
			return RejectedByAvoid
		}
	}
	if len(prefs.Preferred) == 0 {
		return Eligible
	}
	for _, r := range prefs.Preferred {
		if utils.Overlaps(slot.Start, slot.End, r.Start, r.End) {
			return Eligible
		}
	}
	return RejectedByPreferred
}

// IsEligible reports whether slot may receive an assignment under prefs.
func IsEligible(slot models.Interval, prefs models.PreferenceSet) bool {
	return Check(slot, prefs) == Eligible
}
