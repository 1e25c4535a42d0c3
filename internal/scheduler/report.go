package scheduler

import (
	"fmt"

	"github.com/julianstephens/studyslot/internal/models"
)

// Report summarizes a planning run.
type Report struct {
	EmptySchedule      bool
	FreeSlots          int
	Pending            int
	SkippedByAvoid     int
	SkippedByPreferred int
	Unfilled           int
	LongestSlotMin     int
	ShortestPendingMin int
	Hints              []string
}

func (r *Report) finish(recs []models.Recommendation) {
	if len(recs) > 0 {
		return
	}
	switch {
	case r.EmptySchedule:
		r.Hints = append(r.Hints, "the timetable has no classes yet; add classes before planning")
	case r.FreeSlots == 0:
		r.Hints = append(r.Hints, "there are no free periods; check the timetable")
	case r.Pending == 0:
		r.Hints = append(r.Hints, "no unfinished assignment is included in planning")
	case r.SkippedByPreferred > 0 && r.SkippedByPreferred == r.FreeSlots:
		r.Hints = append(r.Hints, "every free period was excluded by the preferred time ranges; widen or clear them")
	case r.SkippedByAvoid == r.FreeSlots:
		r.Hints = append(r.Hints, "every free period falls inside an avoided time range; adjust the avoid list")
	case r.SkippedByAvoid+r.SkippedByPreferred == r.FreeSlots:
		r.Hints = append(r.Hints, "the avoid and preferred ranges together exclude every free period")
	default:
		if r.ShortestPendingMin > r.LongestSlotMin {
			r.Hints = append(r.Hints, fmt.Sprintf(
				"every pending assignment needs more time (shortest %d min) than the longest free period (%d min); split large assignments or record progress",
				r.ShortestPendingMin, r.LongestSlotMin))
		} else {
			r.Hints = append(r.Hints, "free periods and assignments exist but none fit; the preference filters may be too strict")
		}
	}
}
