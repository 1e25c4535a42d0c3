package scheduler

import (
	"fmt"
	"sort"

	"github.com/julianstephens/studyslot/internal/logger"
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/utils"
)

// Scheduler matches pending assignments to free class periods. It holds
// only its catalog and is safe for concurrent use.
type Scheduler struct {
	catalog Catalog
}

func New(catalog Catalog) *Scheduler {
	return &Scheduler{catalog: catalog}
}

// NewDefault returns a Scheduler over DefaultCatalog.
func NewDefault() *Scheduler {
	return New(DefaultCatalog())
}

func (s *Scheduler) Catalog() Catalog {
	return s.catalog
}

// FindFreeSlots lists the catalog periods not covered by schedule.
func (s *Scheduler) FindFreeSlots(schedule []models.ScheduleEntry) []models.Interval {
	return s.catalog.FindFreeSlots(schedule)
}

// Recommend pairs free slots with pending assignments. prefs may be nil.
func (s *Scheduler) Recommend(schedule []models.ScheduleEntry, assignments []models.Assignment, prefs *models.PreferenceSet) []models.Recommendation {
	recs, _ := s.RecommendWithReport(schedule, assignments, prefs)
	return recs
}

// RecommendWithReport is Recommend plus a Report describing how many slots
// were filtered and, for an empty result, why nothing was recommended.
func (s *Scheduler) RecommendWithReport(schedule []models.ScheduleEntry, assignments []models.Assignment, prefs *models.PreferenceSet) ([]models.Recommendation, Report) {
	report := Report{}
	recs := []models.Recommendation{}

	if len(schedule) == 0 || len(assignments) == 0 {
		report.EmptySchedule = len(schedule) == 0
		if !report.EmptySchedule {
			report.FreeSlots = len(s.catalog.FindFreeSlots(schedule))
		}
		report.Pending = len(pendingAssignments(assignments))
		report.finish(recs)
		return recs, report
	}

	free := s.catalog.FindFreeSlots(schedule)
	pending := pendingAssignments(assignments)
	sortPending(pending)

	report.FreeSlots = len(free)
	report.Pending = len(pending)
	for _, slot := range free {
		if d := utils.DurationMinutes(slot.Start, slot.End); d > report.LongestSlotMin {
			report.LongestSlotMin = d
		}
	}
	for i, a := range pending {
		if r := a.RemainingMinutes(); i == 0 || r < report.ShortestPendingMin {
			report.ShortestPendingMin = r
		}
	}

	used := make(map[string]bool)
	for _, slot := range free {
		if prefs != nil {
			switch Check(slot, *prefs) {
			case RejectedByAvoid:
				report.SkippedByAvoid++
				continue
			case RejectedByPreferred:
				report.SkippedByPreferred++
				continue
			}
		}

		capacity := utils.DurationMinutes(slot.Start, slot.End)
		chosen := -1
		for i, a := range pending {
			if used[a.ID] {
				continue
			}
			if a.RemainingMinutes() <= capacity {
				chosen = i
				break
			}
		}

		if chosen < 0 {
			report.Unfilled++
			continue
		}

		a := pending[chosen]
		used[a.ID] = true
		recs = append(recs, models.Recommendation{
			Slot:         slot,
			Assignment:   a,
			RemainingMin: a.RemainingMinutes(),
			Reason:       Reason(slot, a),
		})
	}

	report.finish(recs)
	logger.Debug("Generated recommendations",
		"free_slots", report.FreeSlots,
		"pending", report.Pending,
		"recommended", len(recs),
		"skipped_avoid", report.SkippedByAvoid,
		"skipped_preferred", report.SkippedByPreferred,
	)
	return recs, report
}

// pendingAssignments copies the assignments that take part in planning.
func pendingAssignments(assignments []models.Assignment) []models.Assignment {
	var pending []models.Assignment
	for _, a := range assignments {
		if a.IsPending() {
			pending = append(pending, a)
		}
	}
	return pending
}

// sortPending orders by priority rank, then due date. Unparseable due dates
// sort last. Ties keep their input order.
func sortPending(pending []models.Assignment) {
	sort.SliceStable(pending, func(i, j int) bool {
		ri, rj := pending[i].Priority.Rank(), pending[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return utils.ParseDateOrMax(pending[i].DueDate).Before(utils.ParseDateOrMax(pending[j].DueDate))
	})
}

// Reason explains why a is recommended for slot.
func Reason(slot models.Interval, a models.Assignment) string {
	if a.Progress > 0 {
		return fmt.Sprintf("%d%% done, %d min remaining: use the free period %s %s-%s",
			a.Progress, a.RemainingMinutes(), slot.Day, slot.Start, slot.End)
	}
	return fmt.Sprintf("estimated %d min: use the free period %s %s-%s",
		a.EstimatedMin, slot.Day, slot.Start, slot.End)
}
