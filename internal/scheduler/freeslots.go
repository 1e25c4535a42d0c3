package scheduler

import (
	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/utils"
)

// FindFreeSlots returns every catalog period that no schedule entry on the
// same weekday overlaps, weekday-major and period-minor.
func (c Catalog) FindFreeSlots(schedule []models.ScheduleEntry) []models.Interval {
	byDay := make(map[models.Weekday][]models.ScheduleEntry)
	for _, e := range schedule {
		byDay[e.Day] = append(byDay[e.Day], e)
	}

	var free []models.Interval
	for _, day := range c.Days {
		for _, period := range c.Periods {
			if !occupied(byDay[day], period) {
				free = append(free, models.Interval{Day: day, Start: period.Start, End: period.End})
			}
		}
	}
	return free
}

func occupied(entries []models.ScheduleEntry, period models.TimeRange) bool {
	for _, e := range entries {
		if utils.Overlaps(e.Start, e.End, period.Start, period.End) {
			return true
		}
	}
	return false
}
