package scheduler

import (
	"fmt"

	"github.com/julianstephens/studyslot/internal/models"
	"github.com/julianstephens/studyslot/internal/utils"
)

// Catalog is the fixed grid of class periods planning runs against.
// Days and Periods are consumed in declaration order.
type Catalog struct {
	Days    []models.Weekday
	Periods []models.TimeRange
}

// DefaultCatalog returns Mon-Fri with hour-long periods from 09:00 to
// 17:00 and a lunch gap at 12:00-13:00.
func DefaultCatalog() Catalog {
	return Catalog{
		Days: append([]models.Weekday(nil), models.Weekdays...),
		Periods: []models.TimeRange{
			{Start: "09:00", End: "10:00"},
			{Start: "10:00", End: "11:00"},
			{Start: "11:00", End: "12:00"},
			{Start: "13:00", End: "14:00"},
			{Start: "14:00", End: "15:00"},
			{Start: "15:00", End: "16:00"},
			{Start: "16:00", End: "17:00"},
		},
	}
}

// Validate checks that every day is a distinct weekday and every period is
// a well-formed, non-empty range that overlaps no other period. Periods
// are canonicalized in place.
func (c *Catalog) Validate() error {
	if len(c.Days) == 0 {
		return fmt.Errorf("catalog has no days")
	}
	if len(c.Periods) == 0 {
		return fmt.Errorf("catalog has no periods")
	}
	seen := make(map[models.Weekday]bool, len(c.Days))
	for _, d := range c.Days {
		if !d.Valid() {
			return fmt.Errorf("catalog day %v is not Mon-Fri", d)
		}
		if seen[d] {
			return fmt.Errorf("catalog day %v is listed more than once", d)
		}
		seen[d] = true
	}
	for i, p := range c.Periods {
		start, err := utils.CanonicalTime(p.Start)
		if err != nil {
			return fmt.Errorf("catalog period %d: %w", i+1, err)
		}
		end, err := utils.CanonicalTime(p.End)
		if err != nil {
			return fmt.Errorf("catalog period %d: %w", i+1, err)
		}
		if utils.DurationMinutes(start, end) == 0 {
			return fmt.Errorf("catalog period %d (%s-%s) is empty or reversed", i+1, start, end)
		}
		c.Periods[i] = models.TimeRange{Start: start, End: end}
		for j := 0; j < i; j++ {
			prev := c.Periods[j]
			if utils.Minutes(start) < utils.Minutes(prev.End) && utils.Minutes(prev.Start) < utils.Minutes(end) {
				return fmt.Errorf("catalog period %d (%s-%s) overlaps period %d (%s-%s)", i+1, start, end, j+1, prev.Start, prev.End)
			}
		}
	}
	return nil
}

// LongestPeriodMin is the duration of the longest period in minutes.
func (c Catalog) LongestPeriodMin() int {
	longest := 0
	for _, p := range c.Periods {
		if d := utils.DurationMinutes(p.Start, p.End); d > longest {
			longest = d
		}
	}
	return longest
}
