package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/julianstephens/studyslot/internal/constants"
	"github.com/julianstephens/studyslot/internal/models"
)

const minutesPerDay = 24 * 60

// Normalize rewrites a loosely formatted time of day into HH:MM. It accepts
// "9:30", "09:30", "9", "930", "0930" and Korean forms such as "9시 30분".
// Normalize never fails; strings that still are not numeric come back padded
// and are treated as midnight by Minutes.
func Normalize(raw string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	s = strings.ReplaceAll(s, "분", "")
	if strings.Contains(s, ":") {
		s = strings.ReplaceAll(s, "시", "")
	} else {
		s = strings.Replace(s, "시", ":", 1)
	}

	var h, m string
	if before, after, found := strings.Cut(s, ":"); found {
		h, m = before, after
		if i := strings.Index(m, ":"); i >= 0 {
			m = m[:i]
		}
	} else if r := []rune(s); len(r) <= 2 {
		h = s
	} else {
		h, m = string(r[:len(r)-2]), string(r[len(r)-2:])
	}
	if h == "" {
		h = "0"
	}
	if m == "" {
		m = "00"
	}
	return pad2(h) + ":" + pad2(m)
}

func pad2(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= 2 {
		return s
	}
	return strings.Repeat("0", 2-n) + s
}

// ParseTimeOfDay normalizes raw and returns minutes past midnight. It
// rejects non-numeric input, hours above 23 and minutes above 59.
func ParseTimeOfDay(raw string) (int, error) {
	norm := Normalize(raw)
	hs, ms, _ := strings.Cut(norm, ":")
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h >= 24 {
		return 0, fmt.Errorf("invalid time %q: hour out of range", raw)
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m >= 60 {
		return 0, fmt.Errorf("invalid time %q: minute out of range", raw)
	}
	return h*60 + m, nil
}

// CanonicalTime returns the HH:MM form of raw, or an error when raw does
// not describe a valid time of day.
func CanonicalTime(raw string) (string, error) {
	mins, err := ParseTimeOfDay(raw)
	if err != nil {
		return "", err
	}
	return FormatMinutes(mins), nil
}

// Minutes is the permissive form of ParseTimeOfDay: unparseable input maps
// to 0 (midnight).
func Minutes(raw string) int {
	mins, err := ParseTimeOfDay(raw)
	if err != nil {
		return 0
	}
	return mins
}

// FormatMinutes renders minutes past midnight as HH:MM.
func FormatMinutes(mins int) string {
	mins = ((mins % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// Overlaps reports whether [startA, endA) and [startB, endB) intersect.
// Touching endpoints do not overlap.
func Overlaps(startA, endA, startB, endB string) bool {
	return Minutes(startA) < Minutes(endB) && Minutes(endA) > Minutes(startB)
}

// DurationMinutes returns end-start in minutes, never negative.
func DurationMinutes(start, end string) int {
	d := Minutes(end) - Minutes(start)
	if d < 0 {
		return 0
	}
	return d
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
// This ensures that "today" is determined by the user's configured timezone, not the system timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayWeekday maps the current date in timezone to a planning weekday.
// ok is false on weekends.
func TodayWeekday(timezone string) (day models.Weekday, ok bool, err error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return 0, false, err
	}
	day, ok = WeekdayOf(now)
	return day, ok, nil
}

// WeekdayOf maps a calendar date to a planning weekday. ok is false on weekends.
func WeekdayOf(t time.Time) (models.Weekday, bool) {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return 0, false
	default:
		return models.Weekday(t.Weekday()), true
	}
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ParseDateOrMax parses a due date, returning the latest representable
// calendar date when the string cannot be parsed.
func ParseDateOrMax(dateStr string) time.Time {
	t, err := ParseDate(strings.TrimSpace(dateStr))
	if err != nil {
		maxDate, _ := time.Parse(constants.DateFormat, constants.MaxDueDate)
		return maxDate
	}
	return t
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// ValidateTimeFormat checks if the string describes a valid time of day.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTimeOfDay(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
