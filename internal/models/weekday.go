package models

import (
	"fmt"
	"strings"
)

// Weekday is one of the five planning days. The zero value is invalid.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the planning days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = map[Weekday]string{
	Monday:    "Mon",
	Tuesday:   "Tue",
	Wednesday: "Wed",
	Thursday:  "Thu",
	Friday:    "Fri",
}

var weekdayAliases = map[string]Weekday{
	"mon": Monday, "monday": Monday, "1": Monday, "월": Monday, "월요일": Monday,
	"tue": Tuesday, "tues": Tuesday, "tuesday": Tuesday, "2": Tuesday, "화": Tuesday, "화요일": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday, "3": Wednesday, "수": Wednesday, "수요일": Wednesday,
	"thu": Thursday, "thur": Thursday, "thurs": Thursday, "thursday": Thursday, "4": Thursday, "목": Thursday, "목요일": Thursday,
	"fri": Friday, "friday": Friday, "5": Friday, "금": Friday, "금요일": Friday,
}

// ParseWeekday accepts English short or long names, Korean day labels and
// the digits 1-5. Weekend days are rejected.
func ParseWeekday(s string) (Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if d, ok := weekdayAliases[key]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("invalid weekday %q: expected Mon-Fri", s)
}

// Valid reports whether d is one of Monday..Friday.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Friday
}

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Weekday(%d)", int(d))
}

// MarshalText encodes the weekday as its short English name.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts anything ParseWeekday accepts.
func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
