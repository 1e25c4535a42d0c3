package models

// Settings represents application-wide settings
type Settings struct {
	CurrentTimetable   string `json:"current_timetable"`       // id of the timetable planning runs against
	Timezone           string `json:"timezone"`                // IANA timezone name or "Local"
	DefaultEstimateMin int    `json:"default_estimate_min"`    // estimate pre-filled by the add forms
	HideClasses        bool   `json:"hide_classes_in_monthly"` // hide class entries in calendar views
}
