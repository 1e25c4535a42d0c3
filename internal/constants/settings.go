package constants

const (
	SettingCurrentTimetable = "current_timetable"
	SettingTimezone         = "timezone"
	SettingDefaultEstimate  = "default_estimate_min"
	SettingHideClasses      = "hide_classes_in_monthly"

	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultTimetableName = "My timetable"
)
