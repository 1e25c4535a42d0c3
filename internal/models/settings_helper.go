package models

import (
	"fmt"

	"github.com/julianstephens/studyslot/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingCurrentTimetable:
			settings.CurrentTimetable = value
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDefaultEstimate:
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultEstimateMin); err != nil {
				return Settings{}, fmt.Errorf("parsing default_estimate_min: %w", err)
			}
		case constants.SettingHideClasses:
			settings.HideClasses = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingCurrentTimetable: settings.CurrentTimetable,
		constants.SettingTimezone:         settings.Timezone,
		constants.SettingDefaultEstimate:  fmt.Sprintf("%d", settings.DefaultEstimateMin),
		constants.SettingHideClasses:      fmt.Sprintf("%v", settings.HideClasses),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DefaultEstimateMin == 0 {
		settings.DefaultEstimateMin = constants.DefaultEstimateMin
	}
}
