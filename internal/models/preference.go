package models

// PreferenceSet holds time-of-day ranges applied to every weekday. An empty
// Preferred list places no restriction.
type PreferenceSet struct {
	Preferred []TimeRange `json:"preferred" yaml:"preferred" validate:"dive"`
	Avoid     []TimeRange `json:"avoid" yaml:"avoid" validate:"dive"`
}

// IsEmpty reports whether neither list has entries.
func (p PreferenceSet) IsEmpty() bool {
	return len(p.Preferred) == 0 && len(p.Avoid) == 0
}
