package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ConflictType represents the type of validation conflict
type ConflictType string

// SessionState represents the current state of the TUI application
type SessionState int

// AssignmentKind distinguishes school work from personal tasks
type AssignmentKind string

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "studyslot"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studyslot/studyslot.db"
	DefaultConfigFile  = "config"
	EnvPrefix          = "STUDYSLOT"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MaxDueDate is the sort key used for assignments whose due date cannot be parsed
	MaxDueDate = "9999-12-31"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studyslot-"
	BackupFileSuffix = ".db"

	// Instance lock
	LockfileName = "studyslot.lock"

	// Log rotation
	LogDirName    = "logs"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Assignment kinds
	AssignmentKindSchool   AssignmentKind = "school"
	AssignmentKindPersonal AssignmentKind = "personal"

	// Estimate bounds used by the add forms
	MinEstimateMin     = 10
	MaxEstimateMin     = 600
	DefaultEstimateMin = 60

	// Conflict Types
	ConflictInvalidTime           ConflictType = "invalid_time"
	ConflictInvalidDay            ConflictType = "invalid_day"
	ConflictOverlappingClasses    ConflictType = "overlapping_classes"
	ConflictInvalidDueDate        ConflictType = "invalid_due_date"
	ConflictInvalidEstimate       ConflictType = "invalid_estimate"
	ConflictInvalidProgress       ConflictType = "invalid_progress"
	ConflictDuplicateTitle        ConflictType = "duplicate_title"
	ConflictUnplaceable           ConflictType = "unplaceable"
	ConflictInvalidPreference     ConflictType = "invalid_preference"
	ConflictPreferredFullyAvoided ConflictType = "preferred_fully_avoided"
	ConflictInvalidRecord         ConflictType = "invalid_record"
)

// Session States
const (
	StateWeek SessionState = iota
	StateAssignments
	StateRecommendations
	StatePreferences
	StateAddAssignment
	StateEditAssignment
	StateAddClass
	StateRemoveClass
	StateAddPreference
	StateConfirmDelete
)
