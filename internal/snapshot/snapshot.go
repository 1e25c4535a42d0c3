// Package snapshot reads and writes planner snapshots: timetables,
// assignments and preferences in the loose record shape used by the
// mobile app, as YAML or JSON.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatFromPath picks JSON for .json files and YAML otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

type Document struct {
	Version            int                `json:"version" yaml:"version"`
	CurrentTimetableID string             `json:"currentTimetableId,omitempty" yaml:"currentTimetableId,omitempty"`
	Timetables         []TimetableRecord  `json:"timetables" yaml:"timetables"`
	Assignments        []AssignmentRecord `json:"assignments" yaml:"assignments"`
	Preferences        PreferencesRecord  `json:"preferences" yaml:"preferences"`
}

type TimetableRecord struct {
	ID       string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string       `json:"name" yaml:"name"`
	Schedule []SlotRecord `json:"schedule" yaml:"schedule"`
}

type SlotRecord struct {
	Day       string `json:"day" yaml:"day"`
	StartTime string `json:"startTime" yaml:"startTime"`
	EndTime   string `json:"endTime" yaml:"endTime"`
	Subject   string `json:"subject,omitempty" yaml:"subject,omitempty"`
	IsBlocked bool   `json:"isBlocked,omitempty" yaml:"isBlocked,omitempty"`
}

type AssignmentRecord struct {
	ID            string `json:"id,omitempty" yaml:"id,omitempty"`
	Title         string `json:"title" yaml:"title"`
	DueDate       string `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	EstimatedTime Number `json:"estimatedTime" yaml:"estimatedTime"`
	Priority      string `json:"priority,omitempty" yaml:"priority,omitempty"`
	Completed     bool   `json:"completed" yaml:"completed"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	Progress      Number `json:"progress" yaml:"progress"`
	AddedToAI     bool   `json:"addedToAI" yaml:"addedToAI"`
	Memo          string `json:"memo,omitempty" yaml:"memo,omitempty"`
	Repeat        string `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Reminder      string `json:"reminder,omitempty" yaml:"reminder,omitempty"`
}

type RangeRecord struct {
	StartTime string `json:"startTime" yaml:"startTime"`
	EndTime   string `json:"endTime" yaml:"endTime"`
}

type PreferencesRecord struct {
	PreferredTimeSlots   []RangeRecord `json:"preferredTimeSlots" yaml:"preferredTimeSlots"`
	AvoidTimeSlots       []RangeRecord `json:"avoidTimeSlots" yaml:"avoidTimeSlots"`
	HideClassesInMonthly bool          `json:"hideClassesInMonthly,omitempty" yaml:"hideClassesInMonthly,omitempty"`
}

const currentVersion = 1

func Decode(r io.Reader, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("failed to decode JSON snapshot: %w", err)
		}
	default:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return Document{}, fmt.Errorf("failed to decode YAML snapshot: %w", err)
		}
	}
	if doc.Version > currentVersion {
		return Document{}, fmt.Errorf("snapshot version %d is newer than supported version %d", doc.Version, currentVersion)
	}
	return doc, nil
}

func Encode(w io.Writer, doc Document, format Format) error {
	doc.Version = currentVersion
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
}

func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	return Decode(bytes.NewReader(data), FormatFromPath(path))
}

func WriteFile(path string, doc Document) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, FormatFromPath(path)); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0600)
}
