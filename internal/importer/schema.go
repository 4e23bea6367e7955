// Package importer turns course listings from text, spreadsheets, JSON
// course files and course-page HTML into raw items for normalization.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// CourseFile is the top-level JSON structure for a course import.
type CourseFile struct {
	Course   string          `json:"course"`
	Schedule *ScheduleImport `json:"schedule,omitempty"`
	Items    []ItemImport    `json:"items"`
}

// ScheduleImport carries schedule defaults. Command-line and form values
// take precedence over these.
type ScheduleImport struct {
	StartDate  string   `json:"start_date,omitempty"`
	Days       string   `json:"days,omitempty"`
	StartTime  string   `json:"start_time,omitempty"`
	DailyHours *float64 `json:"daily_hours,omitempty"`
	Multiplier *float64 `json:"multiplier,omitempty"`
	Timezone   string   `json:"timezone,omitempty"`
}

// ItemImport defines one lesson in the course file.
type ItemImport struct {
	Module   string        `json:"module,omitempty"`
	Title    string        `json:"title"`
	Duration DurationValue `json:"duration"`
	Done     bool          `json:"done,omitempty"`
}

// DurationValue accepts either a JSON string ("12:30") or a number of
// minutes (45).
type DurationValue string

func (d *DurationValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DurationValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string or a number: %w", err)
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	*d = DurationValue(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// LoadCourseFile reads and parses a course import JSON file.
func LoadCourseFile(path string) (*CourseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCourseFile(data)
}

// ParseCourseFile parses course import JSON.
func ParseCourseFile(data []byte) (*CourseFile, error) {
	var cf CourseFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing course file: %w", err)
	}
	return &cf, nil
}
