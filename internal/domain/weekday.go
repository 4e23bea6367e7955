package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekdaySet is a set of days of the week on which sessions may be placed.
type WeekdaySet uint8

// AllWeekdays contains every day of the week.
const AllWeekdays WeekdaySet = 1<<7 - 1

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// NewWeekdaySet builds a set from the given days.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// With returns s plus d. Out-of-range weekdays are ignored.
func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	if d < time.Sunday || d > time.Saturday {
		return s
	}
	return s | 1<<uint(d)
}

// Has reports whether d is in the set.
func (s WeekdaySet) Has(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return s&(1<<uint(d)) != 0
}

// Empty reports whether no weekday is active.
func (s WeekdaySet) Empty() bool {
	return s&AllWeekdays == 0
}

// Days lists the active weekdays, Monday first.
func (s WeekdaySet) Days() []time.Weekday {
	var days []time.Weekday
	for i := 1; i <= 7; i++ {
		d := time.Weekday(i % 7)
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// String renders the set as a comma-separated list of short names,
// e.g. "mon,wed,fri".
func (s WeekdaySet) String() string {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String()[:3])
	}
	return strings.Join(names, ",")
}

// ParseWeekdays parses a comma-separated list of weekday names. The
// shorthands "weekdays", "weekends" and "all" are accepted.
func ParseWeekdays(s string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		switch tok {
		case "all", "daily":
			set |= AllWeekdays
			continue
		case "weekdays":
			set |= NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
			continue
		case "weekends":
			set |= NewWeekdaySet(time.Saturday, time.Sunday)
			continue
		}
		d, ok := weekdayNames[tok]
		if !ok {
			return 0, &ParseError{Field: "weekdays", Value: tok, Reason: "unknown weekday"}
		}
		set = set.With(d)
	}
	return set, nil
}

// WeekdayFromIndex maps the Monday-first numbering used by spreadsheet and
// web form inputs (0 = Monday … 6 = Sunday) to a time.Weekday.
func WeekdayFromIndex(i int) (time.Weekday, error) {
	if i < 0 || i > 6 {
		return 0, &ParseError{Field: "weekday", Value: strconv.Itoa(i), Reason: "expected 0 (Monday) to 6 (Sunday)"}
	}
	return time.Weekday((i + 1) % 7), nil
}

// ParseClock parses a "HH:MM" time of day into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, &ParseError{Field: "start_time", Value: s, Reason: "expected HH:MM"}
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// FormatClock renders an offset from midnight as "HH:MM", rounding to the
// nearest minute.
func FormatClock(d time.Duration) string {
	d = d.Round(time.Minute)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ParseError{Field: "start_date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return t, nil
}

// DateOf truncates t to its calendar date, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
