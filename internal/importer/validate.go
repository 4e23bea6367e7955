package importer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/normalizer"
)

// ValidateCourseFile checks the course file for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateCourseFile(cf *CourseFile) []error {
	var errs []error

	errs = append(errs, validateSchedule(cf.Schedule)...)
	errs = append(errs, validateItems(cf.Items)...)

	return errs
}

func validateSchedule(s *ScheduleImport) []error {
	if s == nil {
		return nil
	}
	var errs []error

	if s.StartDate != "" {
		if _, err := domain.ParseDate(s.StartDate); err != nil {
			errs = append(errs, fmt.Errorf("schedule.start_date: invalid date format %q (expected YYYY-MM-DD)", s.StartDate))
		}
	}
	if s.Days != "" {
		if set, err := domain.ParseWeekdays(s.Days); err != nil {
			errs = append(errs, fmt.Errorf("schedule.days: %w", err))
		} else if set.Empty() {
			errs = append(errs, fmt.Errorf("schedule.days must name at least one weekday"))
		}
	}
	if s.StartTime != "" {
		if _, err := domain.ParseClock(s.StartTime); err != nil {
			errs = append(errs, fmt.Errorf("schedule.start_time: invalid time %q (expected HH:MM)", s.StartTime))
		}
	}
	if s.DailyHours != nil && !positive(*s.DailyHours) {
		errs = append(errs, fmt.Errorf("schedule.daily_hours must be > 0, got %v", *s.DailyHours))
	}
	if s.Multiplier != nil && !positive(*s.Multiplier) {
		errs = append(errs, fmt.Errorf("schedule.multiplier must be > 0, got %v", *s.Multiplier))
	}
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("schedule.timezone: unknown time zone %q", s.Timezone))
		}
	}

	return errs
}

func validateItems(items []ItemImport) []error {
	var errs []error

	if len(items) == 0 {
		errs = append(errs, fmt.Errorf("items must contain at least one entry"))
	}

	for i, item := range items {
		prefix := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if strings.TrimSpace(string(item.Duration)) == "" {
			errs = append(errs, fmt.Errorf("%s.duration is required", prefix))
			continue
		}
		min, err := normalizer.ParseDuration(string(item.Duration))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.duration: %w", prefix, err))
		} else if min <= 0 {
			errs = append(errs, fmt.Errorf("%s.duration must be positive, got %q", prefix, item.Duration))
		}
	}

	return errs
}

func positive(f float64) bool {
	return f > 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}
