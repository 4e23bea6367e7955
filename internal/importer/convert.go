package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
)

// ToRawItems converts a validated course file into raw items, in file order.
// Items marked done are dropped.
func ToRawItems(cf *CourseFile) []domain.RawItem {
	items := make([]domain.RawItem, 0, len(cf.Items))
	for _, it := range cf.Items {
		if it.Done {
			continue
		}
		items = append(items, domain.RawItem{
			Title:    moduleTitle(it.Module, it.Title),
			Duration: strings.TrimSpace(string(it.Duration)),
		})
	}
	return items
}

// Apply copies the schedule defaults into cfg. Fields left empty in the file
// leave cfg untouched. The schedule must already be validated.
func (s *ScheduleImport) Apply(cfg *domain.ScheduleConfig) error {
	if s == nil {
		return nil
	}
	if s.StartDate != "" {
		d, err := domain.ParseDate(s.StartDate)
		if err != nil {
			return err
		}
		cfg.StartDate = d
	}
	if s.Days != "" {
		set, err := domain.ParseWeekdays(s.Days)
		if err != nil {
			return err
		}
		cfg.Weekdays = set
	}
	if s.StartTime != "" {
		at, err := domain.ParseClock(s.StartTime)
		if err != nil {
			return err
		}
		cfg.DailyStart = at
	}
	if s.DailyHours != nil {
		cfg.DailyHourCap = *s.DailyHours
	}
	if s.Multiplier != nil {
		cfg.Multiplier = *s.Multiplier
	}
	if s.Timezone != "" {
		loc, err := time.LoadLocation(s.Timezone)
		if err != nil {
			return err
		}
		cfg.Location = loc
	}
	return nil
}

// moduleTitle prefixes title with its module, the way course pages group
// lessons.
func moduleTitle(module, title string) string {
	module = strings.TrimSpace(module)
	title = strings.TrimSpace(title)
	switch {
	case module == "":
		return title
	case title == "":
		return module
	default:
		return module + ": " + title
	}
}
