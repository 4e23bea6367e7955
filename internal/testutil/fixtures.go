package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/google/uuid"
)

// Monday is a fixed start date used across fixtures.
var Monday = time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)

// Plan options
type PlanOption func(*domain.Plan)

func WithCreatedAt(t time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.CreatedAt = t
	}
}

func WithLocation(loc *time.Location) PlanOption {
	return func(p *domain.Plan) {
		p.Config.Location = loc
	}
}

func WithSource(source string) PlanOption {
	return func(p *domain.Plan) {
		p.Source = source
	}
}

// WithItems replaces the plan items and lays out one session per item on
// consecutive days starting at Config.StartDate.
func WithItems(minutes ...float64) PlanOption {
	return func(p *domain.Plan) {
		p.Items = nil
		p.Sessions = nil
		for i, m := range minutes {
			title := fmt.Sprintf("Lesson %d", i+1)
			p.Items = append(p.Items, domain.CourseItem{
				Index:       i,
				Title:       title,
				RawDuration: fmt.Sprintf("%g min", m),
				DurationMin: m,
			})
			start := p.Config.DailyStart
			p.Sessions = append(p.Sessions, domain.StudySession{
				Date:        p.Config.StartDate.AddDate(0, 0, i),
				Start:       start,
				End:         start + time.Duration(m*float64(time.Minute)),
				DurationMin: m,
				Title:       title,
				SourceIndex: i,
				Part:        1,
				Parts:       1,
			})
		}
	}
}

// NewTestConfig returns an every-day configuration starting on Monday at
// 19:00 with a two-hour cap.
func NewTestConfig() domain.ScheduleConfig {
	return domain.ScheduleConfig{
		StartDate:    Monday,
		Weekdays:     domain.AllWeekdays,
		DailyStart:   19 * time.Hour,
		DailyHourCap: 2,
		Multiplier:   1,
		Location:     time.UTC,
	}
}

func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	p := &domain.Plan{
		ID:        uuid.New().String(),
		Name:      name,
		Source:    "text",
		Config:    NewTestConfig(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	WithItems(30, 45)(p)
	for _, o := range opts {
		o(p)
	}
	return p
}

// NewTestItems builds normalized items titled "Lesson N".
func NewTestItems(minutes ...float64) []domain.CourseItem {
	items := make([]domain.CourseItem, len(minutes))
	for i, m := range minutes {
		items[i] = domain.CourseItem{
			Index:       i,
			Title:       fmt.Sprintf("Lesson %d", i+1),
			RawDuration: fmt.Sprintf("%g min", m),
			DurationMin: m,
		}
	}
	return items
}
