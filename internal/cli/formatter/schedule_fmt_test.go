package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/repository"
	"github.com/alexanderramin/studycal/internal/scheduler"
	"github.com/stretchr/testify/assert"
)

var monday = time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

func sessionsFixture() []domain.StudySession {
	return []domain.StudySession{
		{Date: monday, Start: 19 * time.Hour, End: 19*time.Hour + 45*time.Minute, DurationMin: 45, Title: "Intro", SourceIndex: 0, Part: 1, Parts: 1},
		{Date: monday, Start: 19*time.Hour + 45*time.Minute, End: 21 * time.Hour, DurationMin: 75, Title: "Deep dive (Part 1/2)", SourceIndex: 1, Part: 1, Parts: 2},
		{Date: monday.AddDate(0, 0, 1), Start: 19 * time.Hour, End: 19*time.Hour + 15*time.Minute, DurationMin: 15, Title: "Deep dive (Part 2/2)", SourceIndex: 1, Part: 2, Parts: 2},
	}
}

func TestFormatSchedule(t *testing.T) {
	out := stripANSI(FormatSchedule(sessionsFixture(), 120))

	assert.Contains(t, out, "Mon 17 Mar 2025")
	assert.Contains(t, out, "Tue 18 Mar 2025")
	assert.Equal(t, 1, strings.Count(out, "Mon 17 Mar 2025"), "date shown once per day")
	assert.Contains(t, out, "19:45")
	assert.Contains(t, out, "1h 15m")
	assert.Contains(t, out, "Deep dive (Part 2/2)")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "15m")
}

func TestFormatSchedule_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatSchedule(nil, 120)), "No sessions scheduled.")
}

func TestFormatSummary(t *testing.T) {
	cfg := domain.ScheduleConfig{
		StartDate:    monday,
		Weekdays:     domain.NewWeekdaySet(time.Monday, time.Tuesday),
		DailyStart:   19 * time.Hour,
		DailyHourCap: 2,
		Multiplier:   1.5,
	}
	out := stripANSI(FormatSummary("Go Fundamentals", scheduler.Summarize(sessionsFixture()), cfg))

	assert.Contains(t, out, "GO FUNDAMENTALS")
	assert.Contains(t, out, "3 across 2 days")
	assert.Contains(t, out, "2 (1 split over several days)")
	assert.Contains(t, out, "2h 15m")
	assert.Contains(t, out, "mon,tue")
	assert.Contains(t, out, "2h from 19:00")
	assert.Contains(t, out, "×1.5")
	assert.Contains(t, out, "UTC")
}

func TestFormatPlanDetail(t *testing.T) {
	p := &domain.Plan{
		ID:        "0f8c2a1e-1111-2222-3333-444455556666",
		Name:      "Rust 101",
		Source:    "html",
		Config:    domain.ScheduleConfig{StartDate: monday, Weekdays: domain.AllWeekdays, DailyStart: 19 * time.Hour, DailyHourCap: 2, Multiplier: 1},
		Sessions:  sessionsFixture(),
		CreatedAt: monday,
	}
	out := stripANSI(FormatPlanDetail(p, monday.Add(3*24*time.Hour)))

	assert.Contains(t, out, "RUST 101")
	assert.Contains(t, out, p.ID)
	assert.Contains(t, out, "html")
	assert.Contains(t, out, "3d ago")
	assert.Contains(t, out, "Intro")
	assert.NotContains(t, out, "×1", "multiplier 1 is not shown")
}

func TestFormatPlanList(t *testing.T) {
	last := monday.AddDate(0, 0, 1)
	plans := []repository.PlanSummary{
		{ID: "abcdef12-3456", Name: "Go", Source: "text", StartDate: monday, LastDate: &last, SessionCount: 3, TotalMin: 135, CreatedAt: monday},
		{ID: "99999999-0000", Name: "Empty", Source: "json", StartDate: monday, CreatedAt: monday},
	}
	out := stripANSI(FormatPlanList(plans, monday))

	assert.Contains(t, out, "PLANS")
	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "abcdef12-3456")
	assert.Contains(t, out, "2025-03-17 → 2025-03-18")
	assert.Contains(t, out, "2h 15m")
	assert.Contains(t, out, "Today")

	assert.Contains(t, stripANSI(FormatPlanList(nil, monday)), "No saved plans")
}
