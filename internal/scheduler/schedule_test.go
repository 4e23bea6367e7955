package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	monday = time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	friday = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
)

func items(durations ...float64) []domain.CourseItem {
	out := make([]domain.CourseItem, len(durations))
	for i, d := range durations {
		out[i] = domain.CourseItem{
			Index:       i,
			Title:       string(rune('A' + i)),
			DurationMin: d,
		}
	}
	return out
}

func config(start time.Time, capHours float64, days ...time.Weekday) domain.ScheduleConfig {
	return domain.ScheduleConfig{
		StartDate:    start,
		Weekdays:     domain.NewWeekdaySet(days...),
		DailyStart:   19 * time.Hour,
		DailyHourCap: capHours,
		Multiplier:   1,
	}
}

func TestSchedule_ScenarioA_SingleItemFits(t *testing.T) {
	sessions, err := Schedule(items(45), config(monday, 1, time.Monday))
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, monday, s.Date)
	assert.Equal(t, 19*time.Hour, s.Start)
	assert.Equal(t, 19*time.Hour+45*time.Minute, s.End)
	assert.Equal(t, "A", s.Title, "unsplit items keep their title")
	assert.Equal(t, 1, s.Part)
	assert.Equal(t, 1, s.Parts)
	assert.Equal(t, 0, s.SourceIndex)
}

func TestSchedule_ScenarioB_SplitsAcrossActiveDays(t *testing.T) {
	sessions, err := Schedule(items(150), config(monday, 1, time.Monday))
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	wantDates := []time.Time{monday, monday.AddDate(0, 0, 7), monday.AddDate(0, 0, 14)}
	wantMin := []float64{60, 60, 30}
	wantTitles := []string{"A (Part 1/3)", "A (Part 2/3)", "A (Part 3/3)"}
	for i, s := range sessions {
		assert.Equal(t, wantDates[i], s.Date, "session %d", i)
		assert.Equal(t, wantMin[i], s.DurationMin, "session %d", i)
		assert.Equal(t, wantTitles[i], s.Title, "session %d", i)
		assert.Equal(t, 19*time.Hour, s.Start, "each day starts at the daily start time")
		assert.LessOrEqual(t, s.DurationMin, 60.0)
	}
}

func TestSchedule_ScenarioC_SecondItemSpillsToNextDay(t *testing.T) {
	all := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	sessions, err := Schedule(items(40, 30), config(monday, 1, all...))
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	assert.Equal(t, "A", sessions[0].Title)
	assert.Equal(t, monday, sessions[0].Date)
	assert.Equal(t, 40.0, sessions[0].DurationMin)

	assert.Equal(t, "B (Part 1/2)", sessions[1].Title)
	assert.Equal(t, monday, sessions[1].Date)
	assert.Equal(t, 20.0, sessions[1].DurationMin)
	assert.Equal(t, sessions[0].End, sessions[1].Start, "same-day sessions are back to back")
	assert.Equal(t, 20*time.Hour, sessions[1].End)

	assert.Equal(t, "B (Part 2/2)", sessions[2].Title)
	assert.Equal(t, monday.AddDate(0, 0, 1), sessions[2].Date)
	assert.Equal(t, 10.0, sessions[2].DurationMin)
	assert.Equal(t, 19*time.Hour, sessions[2].Start)
}

func TestSchedule_ScenarioD_StartAdvancesToFirstActiveWeekday(t *testing.T) {
	sessions, err := Schedule(items(30), config(friday, 1, time.Monday))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, monday, sessions[0].Date)
	assert.Equal(t, time.Monday, sessions[0].Date.Weekday())
}

func TestSchedule_ScenarioE_MultiplierStretchesDurations(t *testing.T) {
	cfg := config(monday, 1, time.Monday)
	cfg.Multiplier = 1.5

	sessions, err := Schedule(items(60), cfg)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, 60.0, sessions[0].DurationMin)
	assert.Equal(t, 30.0, sessions[1].DurationMin)
	assert.Equal(t, "A (Part 1/2)", sessions[0].Title)
	assert.Equal(t, monday.AddDate(0, 0, 7), sessions[1].Date)
}

func TestSchedule_ExactFitDoesNotSplit(t *testing.T) {
	sessions, err := Schedule(items(30, 30, 15), config(monday, 1, time.Monday, time.Tuesday))
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, monday, sessions[1].Date, "second item fills the day exactly")
	assert.Equal(t, 20*time.Hour, sessions[1].End)
	assert.Equal(t, monday.AddDate(0, 0, 1), sessions[2].Date, "third item starts on the next active day")
	for _, s := range sessions {
		assert.False(t, s.Split())
	}
}

func TestSchedule_FractionalMinutesCarryFullPrecision(t *testing.T) {
	cfg := config(monday, 1, time.Monday)
	in := items(12.5, 12.5, 12.5)
	sessions, err := Schedule(in, cfg)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, 19*time.Hour+37*time.Minute+30*time.Second, sessions[2].End)
	assert.Equal(t, 13, sessions[0].RoundedMinutes())
}

func TestSchedule_OrdersBySequenceIndex(t *testing.T) {
	in := []domain.CourseItem{
		{Index: 1, Title: "Second", DurationMin: 10},
		{Index: 0, Title: "First", DurationMin: 10},
	}
	sessions, err := Schedule(in, config(monday, 1, time.Monday))
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "First", sessions[0].Title)
	assert.Equal(t, "Second", sessions[1].Title)
	assert.Equal(t, "First", in[1].Title, "input slice is not mutated")
}

func TestSchedule_EmptyInput(t *testing.T) {
	sessions, err := Schedule(nil, config(monday, 1, time.Monday))
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSchedule_ConfigurationErrors(t *testing.T) {
	cases := map[string]func(*domain.ScheduleConfig){
		"zero cap":         func(c *domain.ScheduleConfig) { c.DailyHourCap = 0 },
		"negative cap":     func(c *domain.ScheduleConfig) { c.DailyHourCap = -1 },
		"no weekdays":      func(c *domain.ScheduleConfig) { c.Weekdays = 0 },
		"malformed set":    func(c *domain.ScheduleConfig) { c.Weekdays = domain.WeekdaySet(1 << 7) },
		"missing start":    func(c *domain.ScheduleConfig) { c.StartDate = time.Time{} },
		"past midnight":    func(c *domain.ScheduleConfig) { c.DailyStart = 23 * time.Hour; c.DailyHourCap = 2 },
		"over a full day":  func(c *domain.ScheduleConfig) { c.DailyStart = 0; c.DailyHourCap = 25 },
		"start not in day": func(c *domain.ScheduleConfig) { c.DailyStart = 24 * time.Hour },
	}
	for name, mutate := range cases {
		cfg := config(monday, 1, time.Monday)
		mutate(&cfg)
		sessions, err := Schedule(items(30), cfg)
		assert.ErrorIs(t, err, domain.ErrConfiguration, name)
		assert.Nil(t, sessions, name)
	}
}

func TestSchedule_FullDayBudgetFromMidnightIsAllowed(t *testing.T) {
	cfg := config(monday, 24, time.Monday)
	cfg.DailyStart = 0
	sessions, err := Schedule(items(24*60), cfg)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 24*time.Hour, sessions[0].End)
}

func TestSchedule_NonPositiveMultiplierIsValidationError(t *testing.T) {
	for _, m := range []float64{0, -1.5} {
		cfg := config(monday, 1, time.Monday)
		cfg.Multiplier = m
		sessions, err := Schedule(items(30), cfg)
		assert.ErrorIs(t, err, domain.ErrValidation, "multiplier %v", m)
		assert.Nil(t, sessions)
	}
}

func TestSchedule_NonPositiveItemRejectedBeforeScheduling(t *testing.T) {
	sessions, err := Schedule(items(30, 0, 20), config(monday, 1, time.Monday))
	require.Error(t, err)
	assert.Nil(t, sessions, "no partial output on error")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 1, ve.Index)
}

func TestSchedule_DuplicateIndexRejected(t *testing.T) {
	in := []domain.CourseItem{
		{Index: 0, Title: "A", DurationMin: 10},
		{Index: 0, Title: "B", DurationMin: 10},
	}
	_, err := Schedule(in, config(monday, 1, time.Monday))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNextActiveDate_LookaheadExhausted(t *testing.T) {
	_, err := nextActiveDate(monday, domain.WeekdaySet(0), true)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestNextActiveDate_ExclusiveSkipsFromDate(t *testing.T) {
	set := domain.NewWeekdaySet(time.Monday)
	d, err := nextActiveDate(monday, set, true)
	require.NoError(t, err)
	assert.Equal(t, monday, d)

	d, err = nextActiveDate(monday, set, false)
	require.NoError(t, err)
	assert.Equal(t, monday.AddDate(0, 0, 7), d)
}
