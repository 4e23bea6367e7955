package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdaysFlag(t *testing.T) {
	var f WeekdaysFlag
	require.NoError(t, f.Set("mon, wed,FRI"))
	assert.Equal(t, domain.NewWeekdaySet(time.Monday, time.Wednesday, time.Friday), f.Days)
	assert.Equal(t, "mon,wed,fri", f.String())
	assert.Equal(t, "weekdays", f.Type())

	require.NoError(t, f.Set("weekends"))
	assert.Equal(t, domain.NewWeekdaySet(time.Saturday, time.Sunday), f.Days, "Set replaces the previous value")

	assert.ErrorIs(t, f.Set("funday"), domain.ErrParse)
	assert.ErrorIs(t, f.Set(" , "), domain.ErrParse)
	assert.Equal(t, domain.NewWeekdaySet(time.Saturday, time.Sunday), f.Days, "failed Set leaves the value alone")
}

func TestClockFlag(t *testing.T) {
	f := ClockFlag{Offset: 19 * time.Hour}
	assert.Equal(t, "19:00", f.String())
	assert.Equal(t, "HH:MM", f.Type())

	require.NoError(t, f.Set("07:45"))
	assert.Equal(t, 7*time.Hour+45*time.Minute, f.Offset)

	assert.ErrorIs(t, f.Set("25:00"), domain.ErrParse)
	assert.Equal(t, 7*time.Hour+45*time.Minute, f.Offset)
}

func TestFlags_ParseThroughFlagSet(t *testing.T) {
	days := WeekdaysFlag{Days: domain.NewWeekdaySet(time.Monday)}
	at := ClockFlag{Offset: 19 * time.Hour}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&days, "days", "")
	fs.Var(&at, "at", "")
	require.NoError(t, fs.Parse([]string{"--days", "tue,thu", "--at", "06:30"}))

	assert.Equal(t, domain.NewWeekdaySet(time.Tuesday, time.Thursday), days.Days)
	assert.Equal(t, 6*time.Hour+30*time.Minute, at.Offset)
	assert.Equal(t, "mon", fs.Lookup("days").DefValue)
}
