package cli

import (
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/spf13/pflag"
)

// WeekdaysFlag is a pflag.Value holding a weekday set, written as
// "mon,wed,fri" or one of the shorthands "weekdays", "weekends", "all".
type WeekdaysFlag struct {
	Days domain.WeekdaySet
}

var _ pflag.Value = (*WeekdaysFlag)(nil)

func (f *WeekdaysFlag) String() string { return f.Days.String() }

func (f *WeekdaysFlag) Set(s string) error {
	set, err := domain.ParseWeekdays(s)
	if err != nil {
		return err
	}
	if set.Empty() {
		return &domain.ParseError{Field: "days", Value: s, Reason: "name at least one weekday"}
	}
	f.Days = set
	return nil
}

func (f *WeekdaysFlag) Type() string { return "weekdays" }

// ClockFlag is a pflag.Value holding a time of day written as "HH:MM".
type ClockFlag struct {
	Offset time.Duration
}

var _ pflag.Value = (*ClockFlag)(nil)

func (f *ClockFlag) String() string { return domain.FormatClock(f.Offset) }

func (f *ClockFlag) Set(s string) error {
	d, err := domain.ParseClock(s)
	if err != nil {
		return err
	}
	f.Offset = d
	return nil
}

func (f *ClockFlag) Type() string { return "HH:MM" }
