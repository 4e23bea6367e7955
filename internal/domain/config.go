package domain

import (
	"os"
	"strings"
	"time"
	_ "time/tzdata" // zone names must resolve on hosts without a system database
)

// ScheduleConfig holds the user-supplied scheduling parameters.
type ScheduleConfig struct {
	StartDate    time.Time
	Weekdays     WeekdaySet
	DailyStart   time.Duration
	DailyHourCap float64
	Multiplier   float64

	// Location is used only when sessions are turned into absolute times.
	Location *time.Location
}

// DailyBudgetMin is the per-day study budget in minutes.
func (c ScheduleConfig) DailyBudgetMin() float64 {
	return c.DailyHourCap * 60
}

// Loc returns the configured location, defaulting to UTC.
func (c ScheduleConfig) Loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// LocalLocation returns the host zone under its IANA name. time.Local reports
// itself as "Local", which means nothing once stored and read on another
// host. The name comes from $TZ, else from the /etc/localtime symlink; when
// neither names a zone, time.Local is returned unchanged.
func LocalLocation() *time.Location {
	tz, set := os.LookupEnv("TZ")
	if name := localZoneName(tz, set, "/etc/localtime"); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.Local
}

func localZoneName(tz string, tzSet bool, link string) string {
	if tzSet {
		tz = strings.TrimPrefix(tz, ":")
		if tz == "" {
			return "UTC"
		}
		if !strings.HasPrefix(tz, "/") {
			return tz
		}
		return zoneFromPath(tz)
	}
	target, err := os.Readlink(link)
	if err != nil {
		return ""
	}
	return zoneFromPath(target)
}

func zoneFromPath(p string) string {
	if _, name, ok := strings.Cut(p, "zoneinfo/"); ok {
		return name
	}
	return ""
}
