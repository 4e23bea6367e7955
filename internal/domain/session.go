package domain

import (
	"fmt"
	"math"
	"time"
)

// StudySession is one scheduled block. Start and End are offsets from the
// midnight of Date.
type StudySession struct {
	Date        time.Time
	Start       time.Duration
	End         time.Duration
	DurationMin float64
	Title       string
	SourceIndex int
	Part        int
	Parts       int
}

// Split reports whether the session is one chunk of a longer item.
func (s StudySession) Split() bool {
	return s.Parts > 1
}

// StartAt combines Date and Start in loc.
func (s StudySession) StartAt(loc *time.Location) time.Time {
	return atOffset(s.Date, s.Start, loc)
}

// EndAt combines Date and End in loc.
func (s StudySession) EndAt(loc *time.Location) time.Time {
	return atOffset(s.Date, s.End, loc)
}

// RoundedMinutes is the display duration, rounded to the nearest minute.
func (s StudySession) RoundedMinutes() int {
	return int(math.Round(s.DurationMin))
}

// PartTitle annotates title with its chunk position when parts > 1.
func PartTitle(title string, part, parts int) string {
	if parts <= 1 {
		return title
	}
	return fmt.Sprintf("%s (Part %d/%d)", title, part, parts)
}

// atOffset places a wall-clock offset on date in loc. The offset is read as
// clock time, not elapsed time, so 19:00 stays 19:00 on DST-change days.
func atOffset(date time.Time, offset time.Duration, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	h := offset / time.Hour
	mi := offset % time.Hour / time.Minute
	sec := offset % time.Minute / time.Second
	ns := offset % time.Second
	return time.Date(y, m, d, int(h), int(mi), int(sec), int(ns), loc)
}
