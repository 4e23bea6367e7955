package scheduler

import (
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
)

// Day groups the sessions scheduled on one date.
type Day struct {
	Date     time.Time
	Sessions []domain.StudySession
	TotalMin float64
}

// GroupByDate splits an ordered session list into per-date groups.
func GroupByDate(sessions []domain.StudySession) []Day {
	var days []Day
	for _, s := range sessions {
		if n := len(days); n > 0 && days[n-1].Date.Equal(s.Date) {
			days[n-1].Sessions = append(days[n-1].Sessions, s)
			days[n-1].TotalMin += s.DurationMin
			continue
		}
		days = append(days, Day{Date: s.Date, Sessions: []domain.StudySession{s}, TotalMin: s.DurationMin})
	}
	return days
}

// Summary describes a schedule at a glance.
type Summary struct {
	Sessions   int
	Days       int
	Items      int
	SplitItems int
	TotalMin   float64
	First      time.Time
	Last       time.Time
}

// Summarize computes a Summary for an ordered session list.
func Summarize(sessions []domain.StudySession) Summary {
	var sum Summary
	if len(sessions) == 0 {
		return sum
	}
	sum.Sessions = len(sessions)
	sum.Days = len(GroupByDate(sessions))
	sum.First = sessions[0].Date
	sum.Last = sessions[len(sessions)-1].Date

	for i, s := range sessions {
		sum.TotalMin += s.DurationMin
		if i == 0 || sessions[i-1].SourceIndex != s.SourceIndex {
			sum.Items++
			if s.Split() {
				sum.SplitItems++
			}
		}
	}
	return sum
}
