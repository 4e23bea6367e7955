package domain

import "time"

// Plan is a saved schedule: the inputs that produced it and its sessions.
type Plan struct {
	ID        string
	Name      string
	Source    string // ingestion format the items came from: text, xlsx, json or html
	Config    ScheduleConfig
	Items     []CourseItem
	Sessions  []StudySession
	CreatedAt time.Time
}

// TotalMinutes sums the scheduled minutes across all sessions.
func (p *Plan) TotalMinutes() float64 {
	var total float64
	for _, s := range p.Sessions {
		total += s.DurationMin
	}
	return total
}
