package server

import (
	"math"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/repository"
	"github.com/alexanderramin/studycal/internal/scheduler"
)

const dateLayout = "2006-01-02"

type sessionDTO struct {
	Date        string  `json:"date"`
	Weekday     string  `json:"weekday"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	DurationMin float64 `json:"duration_min"`
	Title       string  `json:"title"`
	Item        int     `json:"item"`
	Part        int     `json:"part"`
	Parts       int     `json:"parts"`
}

type configDTO struct {
	StartDate  string  `json:"start_date"`
	StudyDays  []int   `json:"study_days"` // 0 = Monday
	StartTime  string  `json:"start_time"`
	DailyHours float64 `json:"daily_hours"`
	Multiplier float64 `json:"multiplier"`
	Timezone   string  `json:"timezone"`
}

type summaryDTO struct {
	Sessions   int     `json:"sessions"`
	Days       int     `json:"days"`
	Items      int     `json:"items"`
	SplitItems int     `json:"split_items"`
	TotalMin   float64 `json:"total_min"`
	FirstDate  string  `json:"first_date,omitempty"`
	LastDate   string  `json:"last_date,omitempty"`
}

type planDTO struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Source    string       `json:"source"`
	Saved     bool         `json:"saved"`
	CreatedAt time.Time    `json:"created_at"`
	Config    configDTO    `json:"config"`
	Summary   summaryDTO   `json:"summary"`
	Sessions  []sessionDTO `json:"sessions"`
}

type planSummaryDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	StartDate string    `json:"start_date"`
	LastDate  string    `json:"last_date,omitempty"`
	Sessions  int       `json:"sessions"`
	TotalMin  float64   `json:"total_min"`
	CreatedAt time.Time `json:"created_at"`
}

func toPlanDTO(p *domain.Plan, saved bool) planDTO {
	loc := p.Config.Loc()
	sessions := make([]sessionDTO, 0, len(p.Sessions))
	for _, s := range p.Sessions {
		sessions = append(sessions, sessionDTO{
			Date:        s.Date.Format(dateLayout),
			Weekday:     s.Date.Weekday().String(),
			Start:       s.StartAt(loc).Format(time.RFC3339),
			End:         s.EndAt(loc).Format(time.RFC3339),
			DurationMin: roundMinutes(s.DurationMin),
			Title:       s.Title,
			Item:        s.SourceIndex,
			Part:        s.Part,
			Parts:       s.Parts,
		})
	}

	return planDTO{
		ID:        p.ID,
		Name:      p.Name,
		Source:    p.Source,
		Saved:     saved,
		CreatedAt: p.CreatedAt,
		Config:    toConfigDTO(p.Config),
		Summary:   toSummaryDTO(scheduler.Summarize(p.Sessions)),
		Sessions:  sessions,
	}
}

func toConfigDTO(cfg domain.ScheduleConfig) configDTO {
	days := make([]int, 0, 7)
	for _, d := range cfg.Weekdays.Days() {
		days = append(days, (int(d)+6)%7)
	}
	return configDTO{
		StartDate:  cfg.StartDate.Format(dateLayout),
		StudyDays:  days,
		StartTime:  domain.FormatClock(cfg.DailyStart),
		DailyHours: cfg.DailyHourCap,
		Multiplier: cfg.Multiplier,
		Timezone:   cfg.Loc().String(),
	}
}

func toSummaryDTO(sum scheduler.Summary) summaryDTO {
	dto := summaryDTO{
		Sessions:   sum.Sessions,
		Days:       sum.Days,
		Items:      sum.Items,
		SplitItems: sum.SplitItems,
		TotalMin:   roundMinutes(sum.TotalMin),
	}
	if sum.Sessions > 0 {
		dto.FirstDate = sum.First.Format(dateLayout)
		dto.LastDate = sum.Last.Format(dateLayout)
	}
	return dto
}

func toPlanSummaryDTOs(list []repository.PlanSummary) []planSummaryDTO {
	out := make([]planSummaryDTO, 0, len(list))
	for _, ps := range list {
		dto := planSummaryDTO{
			ID:        ps.ID,
			Name:      ps.Name,
			Source:    ps.Source,
			StartDate: ps.StartDate.Format(dateLayout),
			Sessions:  ps.SessionCount,
			TotalMin:  roundMinutes(ps.TotalMin),
			CreatedAt: ps.CreatedAt,
		}
		if ps.LastDate != nil {
			dto.LastDate = ps.LastDate.Format(dateLayout)
		}
		out = append(out, dto)
	}
	return out
}

// roundMinutes keeps two decimals so scaled durations stay readable.
func roundMinutes(m float64) float64 {
	return math.Round(m*100) / 100
}
