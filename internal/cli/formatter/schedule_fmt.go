package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/scheduler"
)

// FormatSchedule renders sessions as one table, the date shown on the first
// session of each day alongside a budget bar.
func FormatSchedule(sessions []domain.StudySession, budgetMin float64) string {
	if len(sessions) == 0 {
		return Dim("No sessions scheduled.") + "\n"
	}

	headers := []string{"DATE", "START", "END", "TIME", "TITLE", "PART"}
	var rows [][]string
	for _, day := range scheduler.GroupByDate(sessions) {
		for i, s := range day.Sessions {
			date := ""
			if i == 0 {
				date = Bold(ShortDate(day.Date))
			}
			rows = append(rows, []string{
				date,
				FormatClock(s.Start),
				FormatClock(s.End),
				FormatMinutes(s.DurationMin),
				s.Title,
				PartBadge(s.Part, s.Parts),
			})
		}
		rows = append(rows, []string{
			"", "", "", "",
			RenderBudgetBar(day.TotalMin, budgetMin, 12) + " " + Dim(FormatMinutes(day.TotalMin)),
			"",
		})
	}
	return RenderTableAligned(headers, rows, 3)
}

// FormatSummary renders the at-a-glance box printed after a schedule.
func FormatSummary(name string, sum scheduler.Summary, cfg domain.ScheduleConfig) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value)
	}

	line("Sessions", fmt.Sprintf("%d across %d days", sum.Sessions, sum.Days))
	line("Items", fmt.Sprintf("%d (%d split over several days)", sum.Items, sum.SplitItems))
	line("Total", FormatMinutes(sum.TotalMin))
	if sum.Sessions > 0 {
		line("Dates", fmt.Sprintf("%s → %s", ShortDate(sum.First), ShortDate(sum.Last)))
	}
	line("Study days", cfg.Weekdays.String())
	line("Daily", fmt.Sprintf("%s from %s", FormatMinutes(cfg.DailyBudgetMin()), FormatClock(cfg.DailyStart)))
	if cfg.Multiplier != 1 {
		line("Multiplier", fmt.Sprintf("×%g", cfg.Multiplier))
	}
	line("Timezone", cfg.Loc().String())

	title := name
	if title == "" {
		title = "Schedule"
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

// FormatPlanDetail renders a saved plan: summary box then session table.
func FormatPlanDetail(p *domain.Plan, now time.Time) string {
	var b strings.Builder
	b.WriteString(FormatSummary(p.Name, scheduler.Summarize(p.Sessions), p.Config))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n\n",
		Dim("id"), p.ID,
		Dim("source"), SourceBadge(p.Source),
		Dim("saved"), RelativeDateFrom(p.CreatedAt, now),
	)
	b.WriteString(FormatSchedule(p.Sessions, p.Config.DailyBudgetMin()))
	return b.String()
}
