package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studycal/internal/repository"
)

// FormatPlanList renders saved plans inside a bordered box.
func FormatPlanList(plans []repository.PlanSummary, now time.Time) string {
	if len(plans) == 0 {
		return Dim("No saved plans. Use `studycal schedule --save` to keep one.") + "\n"
	}

	headers := []string{"ID", "NAME", "SOURCE", "SESSIONS", "TOTAL", "DATES", "SAVED"}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		dates := p.StartDate.Format("2006-01-02")
		if p.LastDate != nil {
			dates = fmt.Sprintf("%s → %s", dates, p.LastDate.Format("2006-01-02"))
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			SourceBadge(p.Source),
			fmt.Sprintf("%d", p.SessionCount),
			FormatMinutes(p.TotalMin),
			dates,
			RelativeDateFrom(p.CreatedAt, now),
		})
	}
	return RenderBox("Plans", RenderTableAligned(headers, rows, 3, 4))
}
