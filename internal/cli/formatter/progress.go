package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBudgetBar renders how much of a day's budget is used, like
// [████░░░░] 50%. A full day is green, a partly used one yellow.
func RenderBudgetBar(usedMin, budgetMin float64, width int) string {
	pct := 0.0
	if budgetMin > 0 {
		pct = usedMin / budgetMin
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct*float64(width) + 1e-9)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	if pct >= 0.999 {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
