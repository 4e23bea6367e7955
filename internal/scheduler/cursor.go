package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
)

// lookaheadDays bounds the search for the next active weekday.
const lookaheadDays = 14

type chunk struct {
	date      time.Time
	offsetMin float64
	lengthMin float64
}

// cursor walks the availability calendar forward, tracking how much of the
// current day's budget is used.
type cursor struct {
	weekdays  domain.WeekdaySet
	budgetMin float64

	date    time.Time
	usedMin float64
}

func newCursor(cfg domain.ScheduleConfig) (*cursor, error) {
	first, err := nextActiveDate(domain.DateOf(cfg.StartDate), cfg.Weekdays, true)
	if err != nil {
		return nil, err
	}
	return &cursor{
		weekdays:  cfg.Weekdays,
		budgetMin: cfg.DailyBudgetMin(),
		date:      first,
	}, nil
}

func (c *cursor) remaining() float64 {
	return c.budgetMin - c.usedMin
}

func (c *cursor) advance() error {
	next, err := nextActiveDate(c.date, c.weekdays, false)
	if err != nil {
		return err
	}
	c.date = next
	c.usedMin = 0
	return nil
}

// take consumes total minutes from the calendar and returns the chunks
// they occupy, in order.
func (c *cursor) take(total float64) ([]chunk, error) {
	var chunks []chunk
	left := total
	for left > epsilonMin {
		if c.remaining() <= epsilonMin {
			if err := c.advance(); err != nil {
				return nil, err
			}
		}
		n := min(left, c.remaining())
		chunks = append(chunks, chunk{date: c.date, offsetMin: c.usedMin, lengthMin: n})
		c.usedMin += n
		left -= n
	}
	return chunks, nil
}

// nextActiveDate finds the first date in weekdays, starting at from when
// inclusive is set and the day after otherwise.
func nextActiveDate(from time.Time, weekdays domain.WeekdaySet, inclusive bool) (time.Time, error) {
	start := 1
	if inclusive {
		start = 0
	}
	for i := start; i <= lookaheadDays; i++ {
		d := from.AddDate(0, 0, i)
		if weekdays.Has(d.Weekday()) {
			return d, nil
		}
	}
	return time.Time{}, &domain.ConfigurationError{
		Field:  "weekdays",
		Reason: fmt.Sprintf("has no active day within %d days of %s", lookaheadDays, from.Format("2006-01-02")),
	}
}
