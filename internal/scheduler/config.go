package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
)

const fullDay = 24 * time.Hour

// ValidateConfig fails fast on configurations that cannot make progress.
// A non-positive multiplier is a validation error rather than a
// configuration error because it invalidates every item duration.
func ValidateConfig(cfg domain.ScheduleConfig) error {
	if cfg.StartDate.IsZero() {
		return &domain.ConfigurationError{Field: "start_date", Reason: "is required"}
	}
	if math.IsNaN(cfg.DailyHourCap) || math.IsInf(cfg.DailyHourCap, 0) || cfg.DailyHourCap <= 0 {
		return &domain.ConfigurationError{Field: "daily_hour_cap", Reason: "must be a positive number of hours"}
	}
	if cfg.Weekdays.Empty() {
		return &domain.ConfigurationError{Field: "weekdays", Reason: "must include at least one day"}
	}
	if cfg.DailyStart < 0 || cfg.DailyStart >= fullDay {
		return &domain.ConfigurationError{Field: "daily_start", Reason: "must be a time of day"}
	}
	if cfg.DailyHourCap > 24 || cfg.DailyStart+minutesToDuration(cfg.DailyBudgetMin()) > fullDay {
		return &domain.ConfigurationError{Field: "daily_hour_cap", Reason: "runs past midnight from the daily start time"}
	}
	if math.IsNaN(cfg.Multiplier) || math.IsInf(cfg.Multiplier, 0) || cfg.Multiplier <= 0 {
		return &domain.ValidationError{Field: "multiplier", Index: -1, Reason: "must be positive"}
	}
	return nil
}
