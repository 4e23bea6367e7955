package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studycal/internal/cli/formatter"
	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// studycalHuhTheme returns a custom huh theme using the Gruvbox palette.
func studycalHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardValues are the string-backed fields the schedule form edits.
type wizardValues struct {
	name       string
	start      string
	days       []time.Weekday
	at         string
	hours      string
	multiplier string
	tz         string
	save       bool
}

func newWizardValues(name string, cfg domain.ScheduleConfig, save bool) *wizardValues {
	return &wizardValues{
		name:       name,
		start:      cfg.StartDate.Format("2006-01-02"),
		days:       cfg.Weekdays.Days(),
		at:         domain.FormatClock(cfg.DailyStart),
		hours:      strconv.FormatFloat(cfg.DailyHourCap, 'f', -1, 64),
		multiplier: strconv.FormatFloat(cfg.Multiplier, 'f', -1, 64),
		tz:         cfg.Loc().String(),
		save:       save,
	}
}

// apply parses the edited values into cfg. cfg is untouched on error.
func (v *wizardValues) apply(cfg *domain.ScheduleConfig) error {
	start, err := domain.ParseDate(v.start)
	if err != nil {
		return err
	}
	at, err := domain.ParseClock(v.at)
	if err != nil {
		return err
	}
	hours, err := parsePositive("hours", v.hours)
	if err != nil {
		return err
	}
	mult, err := parsePositive("multiplier", v.multiplier)
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(strings.TrimSpace(v.tz))
	if err != nil {
		return &domain.ParseError{Field: "tz", Value: v.tz, Reason: "unknown time zone"}
	}

	cfg.StartDate = start
	cfg.Weekdays = domain.NewWeekdaySet(v.days...)
	cfg.DailyStart = at
	cfg.DailyHourCap = hours
	cfg.Multiplier = mult
	cfg.Location = loc
	return nil
}

func scheduleWizard(v *wizardValues) *huh.Form {
	dayOptions := make([]huh.Option[time.Weekday], 0, 7)
	for i := 0; i < 7; i++ {
		d, _ := domain.WeekdayFromIndex(i)
		dayOptions = append(dayOptions, huh.NewOption(d.String(), d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Course name").
				Placeholder("Study Plan").
				Value(&v.name),
			huh.NewInput().
				Title("First study date (YYYY-MM-DD)").
				Value(&v.start).
				Validate(validateDate),
			huh.NewMultiSelect[time.Weekday]().
				Title("Study days").
				Options(dayOptions...).
				Value(&v.days).
				Validate(validateDays),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Daily start time (HH:MM)").
				Value(&v.at).
				Validate(validateClock),
			huh.NewInput().
				Title("Hours per day").
				Value(&v.hours).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Duration multiplier").
				Description("1.5 leaves room for pausing and notes").
				Value(&v.multiplier).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Timezone").
				Value(&v.tz).
				Validate(validateTimezone),
			huh.NewConfirm().
				Title("Save this plan?").
				Value(&v.save),
		),
	).WithTheme(studycalHuhTheme()).WithShowHelp(false)
}

func parsePositive(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0, &domain.ParseError{Field: field, Value: s, Reason: "expected a positive number"}
	}
	return v, nil
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateClock(s string) error {
	if _, err := domain.ParseClock(s); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}

func validatePositiveFloat(s string) error {
	if _, err := parsePositive("value", s); err != nil {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateDays(days []time.Weekday) error {
	if len(days) == 0 {
		return fmt.Errorf("pick at least one day")
	}
	return nil
}

func validateTimezone(s string) error {
	if _, err := time.LoadLocation(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("unknown timezone")
	}
	return nil
}
