package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/studycal/internal/cli/formatter"
	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/export"
	"github.com/alexanderramin/studycal/internal/scheduler"
	"github.com/alexanderramin/studycal/internal/service"
	"github.com/spf13/cobra"
)

// scheduleOptions holds the flag values of `studycal schedule`.
type scheduleOptions struct {
	text, xlsx, html, json string

	start      string
	days       WeekdaysFlag
	at         ClockFlag
	hours      float64
	multiplier float64
	tz         string

	name        string
	out         string
	place       string
	groupByDay  bool
	save        bool
	interactive bool
}

func defaultScheduleOptions() *scheduleOptions {
	return &scheduleOptions{
		days:       WeekdaysFlag{Days: domain.NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)},
		at:         ClockFlag{Offset: 19 * time.Hour},
		hours:      1,
		multiplier: 1,
	}
}

func newScheduleCmd(app *App) *cobra.Command {
	opts := defaultScheduleOptions()

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Build a study calendar from a course outline",
		Example: `  studycal schedule --text lessons.txt --days mon,wed,fri --at 20:00 --hours 1.5
  pbpaste | studycal schedule --text - --out course.ics
  studycal schedule --xlsx course.xlsx --multiplier 1.5 --out course.xlsx --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, app, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.text, "text", "", "Lesson list as text (file path, or - for stdin)")
	f.StringVar(&opts.xlsx, "xlsx", "", "Lesson spreadsheet (.xlsx)")
	f.StringVar(&opts.html, "html", "", "Saved course page (.html), read by the LLM")
	f.StringVar(&opts.json, "json", "", "JSON course file")
	cmd.MarkFlagsMutuallyExclusive("text", "xlsx", "html", "json")

	f.StringVar(&opts.start, "start", "", "First study date (YYYY-MM-DD, default today)")
	f.Var(&opts.days, "days", "Study days, e.g. mon,wed,fri or weekdays")
	f.Var(&opts.at, "at", "Daily start time")
	f.Float64Var(&opts.hours, "hours", opts.hours, "Study hours per day")
	f.Float64Var(&opts.multiplier, "multiplier", opts.multiplier, "Scale every lesson duration, e.g. 1.5 for pausing and notes")
	f.StringVar(&opts.tz, "tz", "", "IANA timezone of the session times (default local)")

	f.StringVar(&opts.name, "name", "", "Course name (default from the input, if any)")
	f.StringVarP(&opts.out, "out", "o", "", "Write the schedule to a .ics or .xlsx file")
	f.StringVar(&opts.place, "place", "", "Calendar event location")
	f.BoolVar(&opts.groupByDay, "group-by-day", false, "One calendar event per day with a lesson checklist")
	f.BoolVar(&opts.save, "save", false, "Save the plan for later export")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Fill in the schedule settings in a form")

	return cmd
}

func runSchedule(cmd *cobra.Command, app *App, opts *scheduleOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	in, err := ingest(ctx, cmd, app, opts)
	if err != nil {
		return err
	}
	if in.Skipped > 0 {
		fmt.Fprintf(out, "%s\n", formatter.Dim(fmt.Sprintf("Skipped %d lessons (done or without a duration).", in.Skipped)))
	}

	cfg, err := buildConfig(cmd, app, opts, in)
	if err != nil {
		return err
	}
	name := firstNonEmpty(opts.name, in.Course)

	if opts.interactive {
		if !app.interactive() {
			return fmt.Errorf("--interactive needs a terminal")
		}
		vals := newWizardValues(name, cfg, opts.save)
		if err := scheduleWizard(vals).RunWithContext(ctx); err != nil {
			return fmt.Errorf("schedule form: %w", err)
		}
		if err := vals.apply(&cfg); err != nil {
			return err
		}
		name = vals.name
		opts.save = vals.save
	}

	plan, err := app.Plans.Generate(ctx, service.GenerateRequest{
		Name:   name,
		Source: in.Source,
		Items:  in.Items,
		Config: cfg,
		Save:   opts.save,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, formatter.FormatSummary(plan.Name, scheduler.Summarize(plan.Sessions), plan.Config))
	fmt.Fprintln(out)
	fmt.Fprint(out, formatter.FormatSchedule(plan.Sessions, plan.Config.DailyBudgetMin()))

	if opts.out != "" {
		if err := writePlanFile(opts.out, plan, export.PlanOptions{GroupByDay: opts.groupByDay, Place: opts.place}); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nWrote %s\n", opts.out)
	}
	if opts.save {
		fmt.Fprintf(out, "Saved plan %s %s\n", formatter.Bold(plan.ID[:8]), formatter.Dim("("+plan.ID+")"))
	}
	return nil
}

// ingest reads the one input source named on the command line.
func ingest(ctx context.Context, cmd *cobra.Command, app *App, opts *scheduleOptions) (*service.Ingested, error) {
	switch {
	case opts.text != "":
		data, err := readInput(cmd.InOrStdin(), opts.text)
		if err != nil {
			return nil, err
		}
		return app.Ingest.FromText(ctx, string(data))

	case opts.xlsx != "":
		data, err := os.ReadFile(opts.xlsx)
		if err != nil {
			return nil, fmt.Errorf("reading spreadsheet: %w", err)
		}
		return app.Ingest.FromSpreadsheet(ctx, bytes.NewReader(data))

	case opts.json != "":
		data, err := readInput(cmd.InOrStdin(), opts.json)
		if err != nil {
			return nil, err
		}
		return app.Ingest.FromCourseFile(ctx, data)

	case opts.html != "":
		data, err := readInput(cmd.InOrStdin(), opts.html)
		if err != nil {
			return nil, err
		}
		if app.interactive() {
			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Reading lessons from the course page...")
			defer stop()
		}
		return app.Ingest.FromHTML(ctx, string(data))
	}
	return nil, errors.New("no input: pass one of --text, --xlsx, --html or --json")
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// buildConfig layers the schedule settings: flag defaults, then the course
// file's schedule block, then flags given explicitly.
func buildConfig(cmd *cobra.Command, app *App, opts *scheduleOptions, in *service.Ingested) (domain.ScheduleConfig, error) {
	flags := cmd.Flags()

	loc := domain.LocalLocation()
	if opts.tz != "" {
		l, err := time.LoadLocation(opts.tz)
		if err != nil {
			return domain.ScheduleConfig{}, &domain.ParseError{Field: "tz", Value: opts.tz, Reason: "unknown time zone"}
		}
		loc = l
	}

	cfg := domain.ScheduleConfig{
		StartDate:    domain.DateOf(app.now().In(loc)),
		Weekdays:     opts.days.Days,
		DailyStart:   opts.at.Offset,
		DailyHourCap: opts.hours,
		Multiplier:   opts.multiplier,
		Location:     loc,
	}

	if err := in.Schedule.Apply(&cfg); err != nil {
		return cfg, err
	}

	if flags.Changed("start") {
		d, err := domain.ParseDate(opts.start)
		if err != nil {
			return cfg, err
		}
		cfg.StartDate = d
	}
	if flags.Changed("days") {
		cfg.Weekdays = opts.days.Days
	}
	if flags.Changed("at") {
		cfg.DailyStart = opts.at.Offset
	}
	if flags.Changed("hours") {
		cfg.DailyHourCap = opts.hours
	}
	if flags.Changed("multiplier") {
		cfg.Multiplier = opts.multiplier
	}
	if flags.Changed("tz") {
		cfg.Location = loc
	}
	return cfg, nil
}

// writePlanFile exports a plan to path, picking the format from its extension.
func writePlanFile(path string, p *domain.Plan, opts export.PlanOptions) error {
	format, err := export.FormatForPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WritePlan(&buf, format, p, opts); err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
