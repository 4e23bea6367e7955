package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/importer"
	"github.com/alexanderramin/studycal/internal/repository"
	"github.com/alexanderramin/studycal/internal/service"
	"github.com/alexanderramin/studycal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lessonList = "Intro | 45\nSetup | 30\n"

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	planRepo := repository.NewSQLitePlanRepo(db)

	return &App{
		Plans:  service.NewPlanService(planRepo, testutil.NewTestUoW(db)),
		Ingest: service.NewIngestService(nil), // LLM disabled
		Now:    func() time.Time { return testutil.Monday.Add(9 * time.Hour) },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// scheduleArgs is a fully specified schedule invocation reading stdin.
func scheduleArgs(extra ...string) []string {
	args := []string{"schedule", "--text", "-",
		"--start", "2025-03-17", "--days", "mon,wed", "--at", "19:00",
		"--hours", "1", "--tz", "UTC", "--name", "Go Fundamentals"}
	return append(args, extra...)
}

// savePlan stores a plan through the service and returns its ID.
func savePlan(t *testing.T, app *App) string {
	t.Helper()
	p, err := app.Plans.Generate(context.Background(), service.GenerateRequest{
		Name:   "Go Fundamentals",
		Source: service.SourceText,
		Items:  []domain.RawItem{{Title: "Intro", Duration: "45"}, {Title: "Setup", Duration: "30"}},
		Config: testutil.NewTestConfig(),
		Save:   true,
	})
	require.NoError(t, err)
	return p.ID
}

// --- schedule ---

func TestScheduleCmd_TextFromStdin(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, lessonList, scheduleArgs()...)
	require.NoError(t, err)
	assert.Contains(t, out, "Go Fundamentals")
	assert.Contains(t, out, "3 across 2 days")
	assert.Contains(t, out, "Intro")
	assert.Contains(t, out, "Setup")
	assert.Contains(t, out, "mon,wed")
	assert.NotContains(t, out, "Saved plan")

	plans, err := app.Plans.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, plans, "nothing is saved without --save")
}

func TestScheduleCmd_TextFromFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "lessons.txt")
	require.NoError(t, os.WriteFile(path, []byte(lessonList), 0644))

	out, err := executeCmd(t, app, "", "schedule", "--text", path, "--start", "2025-03-17", "--tz", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, "Intro")
}

func TestScheduleCmd_WritesICS(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "course.ics")

	out, err := executeCmd(t, app, lessonList, scheduleArgs("--out", path, "--place", "Library")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "BEGIN:VCALENDAR"))
	assert.Equal(t, 3, strings.Count(string(data), "BEGIN:VEVENT"))
	assert.Contains(t, string(data), "LOCATION:Library")
}

func TestScheduleCmd_WritesICSGroupedByDay(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "course.ics")

	_, err := executeCmd(t, app, lessonList, scheduleArgs("--out", path, "--group-by-day")...)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "BEGIN:VEVENT"))
}

func TestScheduleCmd_WritesXLSX(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "course.xlsx")

	_, err := executeCmd(t, app, lessonList, scheduleArgs("-o", path)...)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestScheduleCmd_UnknownOutputExtension(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, lessonList, scheduleArgs("--out", filepath.Join(t.TempDir(), "course.pdf"))...)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestScheduleCmd_Save(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, lessonList, scheduleArgs("--save")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved plan")

	plans, err := app.Plans.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Go Fundamentals", plans[0].Name)
	assert.Equal(t, service.SourceText, plans[0].Source)
	assert.Equal(t, 3, plans[0].SessionCount)
}

func TestScheduleCmd_SaveStoresHostZoneName(t *testing.T) {
	t.Setenv("TZ", "America/New_York")
	app := testApp(t)

	args := []string{"schedule", "--text", "-", "--start", "2025-03-17", "--days", "mon,wed",
		"--at", "19:00", "--hours", "1", "--name", "Go Fundamentals", "--save"}
	_, err := executeCmd(t, app, lessonList, args...)
	require.NoError(t, err)

	plans, err := app.Plans.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	plan, err := app.Plans.Get(context.Background(), plans[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", plan.Config.Loc().String())
}

func TestScheduleCmd_Spreadsheet(t *testing.T) {
	app := testApp(t)
	buf, err := importer.SampleSpreadsheet()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "course.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	out, err := executeCmd(t, app, "", "schedule", "--xlsx", path, "--start", "2025-03-17", "--tz", "UTC", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved plan")

	plans, err := app.Plans.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, service.SourceSpreadsheet, plans[0].Source)
}

func TestScheduleCmd_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"no input", "", []string{"schedule"}, "no input"},
		{"two inputs", "", []string{"schedule", "--text", "-", "--xlsx", "a.xlsx"}, "none of the others can be"},
		{"bad days", lessonList, scheduleArgs("--days", "funday"), "unknown weekday"},
		{"bad clock", lessonList, scheduleArgs("--at", "7pm"), "HH:MM"},
		{"bad start", lessonList, scheduleArgs("--start", "17/03/2025"), "YYYY-MM-DD"},
		{"bad tz", lessonList, scheduleArgs("--tz", "Mars/Olympus"), "unknown time zone"},
		{"unparseable text", "no durations here", scheduleArgs(), "parse"},
		{"missing file", "", []string{"schedule", "--xlsx", "does-not-exist.xlsx"}, "reading spreadsheet"},
		{"interactive without terminal", lessonList, scheduleArgs("--interactive"), "needs a terminal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			_, err := executeCmd(t, app, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScheduleCmd_ConfigurationError(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, lessonList, scheduleArgs("--at", "23:30")...)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestScheduleCmd_HTMLWithoutLLM(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "<ul><li>Intro 5 min</li></ul>", "schedule", "--html", "-")
	assert.ErrorIs(t, err, service.ErrExtractionDisabled)
}

const courseFile = `{
	"course": "Go Fundamentals",
	"schedule": {"start_date": "2025-03-18", "days": "tue,thu", "start_time": "07:00", "daily_hours": 2, "timezone": "UTC"},
	"items": [
		{"module": "Basics", "title": "Intro", "duration": 45},
		{"module": "Basics", "title": "Done already", "duration": 10, "done": true},
		{"module": "Basics", "title": "Setup", "duration": "30"}
	]
}`

func TestScheduleCmd_CourseFile(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, courseFile, "schedule", "--json", "-", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped 1 lessons")
	assert.Contains(t, out, "Go Fundamentals")

	plans, err := app.Plans.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	p, err := app.Plans.Get(context.Background(), plans[0].ID)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-18", p.Config.StartDate.Format("2006-01-02"))
	assert.Equal(t, domain.NewWeekdaySet(time.Tuesday, time.Thursday), p.Config.Weekdays)
	assert.Equal(t, 7*time.Hour, p.Config.DailyStart)
	assert.Equal(t, 2.0, p.Config.DailyHourCap)
	assert.Equal(t, service.SourceCourseFile, p.Source)
	require.Len(t, p.Sessions, 2, "both lessons fit in one two-hour day")
	assert.Equal(t, "Basics: Intro", p.Sessions[0].Title)
}

func TestScheduleCmd_FlagsOverrideCourseFile(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, courseFile, "schedule", "--json", "-", "--save",
		"--days", "fri", "--hours", "0.5", "--name", "Renamed")
	require.NoError(t, err)

	plans, err := app.Plans.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	p, err := app.Plans.Get(context.Background(), plans[0].ID)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, domain.NewWeekdaySet(time.Friday), p.Config.Weekdays)
	assert.Equal(t, 0.5, p.Config.DailyHourCap)
	assert.Equal(t, 7*time.Hour, p.Config.DailyStart, "start time still comes from the file")
	for _, s := range p.Sessions {
		assert.Equal(t, time.Friday, s.Date.Weekday())
	}
}

func TestScheduleCmd_InvalidCourseFile(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, `{"course": "X", "items": [{"title": "", "duration": 0}]}`, "schedule", "--json", "-")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestScheduleCmd_DefaultStartIsToday(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, lessonList, "schedule", "--text", "-", "--tz", "UTC", "--save")
	require.NoError(t, err)

	plans, err := app.Plans.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "2025-03-17", plans[0].StartDate.Format("2006-01-02"))
}

// --- plan ---

func TestPlanCmd_ListEmpty(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "", "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved plans")
}

func TestPlanCmd_ListShowView(t *testing.T) {
	app := testApp(t)
	id := savePlan(t, app)

	out, err := executeCmd(t, app, "", "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Fundamentals")
	assert.Contains(t, out, id[:8])

	out, err = executeCmd(t, app, "", "plan", "show", id[:8])
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Intro")
	assert.Contains(t, out, "Setup")

	out, err = executeCmd(t, app, "", "plan", "view", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Intro", "view prints when not on a terminal")
}

func TestPlanCmd_Export(t *testing.T) {
	app := testApp(t)
	id := savePlan(t, app)
	dir := t.TempDir()

	ics := filepath.Join(dir, "plan.ics")
	out, err := executeCmd(t, app, "", "plan", "export", id, "--out", ics)
	require.NoError(t, err)
	assert.Contains(t, out, "2 sessions")
	first, err := os.ReadFile(ics)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "", "plan", "export", id, "--out", ics)
	require.NoError(t, err)
	second, err := os.ReadFile(ics)
	require.NoError(t, err)
	assert.Equal(t, first, second, "exports of a saved plan are stable")

	xlsx := filepath.Join(dir, "plan.xlsx")
	_, err = executeCmd(t, app, "", "plan", "export", id, "-o", xlsx)
	require.NoError(t, err)
	assert.FileExists(t, xlsx)

	_, err = executeCmd(t, app, "", "plan", "export", id)
	assert.Error(t, err, "--out is required")
}

func TestPlanCmd_Remove(t *testing.T) {
	app := testApp(t)
	id := savePlan(t, app)

	out, err := executeCmd(t, app, "", "plan", "rm", id[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Removed plan")

	_, err = executeCmd(t, app, "", "plan", "show", id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = executeCmd(t, app, "", "plan", "remove", id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanCmd_ListLimit(t *testing.T) {
	app := testApp(t)
	savePlan(t, app)
	savePlan(t, app)

	out, err := executeCmd(t, app, "", "plan", "list", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Go Fundamentals"))
}

// --- sample ---

func TestSampleCmd(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "sample.xlsx")

	out, err := executeCmd(t, app, "", "sample", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	items, err := importer.ParseSpreadsheet(f)
	require.NoError(t, err)
	assert.Len(t, items, 4)
}
