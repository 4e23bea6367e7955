package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/studycal/internal/logger"
	"github.com/alexanderramin/studycal/internal/server"
	"github.com/alexanderramin/studycal/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all services and environment used by CLI commands.
type App struct {
	Plans  service.PlanService
	Ingest service.IngestService

	Logger *slog.Logger
	Server server.Config

	// IsInteractive reports whether stdin/stdout are a terminal. Wizards,
	// spinners and the pager only run when it returns true.
	IsInteractive func() bool

	// Now is the clock used for default start dates and relative times.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return logger.Discard()
}

// NewRootCmd creates the top-level "studycal" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "studycal",
		Short: "Turn a course outline into a study calendar",
		Long: `studycal reads a course's lesson list (pasted text, a spreadsheet, a JSON
course file or a saved course page), packs the lessons into daily study
sessions and exports them as an iCalendar (.ics) or Excel (.xlsx) file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newScheduleCmd(app),
		newPlanCmd(app),
		newSampleCmd(app),
		newServeCmd(app),
	)

	return root
}
