package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/studycal/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	cfg := app.Server
	if cfg.Addr == "" {
		cfg.Addr = server.DefaultConfig().Addr
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduling API over HTTP",
		Long: `Start an HTTP server exposing the schedule form endpoint
(POST /api/v1/schedule), the sample spreadsheet and the saved plans.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			gin.SetMode(gin.ReleaseMode)
			srv := server.New(cfg, app.Plans, app.Ingest, app.logger())
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", cfg.Addr)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	cmd.Flags().StringVar(&cfg.DefaultTimezone, "tz", cfg.DefaultTimezone, "Timezone used when a form sends none (default America/Sao_Paulo)")
	return cmd
}
