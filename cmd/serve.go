package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/httpapi"
	"github.com/huangsam/picklist/internal/metrics"
	"github.com/spf13/cobra"
)

// serveCmd serves pick lists over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve pick lists over an HTTP JSON API",
	Long: `Start an HTTP server that ranks events on request.

Endpoints:
  GET /picklist?event=2024casj&strategy=defensive&limit=24
  GET /columns?event=2024casj&columns=balanced,opr:desc
  GET /weights/validate?weights=opr=0.5,dpr=0.5
  GET /strategies
  GET /healthz
  GET /metrics (Prometheus)

Flags passed to 'serve' become the defaults of every request. Requests do not
record history.

Examples:
  picklist serve --addr 0.0.0.0:8080 --data ./events`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := httpapi.NewServer(cfg, storeManager, statsSource(), metrics.New())
		if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
			contract.LogFatal("Server failed", err)
		}
	},
}
