package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/config/file"
	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with the web upload page and the audit API.

Endpoints:
  GET  /         upload page
  POST /audit    form fields report_text and/or report_file
  GET  /healthz  liveness check
  GET  /metrics  Prometheus metrics

Prompt templates are reloaded when their files change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := serveAddr
	if addr == "" {
		settings, err := runtimeSettings.Get()
		if err != nil {
			return err
		}
		addr = settings.Server.Addr
	}

	svc, err := ensureAuditService(ctx)
	if err != nil {
		return err
	}
	startPromptWatcher(ctx)

	var gatherer prometheus.Gatherer
	if metricsRegistry != nil {
		gatherer = metricsRegistry
	}
	handler := httpapi.New(svc, gatherer)
	srv := httpapi.NewServer(addr, handler.Routes())
	cmd.Printf("Auditor listening on %s\n", addr)
	return httpapi.Serve(ctx, srv)
}

// startPromptWatcher reloads prompts on file changes until ctx is done.
func startPromptWatcher(ctx context.Context) {
	store, err := ensurePromptStore()
	if err != nil {
		logger.Warn("Prompt hot reload disabled: %v", err)
		return
	}
	watcher, err := file.NewPromptWatcher(store, store.Dir())
	if err != nil {
		logger.Warn("Prompt hot reload disabled: %v", err)
		return
	}
	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Warn("Prompt watcher stopped: %v", err)
		}
	}()
}
