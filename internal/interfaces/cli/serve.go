package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jdsanc/mt-nir/internal/infrastructure/logging"
	"github.com/jdsanc/mt-nir/internal/infrastructure/metrics"
	httpiface "github.com/jdsanc/mt-nir/internal/interfaces/http"
	"github.com/jdsanc/mt-nir/internal/predictor"
)

// newServeCmd creates the serve subcommand: the long-running HTTP API over
// the same predictor the one-shot paths use.
func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the prediction HTTP API",
		Long:  "Serve exposes single and batch prediction endpoints over HTTP, plus\n/healthz and prometheus /metrics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}

	m := metrics.New()

	p, err := buildPredictor(cmd, cfg, logger, m)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Checkpoint watching is best-effort; serve mode runs fine without it.
	if watcher, werr := predictor.NewCheckpointWatcher(cfg.Chemprop.ModelsPath, logger); werr != nil {
		logger.Warn("checkpoint watcher unavailable", logging.Err(werr))
	} else {
		go watcher.Run(ctx)
	}

	srv := httpiface.NewServer(cfg.Server, p, m, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
