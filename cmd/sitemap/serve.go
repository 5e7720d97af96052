package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/romangod6/sitemap-gen/config"
	"github.com/romangod6/sitemap-gen/internal/api"
	"github.com/romangod6/sitemap-gen/internal/app"
	"github.com/romangod6/sitemap-gen/internal/metrics"
)

func NewServeCommand() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "serve <host>",
		Short: "Generate the sitemap of a host and serve it over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(v)
			if err != nil {
				return err
			}
			defer logger.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m := metrics.New()

			a, err := app.New(ctx, cfg, args[0],
				app.WithLogger(logger.Logger),
				app.WithMetrics(m),
			)
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := a.Generate(ctx)
			if err != nil {
				return err
			}

			server := api.NewServer(cfg.Server.Port, api.NewHandler(doc, a.Generate, logger.Logger), m.Registry)
			return run(ctx, server, logger.Logger, cfg.Server.Port)
		},
	}

	bindBuildFlags(cmd, v)

	flags := cmd.Flags()
	flags.Int("port", 8080, "port to serve the sitemap on")
	mustBindPFlag(v, "server.port", flags.Lookup("port"))

	return cmd
}

// run serves until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, server *api.Server, logger *zap.Logger, port int) error {
	errCh := make(chan error, 1)

	// Start the API server
	go func() {
		logger.Info("starting API server", zap.Int("port", port))
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	// Graceful server shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info("server shut down gracefully")
	return nil
}
