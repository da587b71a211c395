package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"authsvc/internal/config"
	"authsvc/internal/logger"
	"authsvc/internal/server"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "authsvc",
		Short:        "authsvc - user registration and token authentication service",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default configs/config.yml)")

	cmd.AddCommand(newServeCmd(&configFile))
	return cmd
}

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, *configFile)
		},
	}
}

// runServe blocks until ctx is cancelled, then drains in-flight requests.
func runServe(ctx context.Context, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.Get(cfg.Log.Level)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Errorw("startup failed", "err", err)
		return err
	}
	defer a.Close()

	srv := server.New(cfg.Port, a.router, server.Timeouts{})
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http_server_started", "addr", srv.Addr(), "db_driver", cfg.DB.Driver)
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("error starting server", "err", err)
		}
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return <-errCh
}
