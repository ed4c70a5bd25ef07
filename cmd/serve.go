package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/health-widget/internal/handler"
	"github.com/angeloszaimis/health-widget/internal/httpserver"
	"github.com/angeloszaimis/health-widget/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget as an HTML page with JSON state and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("address") {
				a.cfg.Server.Address = address
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return serve(ctx, a)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address (default from config, :8080)")

	return cmd
}

func serve(ctx context.Context, a *app) error {
	collector := metrics.NewCollector(a.cfg.Metrics.BufferSize, a.cfg.Endpoint.URL, a.log)
	collector.Start(ctx)

	w, p, err := mountWidget(ctx, a.cfg, a.log, collector)
	if err != nil {
		a.log.Error("Failed to mount widget", slog.Any("err", err))
		return err
	}
	defer p.Stop()

	widgetHandler := handler.NewWidgetHandler(a.log, w, a.cfg.PollInterval())

	srv, err := httpserver.New(a.cfg.Server.Address, setupRouter(widgetHandler, collector), a.log)
	if err != nil {
		a.log.Error("Failed to create server", slog.Any("err", err))
		return err
	}

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		a.log.Info("Shutting down gracefully...")
		p.Stop()
		if err := srv.Shutdown(context.Background()); err != nil {
			a.log.Error("Error during shutdown", slog.Any("err", err))
			return err
		}
		return nil
	case err := <-srvErrCh:
		if err != nil {
			a.log.Error("Error starting server", slog.Any("err", err))
		}
		return err
	}
}
