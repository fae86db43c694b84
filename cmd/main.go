package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	_ "time/tzdata"

	"github.com/poofware/widget-service/internal/app"
	"github.com/poofware/widget-service/internal/config"
	"github.com/poofware/widget-service/internal/metrics"
	"github.com/poofware/widget-service/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	utils.InitLogger(config.AppName)

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Widget REST API with optimistic locking",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server (default)",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the widgets schema to the configured store and exit",
			RunE:  runMigrate,
		},
	)

	if err := root.Execute(); err != nil {
		utils.Logger.WithError(err).Fatal("widget-service exited with error")
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (store, seeding)
	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	// 3) Router, controllers, middleware
	metrics.Register(prometheus.DefaultRegisterer)
	handler := app.NewRouter(application, prometheus.DefaultGatherer)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		utils.Logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadConfig()

	repo, err := app.OpenWidgetRepository(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	application := &app.App{Config: cfg, WidgetRepo: repo}
	defer application.Close()

	return application.Migrate(cmd.Context())
}
