package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"econ-pulse/handlers"
	"econ-pulse/router"
	"econ-pulse/seed"
	"econ-pulse/web"
)

const shutdownTimeout = 10 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (JSON API and dashboard pages)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()
		if servePort != "" {
			a.cfg.ServerPort = servePort
		}

		seeder := seed.New(a.svc, a.log)
		if a.cfg.SeedOnStart {
			if err := seedIfEmpty(ctx, a, seeder); err != nil {
				return err
			}
		}

		tmpl, err := web.Templates()
		if err != nil {
			return fmt.Errorf("parse templates: %w", err)
		}

		gin.SetMode(a.cfg.GinMode)
		engine := router.NewRouter(&router.Config{
			CountryHandler:   handlers.NewCountryHandler(a.svc.Countries, a.log),
			IndicatorHandler: handlers.NewIndicatorHandler(a.svc.Indicators, a.log),
			PulseHandler:     handlers.NewPulseHandler(a.svc.Pulse, a.log),
			EventHandler:     handlers.NewEventHandler(a.svc.Events, a.svc.EventImpacts, a.log),
			SeedHandler:      handlers.NewSeedHandler(seeder, a.log),
			StreamHandler:    handlers.NewStreamHandler(a.hub),
			PageHandler:      handlers.NewPageHandler(a.svc, a.log),
			Templates:        tmpl,
			Metrics:          a.metrics,
			Logger:           a.log,
			RateLimitRPS:     a.cfg.RateLimitRPS,
			RateLimitBurst:   a.cfg.RateLimitBurst,
		})

		srv := &http.Server{
			Addr:              ":" + a.cfg.ServerPort,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.log.WithField("addr", srv.Addr).Info("Starting economic pulse server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func seedIfEmpty(ctx context.Context, a *app, seeder *seed.Seeder) error {
	countries, err := a.svc.Countries.List(ctx)
	if err != nil {
		return err
	}
	if len(countries) > 0 {
		a.log.WithField("countries", len(countries)).Info("Store not empty, skipping seed")
		return nil
	}
	res, err := seeder.Run(ctx)
	if err != nil {
		return fmt.Errorf("seed on start: %w", err)
	}
	a.log.WithField("countries", res.Countries).Info(res.Message)
	return nil
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (env SERVER_PORT)")
	rootCmd.AddCommand(serveCmd)
}
