package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"econ-pulse/config"
	"econ-pulse/database"
	"econ-pulse/logging"
	"econ-pulse/metrics"
	"econ-pulse/notify"
	"econ-pulse/service"
)

var (
	dbDriver string
	dbDSN    string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Economic pulse dashboard",
	Long: `Economic pulse dashboard

Tracks economic indicators per country, computes a composite 0-100
health score and records the policy events that moved the numbers.

Settings come from the environment (and a .env file); the flags below
override the matching variables.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "store driver: sqlite or postgres (env DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", "", "sqlite path or postgres DSN (env DB_DSN)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (env LOG_LEVEL)")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() *config.Config {
	cfg := config.Load()
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	if dbDSN != "" {
		cfg.DBDSN = dbDSN
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg
}

// app is everything a command needs once the store is open.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	db      *gorm.DB
	hub     *notify.Hub
	metrics *metrics.Metrics
	svc     *service.Services
}

// newApp opens and migrates the store and wires the services.
func newApp(ctx context.Context) (*app, error) {
	cfg := loadConfig()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	hub := notify.NewHub(0)
	m := metrics.New()
	svc := service.New(db, service.Options{
		Publisher:     hub,
		FanoutLimit:   cfg.FanoutLimit,
		ScoreObserver: m,
	})

	return &app{cfg: cfg, log: log, db: db, hub: hub, metrics: m, svc: svc}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}
