package router

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"econ-pulse/handlers"
	"econ-pulse/logging"
	"econ-pulse/metrics"
)

type Config struct {
	CountryHandler   *handlers.CountryHandler
	IndicatorHandler *handlers.IndicatorHandler
	PulseHandler     *handlers.PulseHandler
	EventHandler     *handlers.EventHandler
	SeedHandler      *handlers.SeedHandler
	StreamHandler    *handlers.StreamHandler
	PageHandler      *handlers.PageHandler

	Templates *template.Template
	Metrics   *metrics.Metrics
	Logger    logrus.FieldLogger

	// RateLimitRPS of 0 disables limiting of /api.
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.Middleware(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	if cfg.RateLimitRPS > 0 {
		api.Use(rateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	registerCountryRoutes(api, cfg.CountryHandler, cfg.IndicatorHandler, cfg.PulseHandler)
	registerIndicatorRoutes(api, cfg.IndicatorHandler)
	registerPulseRoutes(api, cfg.PulseHandler)
	registerEventRoutes(api, cfg.EventHandler)
	api.POST("/seed", cfg.SeedHandler.Seed)
	api.GET("/stream", cfg.StreamHandler.Stream)

	if cfg.Templates != nil {
		router.SetHTMLTemplate(cfg.Templates)
		registerPageRoutes(router, cfg.PageHandler)
	}

	return router
}
