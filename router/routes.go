package router

import (
	"github.com/gin-gonic/gin"

	"econ-pulse/handlers"
)

func registerCountryRoutes(router *gin.RouterGroup, countryHandler *handlers.CountryHandler, indicatorHandler *handlers.IndicatorHandler, pulseHandler *handlers.PulseHandler) {
	countries := router.Group("/countries")
	{
		countries.GET("", countryHandler.List)
		countries.POST("", countryHandler.Create)
		countries.GET("/iso/:iso_code", countryHandler.GetByISOCode)
		countries.GET("/:id", countryHandler.Get)

		countries.GET("/:id/indicators", indicatorHandler.ListByCountry)
		countries.GET("/:id/indicators/:name/latest", indicatorHandler.Latest)
		countries.GET("/:id/indicators/:name/history", indicatorHandler.History)

		countries.GET("/:id/pulse/latest", pulseHandler.Latest)
		countries.GET("/:id/pulse/history", pulseHandler.History)
		countries.POST("/:id/pulse/recompute", pulseHandler.Recompute)
	}
}

func registerIndicatorRoutes(router *gin.RouterGroup, indicatorHandler *handlers.IndicatorHandler) {
	router.POST("/indicators", indicatorHandler.Create)
}

func registerPulseRoutes(router *gin.RouterGroup, pulseHandler *handlers.PulseHandler) {
	pulse := router.Group("/pulse")
	{
		pulse.GET("/latest", pulseHandler.AllLatest)
		pulse.POST("", pulseHandler.Create)
	}
}

func registerEventRoutes(router *gin.RouterGroup, eventHandler *handlers.EventHandler) {
	events := router.Group("/events")
	{
		events.GET("", eventHandler.List)
		events.POST("", eventHandler.Create)
		events.GET("/:id", eventHandler.Get)
		events.GET("/:id/impacts", eventHandler.Impacts)
	}
	router.POST("/event-impacts", eventHandler.CreateImpact)
}

func registerPageRoutes(router *gin.Engine, pageHandler *handlers.PageHandler) {
	router.GET("/", pageHandler.Landing)
	router.GET("/dashboard", pageHandler.Dashboard)
	router.GET("/events", pageHandler.Events)
	router.GET("/countries/:id", pageHandler.Country)
	router.GET("/events/:id", pageHandler.Event)
	router.NoRoute(pageHandler.NotFound)
}
