package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"econ-pulse/dashboard"
	"econ-pulse/models"
	"econ-pulse/service"
)

// Row counts of the page previews. The country chart covers one year of
// monthly scores.
const (
	landingTopCountries   = 5
	landingRecentEvents   = 3
	dashboardRecentEvents = 10
	countryHistoryLimit   = 12
)

type PageHandler struct {
	svc *service.Services
	log logrus.FieldLogger
}

func NewPageHandler(svc *service.Services, log logrus.FieldLogger) *PageHandler {
	return &PageHandler{svc: svc, log: log}
}

type FilterParams struct {
	Region string
	Type   string
}

type StatsData struct {
	Countries    int
	AverageScore float64
	Strong       int
	Weak         int
	ActiveEvents int
}

type LandingData struct {
	TopCountries []models.CountryPulse
	RecentEvents []models.Event
}

type DashboardData struct {
	Filters      FilterParams
	Regions      []string
	Scores       []models.CountryPulse
	Stats        *StatsData
	RecentEvents []models.Event
}

type EventsData struct {
	Filters FilterParams
	Types   []string
	Events  []models.Event
}

type CountryData struct {
	Country   *models.Country
	Cards     []dashboard.IndicatorCard
	Latest    *models.PulseScore
	Breakdown []dashboard.ComponentRow
	Chart     []dashboard.ChartPoint
	Impacts   []models.EventImpact
}

type EventData struct {
	Event   *models.Event
	Impacts []models.EnrichedEventImpact
}

func (h *PageHandler) Landing(c *gin.Context) {
	ctx := c.Request.Context()

	scores, err := h.svc.Pulse.AllLatest(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}
	events, err := h.svc.Events.List(ctx, landingRecentEvents)
	if err != nil {
		h.renderError(c, err)
		return
	}

	top := dashboard.SortByScore(scores)
	if len(top) > landingTopCountries {
		top = top[:landingTopCountries]
	}
	c.HTML(http.StatusOK, "landing.html", LandingData{TopCountries: top, RecentEvents: events})
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	region := c.DefaultQuery("region", dashboard.All)

	countries, err := h.svc.Countries.List(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}
	scores, err := h.svc.Pulse.AllLatest(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}

	events, err := h.svc.Events.List(ctx, dashboardRecentEvents)
	if err != nil {
		h.renderError(c, err)
		return
	}

	filtered := dashboard.SortByScore(dashboard.FilterByRegion(scores, region))
	stats := computeStats(filtered)
	stats.ActiveEvents = len(events)
	c.HTML(http.StatusOK, "dashboard.html", DashboardData{
		Filters:      FilterParams{Region: region},
		Regions:      dashboard.Regions(countries),
		Scores:       filtered,
		Stats:        stats,
		RecentEvents: events,
	})
}

func (h *PageHandler) Events(c *gin.Context) {
	eventType := c.DefaultQuery("type", dashboard.All)

	events, err := h.svc.Events.List(c.Request.Context(), 0)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "events.html", EventsData{
		Filters: FilterParams{Type: eventType},
		Types:   dashboard.EventTypes(events),
		Events:  dashboard.SortEventsNewestFirst(dashboard.FilterByType(events, eventType)),
	})
}

func (h *PageHandler) Country(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := models.ParseCountryID(c.Param("id"))
	if err != nil {
		h.renderNotFound(c, "Country not found")
		return
	}

	country, err := h.svc.Countries.GetByID(ctx, id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if country == nil {
		h.renderNotFound(c, "Country not found")
		return
	}

	indicators, err := h.svc.Indicators.ListByCountry(ctx, id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	history, err := h.svc.Pulse.History(ctx, id, countryHistoryLimit)
	if err != nil {
		h.renderError(c, err)
		return
	}
	impacts, err := h.svc.EventImpacts.ListByCountry(ctx, id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	data := CountryData{
		Country: country,
		Cards:   dashboard.IndicatorCards(indicators),
		Chart:   dashboard.PulseChart(history),
		Impacts: impacts,
	}
	if len(history) > 0 {
		data.Latest = &history[0]
		data.Breakdown = dashboard.Breakdown(history[0].Components)
	}
	c.HTML(http.StatusOK, "country.html", data)
}

func (h *PageHandler) Event(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := models.ParseEventID(c.Param("id"))
	if err != nil {
		h.renderNotFound(c, "Event not found")
		return
	}

	event, err := h.svc.Events.GetByID(ctx, id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if event == nil {
		h.renderNotFound(c, "Event not found")
		return
	}

	impacts, err := h.svc.EventImpacts.ListByEvent(ctx, id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "event.html", EventData{Event: event, Impacts: impacts})
}

// NotFound renders the error page for unknown routes.
func (h *PageHandler) NotFound(c *gin.Context) {
	h.renderNotFound(c, "Page not found")
}

func (h *PageHandler) renderNotFound(c *gin.Context, msg string) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{"error": msg})
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("page failed")
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Database error"})
}

func computeStats(scores []models.CountryPulse) *StatsData {
	stats := &StatsData{Countries: len(scores)}
	if len(scores) == 0 {
		return stats
	}
	total := 0
	for _, s := range scores {
		total += s.Score.Score
		switch dashboard.ScoreBand(s.Score.Score) {
		case "strong":
			stats.Strong++
		case "weak":
			stats.Weak++
		}
	}
	stats.AverageScore = float64(total) / float64(len(scores))
	return stats
}
