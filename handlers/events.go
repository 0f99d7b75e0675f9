package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"econ-pulse/dashboard"
	"econ-pulse/models"
	"econ-pulse/repository"
	"econ-pulse/service"
)

type EventHandler struct {
	events  *service.EventService
	impacts *service.EventImpactService
	log     logrus.FieldLogger
}

func NewEventHandler(events *service.EventService, impacts *service.EventImpactService, log logrus.FieldLogger) *EventHandler {
	return &EventHandler{events: events, impacts: impacts, log: log}
}

// Summaries must be present but may be empty.
type createEventRequest struct {
	Title             string    `json:"title" binding:"required"`
	Date              time.Time `json:"date" binding:"required"`
	Country           string    `json:"country" binding:"required"`
	Type              string    `json:"type" binding:"required"`
	Summary           *string   `json:"summary" binding:"required"`
	RelatedIndicators []string  `json:"related_indicators"`
	SourceURL         *string   `json:"source_url"`
}

type createEventImpactRequest struct {
	EventID         string   `json:"event_id" binding:"required"`
	CountryID       string   `json:"country_id" binding:"required"`
	IndicatorName   string   `json:"indicator_name" binding:"required"`
	PreValue        *float64 `json:"pre_value" binding:"required"`
	PostValue       *float64 `json:"post_value" binding:"required"`
	Correlation     *float64 `json:"correlation" binding:"required"`
	DeltaPercentage *float64 `json:"delta_percentage" binding:"required"`
	DeltaSummary    *string  `json:"delta_summary" binding:"required"`
}

// List serves ?limit=, ?country= and ?type=. With a country the events of
// that country are read and then narrowed by type. Every branch is capped
// at limit, 50 when absent.
func (h *EventHandler) List(c *gin.Context) {
	limit, err := limitQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	ctx := c.Request.Context()
	country, eventType := c.Query("country"), c.Query("type")

	var events []models.Event
	switch {
	case country != "":
		events, err = h.events.ListByCountry(ctx, country)
		events = dashboard.FilterByType(events, eventType)
	case eventType != "":
		events, err = h.events.ListByType(ctx, eventType)
	default:
		events, err = h.events.List(ctx, limit)
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if limit == 0 {
		limit = repository.DefaultEventLimit
	}
	if len(events) > limit {
		events = events[:limit]
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, err := eventParam(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	event, err := h.events.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if event == nil {
		notFound(c, "event")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.events.Create(c.Request.Context(), &models.Event{
		Title:             req.Title,
		Date:              req.Date,
		Country:           req.Country,
		Type:              req.Type,
		Summary:           *req.Summary,
		RelatedIndicators: req.RelatedIndicators,
		SourceURL:         req.SourceURL,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Impacts lists the impacts of an event joined with their country. An
// event without impacts, or an unknown one, yields an empty list.
func (h *EventHandler) Impacts(c *gin.Context) {
	id, err := eventParam(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	impacts, err := h.impacts.ListByEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, impacts)
}

func (h *EventHandler) CreateImpact(c *gin.Context) {
	var req createEventImpactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.impacts.Create(c.Request.Context(), &models.EventImpact{
		EventID:         models.EventID(req.EventID),
		CountryID:       models.CountryID(req.CountryID),
		IndicatorName:   req.IndicatorName,
		PreValue:        *req.PreValue,
		PostValue:       *req.PostValue,
		Correlation:     *req.Correlation,
		DeltaPercentage: *req.DeltaPercentage,
		DeltaSummary:    *req.DeltaSummary,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
