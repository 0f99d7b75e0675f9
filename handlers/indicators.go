package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"econ-pulse/models"
	"econ-pulse/service"
)

type IndicatorHandler struct {
	indicators *service.IndicatorService
	log        logrus.FieldLogger
}

func NewIndicatorHandler(indicators *service.IndicatorService, log logrus.FieldLogger) *IndicatorHandler {
	return &IndicatorHandler{indicators: indicators, log: log}
}

// Value is a pointer so that an explicit 0 is told apart from a missing field.
type createIndicatorRequest struct {
	CountryID string    `json:"country_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Value     *float64  `json:"value" binding:"required"`
	Source    string    `json:"source" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
}

func (h *IndicatorHandler) ListByCountry(c *gin.Context) {
	id, err := countryParam(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	indicators, err := h.indicators.ListByCountry(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, indicators)
}

// Latest answers null when the country has no reading of that name.
func (h *IndicatorHandler) Latest(c *gin.Context) {
	id, err := countryParam(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	indicator, err := h.indicators.Latest(c.Request.Context(), id, c.Param("name"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, indicator)
}

func (h *IndicatorHandler) History(c *gin.Context) {
	id, err := countryParam(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	limit, err := limitQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	history, err := h.indicators.History(c.Request.Context(), id, c.Param("name"), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *IndicatorHandler) Create(c *gin.Context) {
	var req createIndicatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.indicators.Create(c.Request.Context(), &models.Indicator{
		CountryID: models.CountryID(req.CountryID),
		Name:      req.Name,
		Value:     *req.Value,
		Source:    req.Source,
		Date:      req.Date,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
