package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"econ-pulse/models"
	"econ-pulse/service"
)

type PulseHandler struct {
	pulse *service.PulseService
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewPulseHandler(pulse *service.PulseService, log logrus.FieldLogger) *PulseHandler {
	return &PulseHandler{pulse: pulse, log: log, now: time.Now}
}

type createPulseRequest struct {
	CountryID  string            `json:"country_id" binding:"required"`
	Score      *int              `json:"score" binding:"required"`
	Date       time.Time         `json:"date" binding:"required"`
	Components models.Components `json:"components"`
}

type recomputeResponse struct {
	Score   *models.PulseScore `json:"score"`
	Missing []string           `json:"missing"`
}

func (h *PulseHandler) Latest(c *gin.Context) {
	id, err := countryParam(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	score, err := h.pulse.Latest(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *PulseHandler) History(c *gin.Context) {
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
	history, err := h.pulse.History(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *PulseHandler) AllLatest(c *gin.Context) {
	scores, err := h.pulse.AllLatest(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

// Recompute scores the country from its latest readings and stores the
// result. Missing lists the inputs that were taken as 0.
func (h *PulseHandler) Recompute(c *gin.Context) {
	id, err := countryParam(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	score, result, err := h.pulse.Recompute(c.Request.Context(), id, h.now().UTC())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	missing := result.Missing
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusCreated, recomputeResponse{Score: score, Missing: missing})
}

func (h *PulseHandler) Create(c *gin.Context) {
	var req createPulseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.pulse.Create(c.Request.Context(), &models.PulseScore{
		CountryID:  models.CountryID(req.CountryID),
		Score:      *req.Score,
		Date:       req.Date,
		Components: req.Components,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
