package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"econ-pulse/models"
	"econ-pulse/service"
)

type CountryHandler struct {
	countries *service.CountryService
	log       logrus.FieldLogger
}

func NewCountryHandler(countries *service.CountryService, log logrus.FieldLogger) *CountryHandler {
	return &CountryHandler{countries: countries, log: log}
}

type createCountryRequest struct {
	Name      string   `json:"name" binding:"required"`
	ISOCode   string   `json:"iso_code" binding:"required"`
	Region    string   `json:"region" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (h *CountryHandler) List(c *gin.Context) {
	var (
		countries []models.Country
		err       error
	)
	if region := c.Query("region"); region != "" {
		countries, err = h.countries.ListByRegion(c.Request.Context(), region)
	} else {
		countries, err = h.countries.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (h *CountryHandler) Get(c *gin.Context) {
	id, err := countryParam(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	country, err := h.countries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if country == nil {
		notFound(c, "country")
		return
	}
	c.JSON(http.StatusOK, country)
}

func (h *CountryHandler) GetByISOCode(c *gin.Context) {
	country, err := h.countries.GetByISOCode(c.Request.Context(), c.Param("iso_code"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if country == nil {
		notFound(c, "country")
		return
	}
	c.JSON(http.StatusOK, country)
}

func (h *CountryHandler) Create(c *gin.Context) {
	var req createCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.countries.Create(c.Request.Context(), &models.Country{
		Name:      req.Name,
		ISOCode:   req.ISOCode,
		Region:    req.Region,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
