// Package handlers holds the gin handlers of the JSON API, the HTML pages
// and the change stream.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"econ-pulse/models"
	"econ-pulse/repository"
	"econ-pulse/service"
)

type invalidParamError struct {
	name  string
	value string
}

func (e *invalidParamError) Error() string {
	return "invalid " + e.name + ": " + e.value
}

// respondError maps err onto a status code and writes {"error": ...}.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	var (
		verr *repository.ValidationError
		perr *invalidParamError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &perr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func countryParam(c *gin.Context) (models.CountryID, error) {
	raw := c.Param("id")
	id, err := models.ParseCountryID(raw)
	if err != nil {
		return "", &invalidParamError{name: "country id", value: raw}
	}
	return id, nil
}

func eventParam(c *gin.Context) (models.EventID, error) {
	raw := c.Param("id")
	id, err := models.ParseEventID(raw)
	if err != nil {
		return "", &invalidParamError{name: "event id", value: raw}
	}
	return id, nil
}

// limitQuery reads ?limit=. Zero means the repository default.
func limitQuery(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, &invalidParamError{name: "limit", value: raw}
	}
	return limit, nil
}
