package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"econ-pulse/seed"
)

// Seeder is implemented by *seed.Seeder.
type Seeder interface {
	Run(ctx context.Context) (*seed.Result, error)
}

type SeedHandler struct {
	seeder Seeder
	log    logrus.FieldLogger
}

func NewSeedHandler(seeder Seeder, log logrus.FieldLogger) *SeedHandler {
	return &SeedHandler{seeder: seeder, log: log}
}

func (h *SeedHandler) Seed(c *gin.Context) {
	res, err := h.seeder.Run(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
