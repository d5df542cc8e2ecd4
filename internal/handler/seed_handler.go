package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"archives/internal/seed"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	seeder *seed.Seeder
	log    *zap.Logger
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seeder *seed.Seeder, log *zap.Logger) *SeedHandler {
	return &SeedHandler{seeder: seeder, log: log}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Message string      `json:"message"`
	Created seed.Result `json:"created"`
}

// Seed godoc
// @Summary Load demo accounts and files
// @Description Existing accounts and case identifiers are left untouched.
// @Tags seed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SeedResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed [post]
func (h *SeedHandler) Seed(c echo.Context) error {
	res, err := h.seeder.Run(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, SeedResponse{
		Message: "seed completed",
		Created: res,
	})
}
