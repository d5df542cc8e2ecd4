package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"archives/internal/model"
	"archives/internal/service"
)

// MovementHandler handles movement log endpoints.
type MovementHandler struct {
	movementService service.MovementService
	log             *zap.Logger
}

// NewMovementHandler creates a new movement handler.
func NewMovementHandler(movementService service.MovementService, log *zap.Logger) *MovementHandler {
	return &MovementHandler{movementService: movementService, log: log}
}

// MovementRequest records a movement of a file.
type MovementRequest struct {
	File        string `json:"file" validate:"required,uuid"`
	Action      string `json:"action" validate:"required,oneof=moved retrieved destroyed"`
	Details     string `json:"details"`
	Destination string `json:"destination"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Requester   string `json:"requester"`
	Reason      string `json:"reason"`
}

// RecordMovement godoc
// @Summary Record a file movement
// @Tags movements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MovementRequest true "Movement data"
// @Success 201 {object} model.Movement
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /movements [post]
func (h *MovementHandler) RecordMovement(c echo.Context) error {
	var req MovementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	movement, err := h.movementService.Record(c.Request().Context(), service.RecordMovementInput{
		FileID:      uuid.MustParse(req.File),
		Action:      model.MovementAction(req.Action),
		Details:     req.Details,
		Destination: req.Destination,
		Date:        req.Date,
		Requester:   req.Requester,
		Reason:      req.Reason,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, movement)
}

// ListFileMovements godoc
// @Summary List the movements of a file, oldest first
// @Tags movements
// @Produce json
// @Security BearerAuth
// @Param fileId path string true "File ID"
// @Success 200 {array} model.Movement
// @Failure 400 {object} errors.ErrorResponse
// @Router /movements/file/{fileId} [get]
func (h *MovementHandler) ListFileMovements(c echo.Context) error {
	fileID, err := parseUUIDParam(c, "fileId")
	if err != nil {
		return err
	}

	movements, err := h.movementService.ListByFile(c.Request().Context(), fileID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, movements)
}

// ListMovements godoc
// @Summary List all movements with their files, newest first
// @Tags movements
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Movement
// @Router /movements [get]
func (h *MovementHandler) ListMovements(c echo.Context) error {
	movements, err := h.movementService.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, movements)
}
