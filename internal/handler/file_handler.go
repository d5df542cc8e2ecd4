package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"archives/internal/model"
	"archives/internal/service"
)

// FileHandler handles file registry endpoints.
type FileHandler struct {
	fileService service.FileService
	log         *zap.Logger
}

// NewFileHandler creates a new file handler.
func NewFileHandler(fileService service.FileService, log *zap.Logger) *FileHandler {
	return &FileHandler{fileService: fileService, log: log}
}

// FileRequest carries the editable fields of a file.
type FileRequest struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	PartyName       string `json:"partyName" validate:"required"`
	CaseCode        string `json:"caseCode" validate:"required,oneof=CR TR SO CC MCCHCC"`
	CaseNumber      string `json:"caseNumber" validate:"required"`
	CaseYear        string `json:"caseYear" validate:"required,oneof=2019 2020 2021 2022 2023 2024 2025"`
	LastActivity    string `json:"lastActivity" validate:"required,datetime=2006-01-02"`
	Status          string `json:"status" validate:"required,oneof=archived retrieved destroyed"`
	ComingFrom      string `json:"comingFrom" validate:"required"`
	Destination     string `json:"destination" validate:"required"`
	Reason          string `json:"reason" validate:"required"`
	StorageLocation string `json:"storageLocation"`
	CurrentLocation string `json:"currentLocation"`
}

func (r *FileRequest) toModel() *model.File {
	return &model.File{
		Date:            r.Date,
		PartyName:       r.PartyName,
		CaseCode:        r.CaseCode,
		CaseNumber:      r.CaseNumber,
		CaseYear:        r.CaseYear,
		LastActivity:    r.LastActivity,
		Status:          model.FileStatus(r.Status),
		ComingFrom:      r.ComingFrom,
		Destination:     r.Destination,
		Reason:          r.Reason,
		StorageLocation: r.StorageLocation,
		CurrentLocation: r.CurrentLocation,
	}
}

// DestroyRequest optionally overrides the destroyed movement details.
type DestroyRequest struct {
	Details string `json:"details"`
}

// CreateFile godoc
// @Summary Register a file
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FileRequest true "File data"
// @Success 201 {object} model.File
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files [post]
func (h *FileHandler) CreateFile(c echo.Context) error {
	var req FileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	file, err := h.fileService.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, file)
}

// ListFiles godoc
// @Summary List all files
// @Tags files
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.File
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files [get]
func (h *FileHandler) ListFiles(c echo.Context) error {
	files, err := h.fileService.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, files)
}

// SearchFiles godoc
// @Summary Search files by exact criteria
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param mode query string false "case, party or status"
// @Param caseCode query string false "Case code"
// @Param caseNumber query string false "Case number"
// @Param caseYear query string false "Case year"
// @Param partyName query string false "Party name"
// @Param status query string false "archived, retrieved or destroyed"
// @Success 200 {array} model.File
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /files/search [get]
func (h *FileHandler) SearchFiles(c echo.Context) error {
	files, err := h.fileService.Search(c.Request().Context(), service.SearchCriteria{
		Mode:       c.QueryParam("mode"),
		CaseCode:   c.QueryParam("caseCode"),
		CaseNumber: c.QueryParam("caseNumber"),
		CaseYear:   c.QueryParam("caseYear"),
		PartyName:  c.QueryParam("partyName"),
		Status:     c.QueryParam("status"),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, files)
}

// GetFile godoc
// @Summary Get a file
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path string true "File ID"
// @Success 200 {object} model.File
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id} [get]
func (h *FileHandler) GetFile(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	file, err := h.fileService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, file)
}

// UpdateFile godoc
// @Summary Update a file
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "File ID"
// @Param request body FileRequest true "File data"
// @Success 200 {object} model.File
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /files/{id} [put]
func (h *FileHandler) UpdateFile(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req FileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	file, err := h.fileService.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, file)
}

// DeleteFile godoc
// @Summary Permanently delete a file and its movements
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path string true "File ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id} [delete]
func (h *FileHandler) DeleteFile(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.fileService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "file deleted"})
}

// DestroyFile godoc
// @Summary Mark a file destroyed
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "File ID"
// @Param request body DestroyRequest false "Movement details"
// @Success 200 {object} model.File
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id}/destroy [post]
func (h *FileHandler) DestroyFile(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req DestroyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	file, err := h.fileService.Destroy(c.Request().Context(), id, req.Details)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, file)
}
