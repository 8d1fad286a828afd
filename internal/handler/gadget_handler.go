package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gr3edydevel0per/N-Layer-API/internal/database/models"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/repository"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/service"
)

// GadgetHandler handles HTTP requests for the gadget inventory
type GadgetHandler struct {
	service service.GadgetService
	logger  *slog.Logger
}

// NewGadgetHandler creates a new gadget handler
func NewGadgetHandler(service service.GadgetService, logger *slog.Logger) *GadgetHandler {
	return &GadgetHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs
type FetchGadgetsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=Available Deployed Destroyed Decommissioned"`
}

type DeleteGadgetRequest struct {
	Name string `json:"name" binding:"required"`
}

type PatchGadgetRequest struct {
	ID     string  `json:"id" binding:"required"`
	Name   *string `json:"name" binding:"omitempty,min=1,max=50"`
	Status *string `json:"status" binding:"omitempty,oneof=Available Deployed Destroyed Decommissioned"`
}

// Register handles POST /api/gadgets. The name is generated server-side.
func (h *GadgetHandler) Register(c *gin.Context) {
	gadget, err := h.service.Register()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Gadget registered successfully",
		"data":    models.RenderGadget(gadget),
	})
}

// Fetch handles GET /api/gadgets with an optional status filter
func (h *GadgetHandler) Fetch(c *gin.Context) {
	var req FetchGadgetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid gadget query", "error", err)
		respondValidationError(c, err)
		return
	}

	var gadgets []models.Gadget
	var err error
	if req.Status != "" {
		gadgets, err = h.service.FetchAllWithStatus(models.GadgetStatus(req.Status))
	} else {
		gadgets, err = h.service.FetchAll()
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	views := make([]models.GadgetView, 0, len(gadgets))
	for i := range gadgets {
		views = append(views, models.RenderGadget(&gadgets[i]))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": views})
}

// Delete handles DELETE /api/gadgets: a soft transition to Decommissioned
func (h *GadgetHandler) Delete(c *gin.Context) {
	var req DeleteGadgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid delete request", "error", err)
		respondValidationError(c, err)
		return
	}

	decommissioned, err := h.service.Decommission(req.Name)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	message := fmt.Sprintf("No gadget found with the name '%s'", req.Name)
	if decommissioned {
		message = fmt.Sprintf("Gadget '%s' decommissioned successfully", req.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        message,
		"decommissioned": decommissioned,
	})
}

// Patch handles PATCH /api/gadgets
func (h *GadgetHandler) Patch(c *gin.Context) {
	var req PatchGadgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid patch request", "error", err)
		respondValidationError(c, err)
		return
	}

	if req.Name == nil && req.Status == nil {
		respondError(c, http.StatusBadRequest, `No data provided for update. At least one of "name" or "status" must be specified`)
		return
	}

	var status *models.GadgetStatus
	if req.Status != nil {
		s := models.GadgetStatus(*req.Status)
		status = &s
	}

	gadget, err := h.service.Patch(req.ID, req.Name, status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Gadget '%s' updated successfully", req.ID),
		"data":    models.RenderGadget(gadget),
	})
}

// SelfDestruct handles POST /api/gadgets/:id/self-destruct
func (h *GadgetHandler) SelfDestruct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "Gadget id is required")
		return
	}

	_, confirmationCode, err := h.service.SelfDestruct(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          fmt.Sprintf("Self-destruct sequence initiated for gadget '%s'", id),
		"confirmationCode": confirmationCode,
	})
}

// handleServiceError maps service errors to HTTP responses
func (h *GadgetHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGadgetNameTaken):
		respondError(c, http.StatusConflict, "Gadget already exists with this name")
	case errors.Is(err, service.ErrGadgetAlreadyDestroyed):
		respondError(c, http.StatusConflict, "Gadget is already destroyed")
	case errors.Is(err, service.ErrNoFieldsToPatch):
		respondError(c, http.StatusBadRequest, "No fields provided for update")
	case errors.Is(err, repository.ErrGadgetNotFound):
		respondError(c, http.StatusNotFound, "Gadget not found")
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
