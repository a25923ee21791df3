package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	convenioapp "github.com/gymhub/backend/internal/application/convenio"
)

// ActionHandler handles the monthly action endpoints backing the partner
// dashboard badges.
type ActionHandler struct {
	BaseHandler
	actionService *convenioapp.ActionService
}

// NewActionHandler creates a new ActionHandler
func NewActionHandler(actionService *convenioapp.ActionService) *ActionHandler {
	return &ActionHandler{actionService: actionService}
}

// List handles GET /api/v1/convenios-mes-acciones
// Query: convenio_id (required), monthStart (optional).
func (h *ActionHandler) List(c *gin.Context) {
	convenioID, err := strconv.ParseInt(c.Query("convenio_id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Se requiere convenio_id")
		return
	}

	actions, err := h.actionService.List(c.Request.Context(), convenioID, c.Query("monthStart"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"acciones": actions})
}

// Upsert handles POST /api/v1/convenios-mes-acciones
// One row per (convenio, month, tipo); repeats update in place.
func (h *ActionHandler) Upsert(c *gin.Context) {
	var req convenioapp.UpsertActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.actionService.Upsert(c.Request.Context(), req, getAuth(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkRead handles POST /api/v1/convenios-mes-acciones/marcar-leido
func (h *ActionHandler) MarkRead(c *gin.Context) {
	var req convenioapp.MarkActionReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Se requiere convenio_id y monthStart")
		return
	}

	if err := h.actionService.MarkRead(c.Request.Context(), req, getAuth(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PendingCount handles GET /api/v1/convenios-mes-acciones/pendientes/count
// Query: convenio_id (required), monthStart (optional).
func (h *ActionHandler) PendingCount(c *gin.Context) {
	convenioID, err := strconv.ParseInt(c.Query("convenio_id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Se requiere convenio_id")
		return
	}

	resp, err := h.actionService.CountPending(c.Request.Context(), convenioID, c.Query("monthStart"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
