package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	convenioapp "github.com/gymhub/backend/internal/application/convenio"
	"github.com/gymhub/backend/internal/interfaces/http/dto"
)

// ConvenioHandler handles partner agreement endpoints
type ConvenioHandler struct {
	BaseHandler
	convenioService *convenioapp.ConvenioService
}

// NewConvenioHandler creates a new ConvenioHandler
func NewConvenioHandler(convenioService *convenioapp.ConvenioService) *ConvenioHandler {
	return &ConvenioHandler{convenioService: convenioService}
}

// Create handles POST /api/v1/convenios
func (h *ConvenioHandler) Create(c *gin.Context) {
	var req convenioapp.CreateConvenioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.convenioService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID handles GET /api/v1/convenios/:id
func (h *ConvenioHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.convenioService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/convenios
func (h *ConvenioHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Parámetros de paginación inválidos")
		return
	}

	convenios, total, err := h.convenioService.List(c.Request.Context(), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"convenios": convenios, "total": total})
}

// Update handles PATCH /api/v1/convenios/:id
func (h *ConvenioHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req convenioapp.UpdateConvenioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.convenioService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/convenios/:id
func (h *ConvenioHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	if err := h.convenioService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Suspend handles POST /api/v1/convenios/:id/suspender
func (h *ConvenioHandler) Suspend(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.convenioService.Suspend(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate handles POST /api/v1/convenios/:id/activar
func (h *ConvenioHandler) Activate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.convenioService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Facturacion handles GET /api/v1/convenios/:id/facturacion
// Query: period=YYYY-MM, members=<count>
func (h *ConvenioHandler) Facturacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	period := c.Query("period")
	members, err := strconv.Atoi(c.DefaultQuery("members", "0"))
	if err != nil {
		h.BadRequest(c, "La cantidad de socios es inválida")
		return
	}

	resp, err := h.convenioService.ComputeInvoice(c.Request.Context(), id, period, members)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
