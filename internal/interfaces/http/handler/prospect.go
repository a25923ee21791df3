package handler

import (
	"github.com/gin-gonic/gin"

	prospectapp "github.com/gymhub/backend/internal/application/prospect"
	"github.com/gymhub/backend/internal/interfaces/http/dto"
)

// ProspectHandler handles sales pipeline endpoints
type ProspectHandler struct {
	BaseHandler
	prospectService *prospectapp.Service
}

// NewProspectHandler creates a new ProspectHandler
func NewProspectHandler(prospectService *prospectapp.Service) *ProspectHandler {
	return &ProspectHandler{prospectService: prospectService}
}

// Create handles POST /api/v1/prospects
func (h *ProspectHandler) Create(c *gin.Context) {
	var req prospectapp.CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.prospectService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID handles GET /api/v1/prospects/:id
func (h *ProspectHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.prospectService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/prospects?status=
func (h *ProspectHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Parámetros de paginación inválidos")
		return
	}

	prospects, total, err := h.prospectService.List(c.Request.Context(), c.Query("status"), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"prospects": prospects, "total": total})
}

// Advance handles POST /api/v1/prospects/:id/advance
func (h *ProspectHandler) Advance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req prospectapp.AdvanceProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.prospectService.Advance(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddNote handles POST /api/v1/prospects/:id/notes
func (h *ProspectHandler) AddNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req prospectapp.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Se requiere note")
		return
	}

	resp, err := h.prospectService.AddNote(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/prospects/:id
func (h *ProspectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	if err := h.prospectService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Pipeline handles GET /api/v1/prospects/pipeline
func (h *ProspectHandler) Pipeline(c *gin.Context) {
	resp, err := h.prospectService.PipelineCounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
