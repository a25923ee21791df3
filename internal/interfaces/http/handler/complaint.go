package handler

import (
	"github.com/gin-gonic/gin"

	complaintapp "github.com/gymhub/backend/internal/application/complaint"
	"github.com/gymhub/backend/internal/interfaces/http/dto"
)

// ComplaintHandler handles complaint tracking endpoints
type ComplaintHandler struct {
	BaseHandler
	complaintService *complaintapp.Service
}

// NewComplaintHandler creates a new ComplaintHandler
func NewComplaintHandler(complaintService *complaintapp.Service) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// Create handles POST /api/v1/complaints
func (h *ComplaintHandler) Create(c *gin.Context) {
	var req complaintapp.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.complaintService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID handles GET /api/v1/complaints/:id
func (h *ComplaintHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.complaintService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/complaints?status=
func (h *ComplaintHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Parámetros de paginación inválidos")
		return
	}

	complaints, total, err := h.complaintService.List(c.Request.Context(), c.Query("status"), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"complaints": complaints, "total": total})
}

// Assign handles POST /api/v1/complaints/:id/assign
func (h *ComplaintHandler) Assign(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req complaintapp.AssignComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Se requiere assigned_to")
		return
	}

	resp, err := h.complaintService.Assign(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Resolve handles POST /api/v1/complaints/:id/resolve
func (h *ComplaintHandler) Resolve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req complaintapp.ResolveComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Se requiere resolution")
		return
	}

	resp, err := h.complaintService.Resolve(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reopen handles POST /api/v1/complaints/:id/reopen
func (h *ComplaintHandler) Reopen(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.complaintService.Reopen(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
