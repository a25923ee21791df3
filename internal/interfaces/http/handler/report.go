package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reportapp "github.com/gymhub/backend/internal/application/report"
	"github.com/gymhub/backend/internal/interfaces/http/dto"
)

// ReportHandler handles health evaluation report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create handles POST /api/v1/reports
func (h *ReportHandler) Create(c *gin.Context) {
	var req reportapp.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.reportService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID handles GET /api/v1/reports/:id
func (h *ReportHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.reportService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/reports, optionally filtered by member_document
func (h *ReportHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Parámetros de paginación inválidos")
		return
	}

	var resp *reportapp.ReportListResponse
	var err error
	if document := c.Query("member_document"); document != "" {
		resp, err = h.reportService.ListByMember(c.Request.Context(), document, listReq.ToFilter())
	} else {
		resp, err = h.reportService.List(c.Request.Context(), listReq.ToFilter())
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Render handles POST /api/v1/reports/:id/render
func (h *ReportHandler) Render(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.reportService.Render(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Download handles GET /api/v1/reports/:id/pdf
func (h *ReportHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	doc, err := h.reportService.Download(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
