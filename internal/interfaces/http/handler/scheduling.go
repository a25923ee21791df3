package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	schedulingapp "github.com/gymhub/backend/internal/application/scheduling"
	"github.com/gymhub/backend/internal/interfaces/http/dto"
)

// SchedulingHandler handles class scheduling and booking endpoints
type SchedulingHandler struct {
	BaseHandler
	schedulingService *schedulingapp.Service
}

// NewSchedulingHandler creates a new SchedulingHandler
func NewSchedulingHandler(schedulingService *schedulingapp.Service) *SchedulingHandler {
	return &SchedulingHandler{schedulingService: schedulingService}
}

// CreateSession handles POST /api/v1/classes
func (h *SchedulingHandler) CreateSession(c *gin.Context) {
	var req schedulingapp.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.schedulingService.CreateSession(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetSession handles GET /api/v1/classes/:id
func (h *SchedulingHandler) GetSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.schedulingService.GetSession(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListWeek handles GET /api/v1/classes?from=YYYY-MM-DD
func (h *SchedulingHandler) ListWeek(c *gin.Context) {
	from := time.Now()
	if fromParam := c.Query("from"); fromParam != "" {
		parsed, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			h.BadRequest(c, "Fecha inválida: se espera formato YYYY-MM-DD")
			return
		}
		from = parsed
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Parámetros de paginación inválidos")
		return
	}

	sessions, total, err := h.schedulingService.ListWeek(c.Request.Context(), from, listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"classes": sessions, "total": total})
}

// CancelSession handles POST /api/v1/classes/:id/cancel
func (h *SchedulingHandler) CancelSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req schedulingapp.CancelSessionRequest
	_ = c.ShouldBindJSON(&req)

	resp, err := h.schedulingService.CancelSession(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ResizeSession handles PATCH /api/v1/classes/:id/capacity
func (h *SchedulingHandler) ResizeSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req schedulingapp.ResizeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Se requiere capacity")
		return
	}

	resp, err := h.schedulingService.ResizeSession(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Book handles POST /api/v1/classes/:id/bookings
func (h *SchedulingHandler) Book(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	var req schedulingapp.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Se requiere member_id")
		return
	}

	resp, err := h.schedulingService.Book(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Attendees handles GET /api/v1/classes/:id/bookings
func (h *SchedulingHandler) Attendees(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	bookings, err := h.schedulingService.Attendees(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"bookings": bookings})
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (h *SchedulingHandler) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	resp, err := h.schedulingService.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkAttendance handles POST /api/v1/bookings/:id/attendance?attended=
func (h *SchedulingHandler) MarkAttendance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Identificador inválido")
		return
	}

	attended, err := strconv.ParseBool(c.DefaultQuery("attended", "true"))
	if err != nil {
		h.BadRequest(c, "attended inválido")
		return
	}

	resp, err := h.schedulingService.MarkAttendance(c.Request.Context(), id, attended)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
