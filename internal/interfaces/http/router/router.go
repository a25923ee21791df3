// Package router wires the HTTP handlers into the gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/gymhub/backend/internal/interfaces/http/handler"
)

// Handlers collects every handler the API mounts
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Convenio     *handler.ConvenioHandler
	Chat         *handler.ChatHandler
	Action       *handler.ActionHandler
	Prospect     *handler.ProspectHandler
	Scheduling   *handler.SchedulingHandler
	Complaint    *handler.ComplaintHandler
	Novedad      *handler.NovedadHandler
	Notification *handler.NotificationHandler
	Report       *handler.ReportHandler
}

// AuthMiddleware carries the two authentication modes routes mount with.
// Required rejects anonymous requests. Optional resolves the identity when a
// token is sent and lets the request through without one.
type AuthMiddleware struct {
	Required gin.HandlerFunc
	Optional gin.HandlerFunc
}

// Setup registers all API routes under /api/v1; /health stays outside it.
// Login and ping are public, the convenio-chat routes take optional
// authentication because partners have no staff accounts, and everything
// else requires a valid token.
func Setup(engine *gin.Engine, h Handlers, auth AuthMiddleware) {
	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	// Public
	api.GET("/system/ping", h.System.Ping)
	api.POST("/auth/login", h.Auth.Login)

	// Convenio chat. Staff tokens still resolve to the GIMNASIO identity;
	// partner requests carry their convenio in the body or query instead.
	chat := api.Group("/convenio-chat", auth.Optional)
	chat.GET("/thread", h.Chat.GetThread)
	chat.PATCH("/thread/:id/nombre", h.Chat.SetThreadName)
	chat.GET("/messages", h.Chat.ListMessages)
	chat.POST("/messages", h.Chat.SendMessage)
	chat.PATCH("/messages/:id", h.Chat.EditMessage)
	chat.DELETE("/messages/:id", h.Chat.DeleteMessage)
	chat.POST("/messages/:id/read", h.Chat.MarkMessageRead)
	chat.POST("/acciones/marcar-leido", h.Chat.MarkChatActionRead)

	staff := api.Group("", auth.Required)

	// System
	staff.GET("/system/info", h.System.Info)

	// Authentication and staff accounts
	staff.GET("/auth/me", h.Auth.Me)
	staff.POST("/auth/change-password", h.Auth.ChangePassword)
	staff.POST("/users", h.User.Create)
	staff.GET("/users", h.User.List)
	staff.GET("/users/:id", h.User.GetByID)
	staff.POST("/users/:id/deactivate", h.User.Deactivate)
	staff.POST("/users/:id/activate", h.User.Activate)

	// Convenios (partner agreements)
	staff.POST("/convenios", h.Convenio.Create)
	staff.GET("/convenios", h.Convenio.List)
	staff.GET("/convenios/:id", h.Convenio.GetByID)
	staff.PATCH("/convenios/:id", h.Convenio.Update)
	staff.DELETE("/convenios/:id", h.Convenio.Delete)
	staff.POST("/convenios/:id/suspender", h.Convenio.Suspend)
	staff.POST("/convenios/:id/activar", h.Convenio.Activate)
	staff.GET("/convenios/:id/facturacion", h.Convenio.Facturacion)

	// Monthly actions feeding the dashboard badges
	staff.GET("/convenios-mes-acciones", h.Action.List)
	staff.POST("/convenios-mes-acciones", h.Action.Upsert)
	staff.POST("/convenios-mes-acciones/marcar-leido", h.Action.MarkRead)
	staff.GET("/convenios-mes-acciones/pendientes/count", h.Action.PendingCount)

	// Sales pipeline
	staff.POST("/prospects", h.Prospect.Create)
	staff.GET("/prospects", h.Prospect.List)
	staff.GET("/prospects/pipeline", h.Prospect.Pipeline)
	staff.GET("/prospects/:id", h.Prospect.GetByID)
	staff.POST("/prospects/:id/advance", h.Prospect.Advance)
	staff.POST("/prospects/:id/notes", h.Prospect.AddNote)
	staff.DELETE("/prospects/:id", h.Prospect.Delete)

	// Class scheduling and bookings
	staff.POST("/classes", h.Scheduling.CreateSession)
	staff.GET("/classes", h.Scheduling.ListWeek)
	staff.GET("/classes/:id", h.Scheduling.GetSession)
	staff.POST("/classes/:id/cancel", h.Scheduling.CancelSession)
	staff.PATCH("/classes/:id/capacity", h.Scheduling.ResizeSession)
	staff.POST("/classes/:id/bookings", h.Scheduling.Book)
	staff.GET("/classes/:id/bookings", h.Scheduling.Attendees)
	staff.POST("/bookings/:id/cancel", h.Scheduling.CancelBooking)
	staff.POST("/bookings/:id/attendance", h.Scheduling.MarkAttendance)

	// Complaints
	staff.POST("/complaints", h.Complaint.Create)
	staff.GET("/complaints", h.Complaint.List)
	staff.GET("/complaints/:id", h.Complaint.GetByID)
	staff.POST("/complaints/:id/assign", h.Complaint.Assign)
	staff.POST("/complaints/:id/resolve", h.Complaint.Resolve)
	staff.POST("/complaints/:id/reopen", h.Complaint.Reopen)

	// Announcements and the notification bell
	staff.POST("/novedades", h.Novedad.Create)
	staff.GET("/novedades", h.Novedad.ListVisible)
	staff.GET("/novedades/all", h.Novedad.ListAll)
	staff.POST("/novedades/:id/expire", h.Novedad.Expire)
	staff.POST("/novedades/:id/pin", h.Novedad.Pin)
	staff.DELETE("/novedades/:id", h.Novedad.Delete)
	staff.POST("/notifications", h.Notification.Create)
	staff.GET("/notifications", h.Notification.List)
	staff.GET("/notifications/count", h.Notification.CountUnread)
	staff.POST("/notifications/:id/read", h.Notification.MarkRead)

	// Health reports
	staff.POST("/reports", h.Report.Create)
	staff.GET("/reports", h.Report.List)
	staff.GET("/reports/:id", h.Report.GetByID)
	staff.POST("/reports/:id/render", h.Report.Render)
	staff.GET("/reports/:id/pdf", h.Report.Download)
}
