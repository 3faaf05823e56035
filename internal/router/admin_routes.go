package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/handler"    // facility handlers
	"github.com/iliyamo/cinema-maintenance/internal/middleware" // JWT + role middlewares
	"github.com/iliyamo/cinema-maintenance/internal/utils"      // role names
)

// RegisterAdmin registers every mutating endpoint under /v1.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(v1 *echo.Group, h *handler.Handler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := v1.Group("",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleAdmin),
	)

	// ---- Cinemas ----
	g.POST("/cinemas", h.CreateCinema)
	g.PATCH("/cinemas/:id", h.UpdateCinema)
	g.DELETE("/cinemas/:id", h.DeleteCinema)
	g.POST("/cinemas/:id/stats", h.RecomputeStats)

	// ---- Rooms ----
	g.POST("/rooms", h.CreateRoom)
	g.PATCH("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)

	// ---- Equipment ----
	g.POST("/equipment", h.CreateEquipment)
	g.PATCH("/equipment/:id", h.UpdateEquipment)
	g.DELETE("/equipment/:id", h.DeleteEquipment)

	// ---- Maintenance records ----
	g.POST("/maintenance", h.CreateMaintenance)
	g.PATCH("/maintenance/:id", h.UpdateMaintenance)

	// ---- Session impacts ----
	g.POST("/impacts", h.CreateImpact)
	g.POST("/impacts/:id/resolve", h.ResolveImpact)

	// ---- Tasks ----
	g.POST("/tasks", h.CreateTask)
	g.PATCH("/tasks/:id", h.UpdateTask)
	g.PATCH("/tasks/:id/status", h.UpdateTaskStatus) // status-only shortcut used by the task board
	g.DELETE("/tasks/:id", h.DeleteTask)

	// ---- Events ----
	g.POST("/events", h.CreateEvent)
	g.PATCH("/events/:id", h.UpdateEvent)
	g.PATCH("/events/:id/status", h.UpdateEventStatus)
	g.DELETE("/events/:id", h.DeleteEvent)

	// ---- Settings ----
	g.PUT("/settings/:key", h.PutSetting)
}
