package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/handler"
)

// RegisterRead registers the read-only facility endpoints.  They need no
// token.  Static segments such as /rooms/alerts are matched before the
// :id parameter by echo's router.
func RegisterRead(v1 *echo.Group, h *handler.Handler) {
	// ---- Cinemas ----
	v1.GET("/cinemas", h.ListCinemas)
	v1.GET("/cinemas/:id", h.GetCinema)
	v1.GET("/cinemas/:id/rooms", h.ListRooms)
	v1.GET("/cinemas/:id/equipment", h.ListCinemaEquipment)
	v1.GET("/cinemas/:id/tasks", h.ListTasks)
	v1.GET("/cinemas/:id/events", h.ListEvents)

	// ---- Rooms ----
	v1.GET("/rooms", h.ListRooms)
	v1.GET("/rooms/alerts", h.RoomAlerts)
	v1.GET("/rooms/:id", h.GetRoom)
	v1.GET("/rooms/:id/equipment", h.ListRoomEquipment)
	v1.GET("/rooms/:id/tasks", h.ListTasks)
	v1.GET("/rooms/:id/events", h.ListEvents)

	// ---- Equipment ----
	v1.GET("/equipment/alerts", h.EquipmentAlerts)

	// ---- Maintenance and impacts ----
	v1.GET("/maintenance", h.ListMaintenance)
	v1.GET("/impacts", h.ListImpacts)

	// ---- Tasks, events, settings ----
	v1.GET("/tasks", h.ListTasks)
	v1.GET("/events", h.ListEvents)
	v1.GET("/events/range", h.ListEventsInRange)
	v1.GET("/settings", h.ListSettings)
}
