package handler // handler defines the HTTP handlers of the facilities API

import (
	"context"  // context bounds the background event publish
	"errors"   // errors matches the repository sentinels
	"net/http" // http provides status code constants
	"strconv"  // strconv parses path and query identifiers
	"time"     // time bounds the background event publish

	"github.com/labstack/echo/v4" // echo defines request context types
	"go.uber.org/zap"             // zap logs failures that are not surfaced to the client

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
	"github.com/iliyamo/cinema-maintenance/internal/report"
	"github.com/iliyamo/cinema-maintenance/internal/repository"
	"github.com/iliyamo/cinema-maintenance/internal/service"
)

// publishTimeout bounds one background event publish.
const publishTimeout = 5 * time.Second

// Handler bundles the store, the services built on it and the event
// publisher.  Every facility route is a method on Handler.
type Handler struct {
	Store      *repository.Store
	Maintainer *service.Maintainer
	Stats      *service.StatsService
	Reports    *service.ReportService
	Export     *service.ExportService
	Events     service.EventPublisher
	Log        *zap.Logger
}

// New wires the services over store and panics if a dependency is missing.
func New(store *repository.Store, events service.EventPublisher, log *zap.Logger) *Handler {
	if store == nil || events == nil || log == nil {
		panic("nil dependency passed to handler.New")
	}
	return &Handler{
		Store:      store,
		Maintainer: service.NewMaintainer(store, log),
		Stats:      service.NewStatsService(store.Rooms, store.Cinemas),
		Reports:    service.NewReportService(store.Cinemas, store.Rooms, store.Equipment, store.Maintenance, store.Impacts),
		Export:     service.NewExportService(store),
		Events:     events,
		Log:        log,
	}
}

// fail maps err onto a status code and writes the JSON error body.
// Unknown errors are logged and hidden behind a generic message.
func (h *Handler) fail(c echo.Context, err error) error {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	h.Log.Error("request failed", zap.String("route", c.Path()), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// publish sends ev in the background.  A broker failure never fails the
// request that produced the event.
func (h *Handler) publish(ev queue.FacilityEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := h.Events.Publish(ctx, ev); err != nil {
			h.Log.Warn("publish facility event", zap.String("entity", ev.Entity),
				zap.String("action", ev.Action), zap.Uint64("id", ev.EntityID), zap.Error(err))
		}
	}()
}

// recompute refreshes the cached stats of a cinema after a room write.
// The room write already succeeded, so a failure is only logged.
func (h *Handler) recompute(ctx context.Context, cinemaID uint64) {
	if _, err := h.Stats.Recompute(ctx, cinemaID); err != nil {
		h.Log.Error("recompute cinema stats", zap.Uint64("cinema_id", cinemaID), zap.Error(err))
		return
	}
	h.publish(queue.NewEvent(queue.EntityCinema, queue.ActionStats, cinemaID))
}

// paramID parses a positive numeric path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, model.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// queryID parses an optional positive numeric query parameter.
func queryID(c echo.Context, name string) (*uint64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, model.Invalid(name, "must be a positive integer")
	}
	return &id, nil
}

// queryMillis parses an optional millisecond timestamp.
func queryMillis(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, model.Invalid(name, "must be a millisecond timestamp")
	}
	return &v, nil
}

// queryWindow reads start and end.  When both are absent the window is the
// last 30 days; giving only one of them is rejected.  end before start is
// accepted and matches nothing.
func queryWindow(c echo.Context) (report.Window, error) {
	start, err := queryMillis(c, "start")
	if err != nil {
		return report.Window{}, err
	}
	end, err := queryMillis(c, "end")
	if err != nil {
		return report.Window{}, err
	}
	switch {
	case start == nil && end == nil:
		return report.Days(time.Now(), 30), nil
	case start == nil || end == nil:
		return report.Window{}, model.Invalid("start", "start and end must be given together")
	}
	return report.Window{Start: *start, End: *end}, nil
}

// parseOpt runs parse on raw when it is set.
func parseOpt[T any](raw *string, parse func(string) (T, error)) (*T, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := parse(*raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// items wraps a list response.
func items(v any) echo.Map {
	return echo.Map{"items": v}
}

// placeRoom resolves the cinema a room-scoped child belongs to.  When a
// cinema is given it must own the room; otherwise the room's cinema is
// used.
func (h *Handler) placeRoom(ctx context.Context, cinemaID *uint64, roomID uint64) (uint64, error) {
	room, err := h.Store.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if cinemaID != nil && *cinemaID != room.CinemaID {
		return 0, model.Invalid("room_id", "room does not belong to cinema")
	}
	return room.CinemaID, nil
}

// placeOptionalRoom is placeRoom for children whose room is optional.  A
// cinema is then mandatory and must exist.
func (h *Handler) placeOptionalRoom(ctx context.Context, cinemaID, roomID *uint64) (uint64, error) {
	if roomID != nil {
		return h.placeRoom(ctx, cinemaID, *roomID)
	}
	if cinemaID == nil {
		return 0, model.Invalid("cinema_id", "required")
	}
	if _, err := h.Store.Cinemas.GetByID(ctx, *cinemaID); err != nil {
		return 0, err
	}
	return *cinemaID, nil
}

// checkEquipment validates an optional equipment link.  The equipment must
// sit in the given cinema and, when a room is given, in that room.
func (h *Handler) checkEquipment(ctx context.Context, equipmentID *uint64, cinemaID uint64, roomID *uint64) error {
	if equipmentID == nil {
		return nil
	}
	eq, err := h.Store.Equipment.GetByID(ctx, *equipmentID)
	if err != nil {
		return err
	}
	if eq.CinemaID != cinemaID {
		return model.Invalid("equipment_id", "equipment does not belong to cinema")
	}
	if roomID != nil && eq.RoomID != *roomID {
		return model.Invalid("equipment_id", "equipment does not belong to room")
	}
	return nil
}
