package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
)

// roomReq is the body of room create and update.  CinemaID is only read
// on create; Status only on update.
type roomReq struct {
	CinemaID              *uint64 `json:"cinema_id"`
	Number                *int    `json:"number"`
	Status                *string `json:"status"`
	Projector             *string `json:"projector"`
	SoundSystem           *string `json:"sound_system"`
	ProjectorLampModel    *string `json:"projector_lamp_model"`
	ProjectorLampHours    *int64  `json:"projector_lamp_hours"`
	ProjectorLampMaxHours *int64  `json:"projector_lamp_max_hours"`
	ProjectorType         *string `json:"projector_type"`
	LastMaintenanceA      *int64  `json:"last_maintenance_a"`
	LastMaintenanceB      *int64  `json:"last_maintenance_b"`
	LastMaintenanceC      *int64  `json:"last_maintenance_c"`
	AdditionalInfo        *string `json:"additional_info"`
	Amplifiers            *string `json:"amplifiers"`
	ProjectorIP           *string `json:"projector_ip"`
	Server                *string `json:"server"`
	ServerIP              *string `json:"server_ip"`
}

func required(field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", model.Invalid(field, "required")
	}
	return strings.TrimSpace(*v), nil
}

func checkLamp(hours, maxHours *int64) error {
	if hours != nil && *hours < 0 {
		return model.Invalid("projector_lamp_hours", "must not be negative")
	}
	if maxHours != nil && *maxHours < 0 {
		return model.Invalid("projector_lamp_max_hours", "must not be negative")
	}
	return nil
}

// ListRooms handles GET /v1/rooms and GET /v1/cinemas/:id/rooms.
func (h *Handler) ListRooms(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		list []model.Room
		err  error
	)
	if c.Param("id") != "" {
		id, perr := paramID(c, "id")
		if perr != nil {
			return h.fail(c, perr)
		}
		list, err = h.Store.Rooms.ListByCinema(ctx, id)
	} else {
		list, err = h.Store.Rooms.ListAll(ctx)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// GetRoom handles GET /v1/rooms/:id.
func (h *Handler) GetRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	room, err := h.Store.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// CreateRoom handles POST /v1/rooms.  New rooms are active; the cinema's
// cached stats are recomputed afterwards.
func (h *Handler) CreateRoom(c echo.Context) error {
	var body roomReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.CinemaID == nil {
		return h.fail(c, model.Invalid("cinema_id", "required"))
	}
	if body.Number == nil || *body.Number <= 0 {
		return h.fail(c, model.Invalid("number", "must be a positive integer"))
	}
	projector, err := required("projector", body.Projector)
	if err != nil {
		return h.fail(c, err)
	}
	sound, err := required("sound_system", body.SoundSystem)
	if err != nil {
		return h.fail(c, err)
	}
	kind, err := parseOpt(body.ProjectorType, model.ParseProjectorType)
	if err != nil {
		return h.fail(c, err)
	}
	if err := checkLamp(body.ProjectorLampHours, body.ProjectorLampMaxHours); err != nil {
		return h.fail(c, err)
	}

	room := &model.Room{
		CinemaID:              *body.CinemaID,
		Number:                *body.Number,
		Status:                model.RoomActive,
		Projector:             projector,
		SoundSystem:           sound,
		ProjectorLampModel:    body.ProjectorLampModel,
		ProjectorLampHours:    body.ProjectorLampHours,
		ProjectorLampMaxHours: body.ProjectorLampMaxHours,
		ProjectorType:         kind,
		LastMaintenanceA:      body.LastMaintenanceA,
		LastMaintenanceB:      body.LastMaintenanceB,
		LastMaintenanceC:      body.LastMaintenanceC,
		AdditionalInfo:        body.AdditionalInfo,
		Amplifiers:            body.Amplifiers,
		ProjectorIP:           body.ProjectorIP,
		Server:                body.Server,
		ServerIP:              body.ServerIP,
	}
	ctx := c.Request().Context()
	if err := h.Store.Rooms.Create(ctx, room); err != nil {
		return h.fail(c, err)
	}
	h.recompute(ctx, room.CinemaID)
	h.publish(queue.NewEvent(queue.EntityRoom, queue.ActionCreated, room.ID).In(room.CinemaID, &room.ID))
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PATCH /v1/rooms/:id.
func (h *Handler) UpdateRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var body roomReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Number != nil && *body.Number <= 0 {
		return h.fail(c, model.Invalid("number", "must be a positive integer"))
	}
	status, err := parseOpt(body.Status, model.ParseRoomStatus)
	if err != nil {
		return h.fail(c, err)
	}
	kind, err := parseOpt(body.ProjectorType, model.ParseProjectorType)
	if err != nil {
		return h.fail(c, err)
	}
	if err := checkLamp(body.ProjectorLampHours, body.ProjectorLampMaxHours); err != nil {
		return h.fail(c, err)
	}

	p := model.RoomPatch{
		Number:                body.Number,
		Status:                status,
		Projector:             body.Projector,
		SoundSystem:           body.SoundSystem,
		ProjectorLampModel:    body.ProjectorLampModel,
		ProjectorLampHours:    body.ProjectorLampHours,
		ProjectorLampMaxHours: body.ProjectorLampMaxHours,
		ProjectorType:         kind,
		LastMaintenanceA:      body.LastMaintenanceA,
		LastMaintenanceB:      body.LastMaintenanceB,
		LastMaintenanceC:      body.LastMaintenanceC,
		AdditionalInfo:        body.AdditionalInfo,
		Amplifiers:            body.Amplifiers,
		ProjectorIP:           body.ProjectorIP,
		Server:                body.Server,
		ServerIP:              body.ServerIP,
	}
	ctx := c.Request().Context()
	if err := h.Store.Rooms.Update(ctx, id, p); err != nil {
		return h.fail(c, err)
	}
	room, err := h.Store.Rooms.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	h.recompute(ctx, room.CinemaID)
	h.publish(queue.NewEvent(queue.EntityRoom, queue.ActionUpdated, id).In(room.CinemaID, &room.ID))
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /v1/rooms/:id.  The room's equipment,
// maintenance history, impacts, tasks and events go with it.
func (h *Handler) DeleteRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	room, err := h.Store.Rooms.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.Maintainer.DeleteRoom(ctx, id); err != nil {
		return h.fail(c, err)
	}
	h.recompute(ctx, room.CinemaID)
	h.publish(queue.NewEvent(queue.EntityRoom, queue.ActionDeleted, id).In(room.CinemaID, &id))
	return c.NoContent(http.StatusNoContent)
}

// RoomAlerts handles GET /v1/rooms/alerts?cinema_id=.
func (h *Handler) RoomAlerts(c echo.Context) error {
	cinemaID, err := queryID(c, "cinema_id")
	if err != nil {
		return h.fail(c, err)
	}
	list, err := h.Reports.RoomAlerts(c.Request().Context(), cinemaID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}
