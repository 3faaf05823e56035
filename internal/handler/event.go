package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
)

type eventReq struct {
	CinemaID    *uint64 `json:"cinema_id"`
	RoomID      *uint64 `json:"room_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartTime   *int64  `json:"start_time"`
	EndTime     *int64  `json:"end_time"`
	Type        *string `json:"type"`
	Status      *string `json:"status"`
}

// ListEvents handles GET /v1/events, /v1/cinemas/:id/events and
// /v1/rooms/:id/events, ordered by start time.
func (h *Handler) ListEvents(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		list []model.Event
		err  error
	)
	switch c.Path() {
	case "/v1/cinemas/:id/events":
		id, perr := paramID(c, "id")
		if perr != nil {
			return h.fail(c, perr)
		}
		list, err = h.Store.Events.ListByCinema(ctx, id)
	case "/v1/rooms/:id/events":
		id, perr := paramID(c, "id")
		if perr != nil {
			return h.fail(c, perr)
		}
		list, err = h.Store.Events.ListByRoom(ctx, id)
	default:
		list, err = h.Store.Events.ListAll(ctx)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// ListEventsInRange handles GET /v1/events/range?start&end&cinema_id.
// Events whose start time falls inside the inclusive range are returned
// in ascending start order.
func (h *Handler) ListEventsInRange(c echo.Context) error {
	start, err := queryMillis(c, "start")
	if err != nil {
		return h.fail(c, err)
	}
	end, err := queryMillis(c, "end")
	if err != nil {
		return h.fail(c, err)
	}
	if start == nil || end == nil {
		return h.fail(c, model.Invalid("start", "start and end are required"))
	}
	cinemaID, err := queryID(c, "cinema_id")
	if err != nil {
		return h.fail(c, err)
	}
	list, err := h.Store.Events.ListByDateRange(c.Request().Context(), *start, *end, cinemaID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// CreateEvent handles POST /v1/events.  Events start scheduled.
func (h *Handler) CreateEvent(c echo.Context) error {
	var body eventReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title, err := required("title", body.Title)
	if err != nil {
		return h.fail(c, err)
	}
	if body.StartTime == nil || body.EndTime == nil {
		return h.fail(c, model.Invalid("start_time", "start_time and end_time are required"))
	}
	if *body.EndTime < *body.StartTime {
		return h.fail(c, model.Invalid("end_time", "must not be before start_time"))
	}
	if body.Type == nil {
		return h.fail(c, model.Invalid("type", "required"))
	}
	typ, err := model.ParseEventType(*body.Type)
	if err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	cinemaID, err := h.placeOptionalRoom(ctx, body.CinemaID, body.RoomID)
	if err != nil {
		return h.fail(c, err)
	}

	e := &model.Event{
		CinemaID:    cinemaID,
		RoomID:      body.RoomID,
		Title:       title,
		Description: body.Description,
		StartTime:   *body.StartTime,
		EndTime:     *body.EndTime,
		Type:        typ,
		Status:      model.EventScheduled,
	}
	if err := h.Store.Events.Create(ctx, e); err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityEvent, queue.ActionCreated, e.ID).In(e.CinemaID, e.RoomID))
	return c.JSON(http.StatusCreated, e)
}

// UpdateEvent handles PATCH /v1/events/:id.
func (h *Handler) UpdateEvent(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var body eventReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title != nil {
		if _, err := required("title", body.Title); err != nil {
			return h.fail(c, err)
		}
	}
	typ, err := parseOpt(body.Type, model.ParseEventType)
	if err != nil {
		return h.fail(c, err)
	}
	status, err := parseOpt(body.Status, model.ParseEventStatus)
	if err != nil {
		return h.fail(c, err)
	}
	p := model.EventPatch{
		Title:       body.Title,
		Description: body.Description,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		Type:        typ,
		Status:      status,
	}
	return h.writeEvent(c, id, func() error { return h.Store.Events.Update(c.Request().Context(), id, p) })
}

// UpdateEventStatus handles PATCH /v1/events/:id/status.
func (h *Handler) UpdateEventStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var body statusReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Status == nil {
		return h.fail(c, model.Invalid("status", "required"))
	}
	status, err := model.ParseEventStatus(*body.Status)
	if err != nil {
		return h.fail(c, err)
	}
	return h.writeEvent(c, id, func() error { return h.Store.Events.UpdateStatus(c.Request().Context(), id, status) })
}

func (h *Handler) writeEvent(c echo.Context, id uint64, write func() error) error {
	if err := write(); err != nil {
		return h.fail(c, err)
	}
	e, err := h.Store.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityEvent, queue.ActionUpdated, id).In(e.CinemaID, e.RoomID))
	return c.JSON(http.StatusOK, e)
}

// DeleteEvent handles DELETE /v1/events/:id.
func (h *Handler) DeleteEvent(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	e, err := h.Store.Events.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.Store.Events.Delete(ctx, id); err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityEvent, queue.ActionDeleted, id).In(e.CinemaID, e.RoomID))
	return c.NoContent(http.StatusNoContent)
}
