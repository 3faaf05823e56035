package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
)

type impactReq struct {
	RoomID       *uint64 `json:"room_id"`
	CinemaID     *uint64 `json:"cinema_id"`
	Date         *int64  `json:"date"`
	SessionTime  *string `json:"session_time"`
	ImpactType   *string `json:"impact_type"`
	Cause        *string `json:"cause"`
	DelayMinutes *int64  `json:"delay_minutes"`
	Description  *string `json:"description"`
}

// ListImpacts handles GET /v1/impacts?cinema_id&room_id&start&end.
func (h *Handler) ListImpacts(c echo.Context) error {
	var (
		f   model.ImpactFilter
		err error
	)
	if f.CinemaID, err = queryID(c, "cinema_id"); err != nil {
		return h.fail(c, err)
	}
	if f.RoomID, err = queryID(c, "room_id"); err != nil {
		return h.fail(c, err)
	}
	if f.Start, err = queryMillis(c, "start"); err != nil {
		return h.fail(c, err)
	}
	if f.End, err = queryMillis(c, "end"); err != nil {
		return h.fail(c, err)
	}
	list, err := h.Store.Impacts.List(c.Request().Context(), f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// CreateImpact handles POST /v1/impacts.  Impacts start unresolved.
func (h *Handler) CreateImpact(c echo.Context) error {
	var body impactReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == nil {
		return h.fail(c, model.Invalid("room_id", "required"))
	}
	if body.Date == nil {
		return h.fail(c, model.Invalid("date", "required"))
	}
	sessionTime, err := required("session_time", body.SessionTime)
	if err != nil {
		return h.fail(c, err)
	}
	if body.ImpactType == nil {
		return h.fail(c, model.Invalid("impact_type", "required"))
	}
	typ, err := model.ParseImpactType(*body.ImpactType)
	if err != nil {
		return h.fail(c, err)
	}
	if body.Cause == nil {
		return h.fail(c, model.Invalid("cause", "required"))
	}
	cause, err := model.ParseImpactCause(*body.Cause)
	if err != nil {
		return h.fail(c, err)
	}
	if body.DelayMinutes != nil && *body.DelayMinutes < 0 {
		return h.fail(c, model.Invalid("delay_minutes", "must not be negative"))
	}
	desc, err := required("description", body.Description)
	if err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	cinemaID, err := h.placeRoom(ctx, body.CinemaID, *body.RoomID)
	if err != nil {
		return h.fail(c, err)
	}

	i := &model.SessionImpact{
		RoomID:       *body.RoomID,
		CinemaID:     cinemaID,
		Date:         *body.Date,
		SessionTime:  sessionTime,
		ImpactType:   typ,
		Cause:        cause,
		DelayMinutes: body.DelayMinutes,
		Description:  desc,
	}
	if err := h.Store.Impacts.Create(ctx, i); err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityImpact, queue.ActionCreated, i.ID).In(i.CinemaID, &i.RoomID))
	return c.JSON(http.StatusCreated, i)
}

// ResolveImpact handles POST /v1/impacts/:id/resolve.  The resolution
// time is the server clock.
func (h *Handler) ResolveImpact(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	if err := h.Store.Impacts.Resolve(ctx, id, time.Now().UnixMilli()); err != nil {
		return h.fail(c, err)
	}
	i, err := h.Store.Impacts.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityImpact, queue.ActionResolved, id).In(i.CinemaID, &i.RoomID))
	return c.JSON(http.StatusOK, i)
}

// ImpactStats handles GET /v1/impacts/stats?cinema_id&start&end.
func (h *Handler) ImpactStats(c echo.Context) error {
	cinemaID, err := queryID(c, "cinema_id")
	if err != nil {
		return h.fail(c, err)
	}
	w, err := queryWindow(c)
	if err != nil {
		return h.fail(c, err)
	}
	stats, err := h.Reports.ImpactStats(c.Request().Context(), cinemaID, w)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
