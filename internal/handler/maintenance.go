package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
)

type maintenanceReq struct {
	EquipmentID *uint64  `json:"equipment_id"`
	RoomID      *uint64  `json:"room_id"`
	CinemaID    *uint64  `json:"cinema_id"`
	Type        *string  `json:"type"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Cost        *float64 `json:"cost"`
	Downtime    *int64   `json:"downtime"`
	Technician  *string  `json:"technician"`
	StartTime   *int64   `json:"start_time"`
	EndTime     *int64   `json:"end_time"`
	Status      *string  `json:"status"`
	Notes       *string  `json:"notes"`
}

func checkCostDowntime(cost *float64, downtime *int64) error {
	if cost != nil && *cost < 0 {
		return model.Invalid("cost", "must not be negative")
	}
	if downtime != nil && *downtime < 0 {
		return model.Invalid("downtime", "must not be negative")
	}
	return nil
}

// ListMaintenance handles GET /v1/maintenance.  Filters: cinema_id,
// room_id, start+end, type, category.  Newest first.
func (h *Handler) ListMaintenance(c echo.Context) error {
	var (
		f   model.MaintenanceFilter
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
	if raw := c.QueryParam("type"); raw != "" {
		if f.Type, err = parseOpt(&raw, model.ParseMaintenanceType); err != nil {
			return h.fail(c, err)
		}
	}
	if raw := c.QueryParam("category"); raw != "" {
		if f.Category, err = parseOpt(&raw, model.ParseMaintenanceCategory); err != nil {
			return h.fail(c, err)
		}
	}
	list, err := h.Store.Maintenance.List(c.Request().Context(), f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// CreateMaintenance handles POST /v1/maintenance.  Records start out
// scheduled.
func (h *Handler) CreateMaintenance(c echo.Context) error {
	var body maintenanceReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == nil {
		return h.fail(c, model.Invalid("room_id", "required"))
	}
	if body.Type == nil {
		return h.fail(c, model.Invalid("type", "required"))
	}
	typ, err := model.ParseMaintenanceType(*body.Type)
	if err != nil {
		return h.fail(c, err)
	}
	if body.Category == nil {
		return h.fail(c, model.Invalid("category", "required"))
	}
	category, err := model.ParseMaintenanceCategory(*body.Category)
	if err != nil {
		return h.fail(c, err)
	}
	desc, err := required("description", body.Description)
	if err != nil {
		return h.fail(c, err)
	}
	if body.StartTime == nil {
		return h.fail(c, model.Invalid("start_time", "required"))
	}
	if body.EndTime != nil && *body.EndTime < *body.StartTime {
		return h.fail(c, model.Invalid("end_time", "must not be before start_time"))
	}
	if err := checkCostDowntime(body.Cost, body.Downtime); err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	cinemaID, err := h.placeRoom(ctx, body.CinemaID, *body.RoomID)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.checkEquipment(ctx, body.EquipmentID, cinemaID, body.RoomID); err != nil {
		return h.fail(c, err)
	}

	m := &model.MaintenanceRecord{
		EquipmentID: body.EquipmentID,
		RoomID:      *body.RoomID,
		CinemaID:    cinemaID,
		Type:        typ,
		Category:    category,
		Description: desc,
		Cost:        body.Cost,
		Downtime:    body.Downtime,
		Technician:  body.Technician,
		StartTime:   *body.StartTime,
		EndTime:     body.EndTime,
		Status:      model.MaintenanceScheduled,
		Notes:       body.Notes,
	}
	if err := h.Store.Maintenance.Create(ctx, m); err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityMaintenance, queue.ActionCreated, m.ID).In(m.CinemaID, &m.RoomID))
	return c.JSON(http.StatusCreated, m)
}

// UpdateMaintenance handles PATCH /v1/maintenance/:id.  Only end time,
// status, cost, downtime and notes can change.
func (h *Handler) UpdateMaintenance(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var body maintenanceReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status, err := parseOpt(body.Status, model.ParseMaintenanceStatus)
	if err != nil {
		return h.fail(c, err)
	}
	if err := checkCostDowntime(body.Cost, body.Downtime); err != nil {
		return h.fail(c, err)
	}
	if body.Notes != nil {
		trimmed := strings.TrimSpace(*body.Notes)
		body.Notes = &trimmed
	}
	ctx := c.Request().Context()
	if body.EndTime != nil {
		cur, err := h.Store.Maintenance.GetByID(ctx, id)
		if err != nil {
			return h.fail(c, err)
		}
		if *body.EndTime < cur.StartTime {
			return h.fail(c, model.Invalid("end_time", "must not be before start_time"))
		}
	}
	p := model.MaintenancePatch{EndTime: body.EndTime, Status: status, Cost: body.Cost, Downtime: body.Downtime, Notes: body.Notes}
	if err := h.Store.Maintenance.Update(ctx, id, p); err != nil {
		return h.fail(c, err)
	}
	m, err := h.Store.Maintenance.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityMaintenance, queue.ActionUpdated, id).In(m.CinemaID, &m.RoomID))
	return c.JSON(http.StatusOK, m)
}

// MaintenanceStats handles GET /v1/maintenance/stats?cinema_id&start&end.
func (h *Handler) MaintenanceStats(c echo.Context) error {
	cinemaID, err := queryID(c, "cinema_id")
	if err != nil {
		return h.fail(c, err)
	}
	w, err := queryWindow(c)
	if err != nil {
		return h.fail(c, err)
	}
	stats, err := h.Reports.MaintenanceStats(c.Request().Context(), cinemaID, w)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
