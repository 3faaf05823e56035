package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
)

type equipmentReq struct {
	RoomID          *uint64  `json:"room_id"`
	CinemaID        *uint64  `json:"cinema_id"`
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	IPAddress       *string  `json:"ip_address"`
	Status          *string  `json:"status"`
	Category        *string  `json:"category"`
	InstallDate     *int64   `json:"install_date"`
	LastMaintenance *int64   `json:"last_maintenance"`
	NextMaintenance *int64   `json:"next_maintenance"`
	WarrantyExpiry  *int64   `json:"warranty_expiry"`
	Cost            *float64 `json:"cost"`
}

// ListRoomEquipment handles GET /v1/rooms/:id/equipment.
func (h *Handler) ListRoomEquipment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	list, err := h.Store.Equipment.ListByRoom(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// ListCinemaEquipment handles GET /v1/cinemas/:id/equipment.
func (h *Handler) ListCinemaEquipment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	list, err := h.Store.Equipment.ListByCinema(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// CreateEquipment handles POST /v1/equipment.  New equipment is
// operational.
func (h *Handler) CreateEquipment(c echo.Context) error {
	var body equipmentReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == nil {
		return h.fail(c, model.Invalid("room_id", "required"))
	}
	name, err := required("name", body.Name)
	if err != nil {
		return h.fail(c, err)
	}
	if body.Category == nil {
		return h.fail(c, model.Invalid("category", "required"))
	}
	category, err := model.ParseEquipmentCategory(*body.Category)
	if err != nil {
		return h.fail(c, err)
	}
	if body.Cost != nil && *body.Cost < 0 {
		return h.fail(c, model.Invalid("cost", "must not be negative"))
	}
	ctx := c.Request().Context()
	cinemaID, err := h.placeRoom(ctx, body.CinemaID, *body.RoomID)
	if err != nil {
		return h.fail(c, err)
	}

	e := &model.Equipment{
		RoomID:          *body.RoomID,
		CinemaID:        cinemaID,
		Name:            name,
		IPAddress:       body.IPAddress,
		Status:          model.EquipmentOperational,
		Category:        category,
		InstallDate:     body.InstallDate,
		LastMaintenance: body.LastMaintenance,
		NextMaintenance: body.NextMaintenance,
		WarrantyExpiry:  body.WarrantyExpiry,
		Cost:            body.Cost,
	}
	if body.Description != nil {
		e.Description = *body.Description
	}
	if err := h.Store.Equipment.Create(ctx, e); err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityEquipment, queue.ActionCreated, e.ID).In(e.CinemaID, &e.RoomID))
	return c.JSON(http.StatusCreated, e)
}

// UpdateEquipment handles PATCH /v1/equipment/:id.
func (h *Handler) UpdateEquipment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var body equipmentReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status, err := parseOpt(body.Status, model.ParseEquipmentStatus)
	if err != nil {
		return h.fail(c, err)
	}
	category, err := parseOpt(body.Category, model.ParseEquipmentCategory)
	if err != nil {
		return h.fail(c, err)
	}
	if body.Cost != nil && *body.Cost < 0 {
		return h.fail(c, model.Invalid("cost", "must not be negative"))
	}

	ctx := c.Request().Context()
	p := model.EquipmentPatch{
		Name:            body.Name,
		Description:     body.Description,
		IPAddress:       body.IPAddress,
		Status:          status,
		Category:        category,
		LastMaintenance: body.LastMaintenance,
		NextMaintenance: body.NextMaintenance,
		WarrantyExpiry:  body.WarrantyExpiry,
		Cost:            body.Cost,
	}
	if err := h.Store.Equipment.Update(ctx, id, p); err != nil {
		return h.fail(c, err)
	}
	e, err := h.Store.Equipment.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityEquipment, queue.ActionUpdated, id).In(e.CinemaID, &e.RoomID))
	return c.JSON(http.StatusOK, e)
}

// DeleteEquipment handles DELETE /v1/equipment/:id.  Maintenance records
// and tasks pointing at it keep their history with the link cleared.
func (h *Handler) DeleteEquipment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	e, err := h.Store.Equipment.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.Store.Equipment.Delete(ctx, id); err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityEquipment, queue.ActionDeleted, id).In(e.CinemaID, &e.RoomID))
	return c.NoContent(http.StatusNoContent)
}

// EquipmentAlerts handles GET /v1/equipment/alerts?cinema_id=.
func (h *Handler) EquipmentAlerts(c echo.Context) error {
	cinemaID, err := queryID(c, "cinema_id")
	if err != nil {
		return h.fail(c, err)
	}
	list, err := h.Reports.EquipmentAlerts(c.Request().Context(), cinemaID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}
