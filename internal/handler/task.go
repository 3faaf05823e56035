package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
)

type taskReq struct {
	CinemaID    *uint64 `json:"cinema_id"`
	RoomID      *uint64 `json:"room_id"`
	EquipmentID *uint64 `json:"equipment_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	AssignedTo  *string `json:"assigned_to"`
	DueDate     *int64  `json:"due_date"`
	Category    *string `json:"category"`
}

type statusReq struct {
	Status *string `json:"status"`
}

// ListTasks handles GET /v1/tasks, /v1/cinemas/:id/tasks and
// /v1/rooms/:id/tasks.  The scope is taken from the matched route.
func (h *Handler) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		list []model.Task
		err  error
	)
	switch c.Path() {
	case "/v1/cinemas/:id/tasks":
		id, perr := paramID(c, "id")
		if perr != nil {
			return h.fail(c, perr)
		}
		list, err = h.Store.Tasks.ListByCinema(ctx, id)
	case "/v1/rooms/:id/tasks":
		id, perr := paramID(c, "id")
		if perr != nil {
			return h.fail(c, perr)
		}
		list, err = h.Store.Tasks.ListByRoom(ctx, id)
	default:
		list, err = h.Store.Tasks.ListAll(ctx)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// CreateTask handles POST /v1/tasks.  Tasks start as todo.
func (h *Handler) CreateTask(c echo.Context) error {
	var body taskReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title, err := required("title", body.Title)
	if err != nil {
		return h.fail(c, err)
	}
	if body.Priority == nil {
		return h.fail(c, model.Invalid("priority", "required"))
	}
	priority, err := model.ParseTaskPriority(*body.Priority)
	if err != nil {
		return h.fail(c, err)
	}
	category, err := parseOpt(body.Category, model.ParseTaskCategory)
	if err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	cinemaID, err := h.placeOptionalRoom(ctx, body.CinemaID, body.RoomID)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.checkEquipment(ctx, body.EquipmentID, cinemaID, body.RoomID); err != nil {
		return h.fail(c, err)
	}

	t := &model.Task{
		CinemaID:    cinemaID,
		RoomID:      body.RoomID,
		EquipmentID: body.EquipmentID,
		Title:       title,
		Priority:    priority,
		Status:      model.TaskTodo,
		AssignedTo:  body.AssignedTo,
		DueDate:     body.DueDate,
		Category:    category,
	}
	if body.Description != nil {
		t.Description = *body.Description
	}
	if err := h.Store.Tasks.Create(ctx, t); err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityTask, queue.ActionCreated, t.ID).In(t.CinemaID, t.RoomID))
	return c.JSON(http.StatusCreated, t)
}

// UpdateTask handles PATCH /v1/tasks/:id.
func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var body taskReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title != nil {
		if _, err := required("title", body.Title); err != nil {
			return h.fail(c, err)
		}
	}
	priority, err := parseOpt(body.Priority, model.ParseTaskPriority)
	if err != nil {
		return h.fail(c, err)
	}
	status, err := parseOpt(body.Status, model.ParseTaskStatus)
	if err != nil {
		return h.fail(c, err)
	}
	category, err := parseOpt(body.Category, model.ParseTaskCategory)
	if err != nil {
		return h.fail(c, err)
	}
	p := model.TaskPatch{
		Title:       body.Title,
		Description: body.Description,
		Priority:    priority,
		Status:      status,
		AssignedTo:  body.AssignedTo,
		DueDate:     body.DueDate,
		Category:    category,
	}
	return h.writeTask(c, id, func() error { return h.Store.Tasks.Update(c.Request().Context(), id, p) })
}

// UpdateTaskStatus handles PATCH /v1/tasks/:id/status.
func (h *Handler) UpdateTaskStatus(c echo.Context) error {
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
	status, err := model.ParseTaskStatus(*body.Status)
	if err != nil {
		return h.fail(c, err)
	}
	return h.writeTask(c, id, func() error { return h.Store.Tasks.UpdateStatus(c.Request().Context(), id, status) })
}

// writeTask runs write, reloads the task and answers with it.
func (h *Handler) writeTask(c echo.Context, id uint64, write func() error) error {
	if err := write(); err != nil {
		return h.fail(c, err)
	}
	t, err := h.Store.Tasks.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityTask, queue.ActionUpdated, id).In(t.CinemaID, t.RoomID))
	return c.JSON(http.StatusOK, t)
}

// DeleteTask handles DELETE /v1/tasks/:id.
func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	t, err := h.Store.Tasks.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.Store.Tasks.Delete(ctx, id); err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityTask, queue.ActionDeleted, id).In(t.CinemaID, t.RoomID))
	return c.NoContent(http.StatusNoContent)
}
