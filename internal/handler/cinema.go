package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
)

type cinemaReq struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

// ListCinemas handles GET /v1/cinemas.
func (h *Handler) ListCinemas(c echo.Context) error {
	list, err := h.Store.Cinemas.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// GetCinema handles GET /v1/cinemas/:id.
func (h *Handler) GetCinema(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	cinema, err := h.Store.Cinemas.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, cinema)
}

// CreateCinema handles POST /v1/cinemas.  Stats start at zero.
func (h *Handler) CreateCinema(c echo.Context) error {
	var body cinemaReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		return h.fail(c, model.Invalid("name", "required"))
	}
	cinema := &model.Cinema{Name: strings.TrimSpace(*body.Name)}
	if body.Location != nil {
		cinema.Location = strings.TrimSpace(*body.Location)
	}
	if err := h.Store.Cinemas.Create(c.Request().Context(), cinema); err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityCinema, queue.ActionCreated, cinema.ID))
	return c.JSON(http.StatusCreated, cinema)
}

// UpdateCinema handles PATCH /v1/cinemas/:id.
func (h *Handler) UpdateCinema(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var body cinemaReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		return h.fail(c, model.Invalid("name", "must not be empty"))
	}
	ctx := c.Request().Context()
	if err := h.Store.Cinemas.Update(ctx, id, model.CinemaPatch{Name: body.Name, Location: body.Location}); err != nil {
		return h.fail(c, err)
	}
	updated, err := h.Store.Cinemas.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityCinema, queue.ActionUpdated, id))
	return c.JSON(http.StatusOK, updated)
}

// DeleteCinema handles DELETE /v1/cinemas/:id.  Every room of the cinema
// and everything attached to it is removed in the same transaction.
func (h *Handler) DeleteCinema(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.Maintainer.DeleteCinema(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityCinema, queue.ActionDeleted, id))
	return c.NoContent(http.StatusNoContent)
}

// RecomputeStats handles POST /v1/cinemas/:id/stats.
func (h *Handler) RecomputeStats(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx := c.Request().Context()
	if _, err := h.Store.Cinemas.GetByID(ctx, id); err != nil {
		return h.fail(c, err)
	}
	stats, err := h.Stats.Recompute(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	h.publish(queue.NewEvent(queue.EntityCinema, queue.ActionStats, id))
	return c.JSON(http.StatusOK, stats)
}
