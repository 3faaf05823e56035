package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/model"
	"github.com/iliyamo/cinema-maintenance/internal/queue"
)

// ListSettings handles GET /v1/settings.
func (h *Handler) ListSettings(c echo.Context) error {
	list, err := h.Store.Settings.ListAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// PutSetting handles PUT /v1/settings/:key with body {"value": "..."}.
// The key is created on first write and overwritten afterwards.
func (h *Handler) PutSetting(c echo.Context) error {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return h.fail(c, model.Invalid("key", "required"))
	}
	var body struct {
		Value *string `json:"value"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Value == nil {
		return h.fail(c, model.Invalid("value", "required"))
	}
	ctx := c.Request().Context()
	if err := h.Store.Settings.Set(ctx, key, *body.Value); err != nil {
		return h.fail(c, err)
	}
	list, err := h.Store.Settings.ListAll(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	for _, s := range list {
		if s.Key == key {
			h.publish(queue.NewEvent(queue.EntitySetting, queue.ActionUpdated, s.ID))
			return c.JSON(http.StatusOK, s)
		}
	}
	return c.JSON(http.StatusOK, model.Setting{Key: key, Value: *body.Value})
}
