package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TechnicalReport handles GET /v1/reports/technical?cinema_id&start&end.
// Without start and end the report covers the last 30 days.
func (h *Handler) TechnicalReport(c echo.Context) error {
	cinemaID, err := queryID(c, "cinema_id")
	if err != nil {
		return h.fail(c, err)
	}
	w, err := queryWindow(c)
	if err != nil {
		return h.fail(c, err)
	}
	rep, err := h.Reports.Technical(c.Request().Context(), cinemaID, w)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

// ExportAll handles GET /v1/export and returns every collection.
func (h *Handler) ExportAll(c echo.Context) error {
	out, err := h.Export.Complete(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
