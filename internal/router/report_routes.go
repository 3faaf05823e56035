package router

// This file registers the aggregate endpoints.  They scan whole
// collections, so they are the ones placed behind the Redis response
// cache.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-maintenance/internal/handler"
)

// RegisterReports registers the report, statistics and export routes.
// cache may be nil, in which case responses are never cached.
func RegisterReports(v1 *echo.Group, h *handler.Handler, cache echo.MiddlewareFunc) {
	var m []echo.MiddlewareFunc
	if cache != nil {
		m = append(m, cache)
	}
	// Technical report over a window, optionally for one cinema
	v1.GET("/reports/technical", h.TechnicalReport, m...)
	// Maintenance and session impact statistics
	v1.GET("/maintenance/stats", h.MaintenanceStats, m...)
	v1.GET("/impacts/stats", h.ImpactStats, m...)
	// Complete data export
	v1.GET("/export", h.ExportAll, m...)
}
