package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/services"
)

// APIHandler handles HTTP API requests. Every read endpoint serves copies
// produced by the feed manager; nothing here mutates feed state except the
// acknowledge and refresh actions, which go through the manager's operations.
type APIHandler struct {
	feed *services.FeedManager
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(feed *services.FeedManager) *APIHandler {
	return &APIHandler{
		feed: feed,
	}
}

// GetDashboard returns the full dashboard read model in one payload
func (h *APIHandler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.feed.Dashboard())
}

// GetStatus returns the current system status snapshot. 204 until the first
// successful backend fetch.
func (h *APIHandler) GetStatus(c echo.Context) error {
	status := h.feed.Status()
	if status == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, status)
}

// GetLatestAnomaly returns the current active-anomaly snapshot. 204 until
// the first successful backend fetch.
func (h *APIHandler) GetLatestAnomaly(c echo.Context) error {
	anomaly := h.feed.ActiveAnomaly()
	if anomaly == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, anomaly)
}

// GetNotifications returns the retained notification feed, most recent first
func (h *APIHandler) GetNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, h.feed.Notifications())
}

// AcknowledgeAnomaly clears the active anomaly locally and notifies the
// backend best-effort. Always 200: a failed backend clear is logged by the
// feed manager and does not undo the local acknowledgement.
func (h *APIHandler) AcknowledgeAnomaly(c echo.Context) error {
	h.feed.AcknowledgeActiveAnomaly(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"message": "Anomaly acknowledged"})
}

// Refresh runs the manual pull-to-refresh path: one full refresh cycle, then
// the resulting dashboard
func (h *APIHandler) Refresh(c echo.Context) error {
	h.feed.RefreshAll(c.Request().Context())
	return c.JSON(http.StatusOK, h.feed.Dashboard())
}

// Health reports gateway liveness
func (h *APIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SetupRoutes sets up the API routes
func (h *APIHandler) SetupRoutes(e *echo.Echo) {
	// Dashboard reads
	e.GET("/api/dashboard", h.GetDashboard)
	e.GET("/api/status", h.GetStatus)
	e.GET("/api/anomalies/latest", h.GetLatestAnomaly)
	e.GET("/api/notifications", h.GetNotifications)

	// Actions
	e.POST("/api/anomalies/acknowledge", h.AcknowledgeAnomaly)
	e.POST("/api/refresh", h.Refresh)

	// Liveness
	e.GET("/health", h.Health)
}
