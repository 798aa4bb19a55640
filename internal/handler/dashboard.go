package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mattendance/internal/catalog"
	"mattendance/internal/dashboard"
)

// DashboardSummary returns the headline counts and today's tallies.
func (h *Handler) DashboardSummary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DashboardToday returns per-record rows for the current date.
func (h *Handler) DashboardToday(c *gin.Context) {
	rows, err := h.dashboard.Today(c.Request.Context(), queryInt(c, "subject_id"))
	if err != nil {
		serverError(c, err)
		return
	}
	if rows == nil {
		rows = []dashboard.TodayRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// DashboardHeatmap returns per-day aggregates over the lookback window.
func (h *Handler) DashboardHeatmap(c *gin.Context) {
	rows, err := h.dashboard.Heatmap(c.Request.Context(),
		queryInt(c, "months"), queryInt(c, "subject_id"), queryInt(c, "program_id"))
	if err != nil {
		serverError(c, err)
		return
	}
	if rows == nil {
		rows = []dashboard.HeatmapRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// DashboardActivity returns the most recent faculty activity entries.
func (h *Handler) DashboardActivity(c *gin.Context) {
	entries, err := h.dashboard.RecentActivity(c.Request.Context(), 20)
	if err != nil {
		serverError(c, err)
		return
	}
	if entries == nil {
		entries = []catalog.ActivityEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
