package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solar_telemetry"
)

const (
	errMissingDate  = "missing 'date' query parameter"
	errUnknownPanel = "unknown panel; use the full name (e.g. 'Panel TUGULA') or the short name (e.g. 'TUGULA')"
)

// @Summary      List date keys
// @Description  Ascending YYYY-MM-DD keys of all grouped readings; the unknown-date sentinel sorts last.
// @Tags         telemetry
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, dates"
// @Router       /api/v1/dates [get]
func (h *Handler) getDates(c *gin.Context) {
	dates := h.services.Snapshot().DateKeys()
	c.JSON(http.StatusOK, gin.H{
		"count": len(dates),
		"dates": dates,
	})
}

// @Summary      Aggregates for a date
// @Description  Per-panel summaries for one date key. Summary is a mean voltage or a power percentage depending on the configured policy.
// @Tags         telemetry
// @Produce      json
// @Param        date  query  string  true  "Date key (YYYY-MM-DD or the unknown-date sentinel)"
// @Success      200  {object}  map[string]interface{}  "date, policy, aggregates"
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/aggregates [get]
func (h *Handler) getAggregates(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingDate})
		return
	}
	snap := h.services.Snapshot()
	aggs := snap.Aggregates(date)
	if aggs == nil {
		aggs = []solar_telemetry.Aggregate{}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":       date,
		"policy":     snap.Policy().Name,
		"aggregates": aggs,
	})
}

// @Summary      Readings for a date and panel
// @Tags         telemetry
// @Produce      json
// @Param        date   query  string  true  "Date key"
// @Param        panel  query  string  true  "Panel name, full or short"
// @Success      200  {object}  map[string]interface{}  "date, panel, count, readings"
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/readings [get]
func (h *Handler) getReadings(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingDate})
		return
	}
	panel, ok := solar_telemetry.ParsePanel(c.Query("panel"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errUnknownPanel})
		return
	}
	readings := h.services.Snapshot().ReadingsFor(date, panel)
	if readings == nil {
		readings = []solar_telemetry.Reading{}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"panel":    panel,
		"count":    len(readings),
		"readings": readings,
	})
}

// @Summary      Current chart bars
// @Description  One bar spec per (date, panel) aggregate, keyed chart-<date>-<panel>.
// @Tags         telemetry
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, charts"
// @Router       /api/v1/charts [get]
func (h *Handler) getCharts(c *gin.Context) {
	specs := h.registry.Specs()
	c.JSON(http.StatusOK, gin.H{
		"count":  len(specs),
		"charts": specs,
	})
}
