package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solar_telemetry"
)

// @Summary      Push a feed snapshot
// @Description  Accepts the complete key→record snapshot and triggers a full pipeline rebuild. Malformed records are absorbed, never rejected.
// @Tags         telemetry
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]solar_telemetry.RawRecord  true  "Feed snapshot"
// @Success      200  {object}  map[string]interface{}  "status, records, null_values, unknown_dates"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/ingest [post]
func (h *Handler) ingest(c *gin.Context) {
	var records map[string]solar_telemetry.RawRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.services.Refresh(ctx, solar_telemetry.TriggerPush, records); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to record refresh", "ingest_refresh_failed", err)
		return
	}

	snap := h.services.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":        "refreshed",
		"records":       snap.Records(),
		"null_values":   snap.NullValues(),
		"unknown_dates": snap.UnknownDates(),
	})
}
