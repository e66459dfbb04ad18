package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetFetches handles GET /api/fetches and lists recent fetch diagnostics.
func (h *Handler) GetFetches(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "diagnostics are disabled"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	records, err := h.store.RecentFetches(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fetch records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// Healthz reports liveness and the number of open sessions.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.registry.Len()})
}
