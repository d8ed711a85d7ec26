package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jstrand/papertrader/internal/auth"
)

// Portfolio handles GET /api/portfolio
func (h *Handler) Portfolio(c *gin.Context) {
	snap, err := h.valuation.Snapshot(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// History handles GET /api/history
func (h *Handler) History(c *gin.Context) {
	records, err := h.store.Records(c.Request.Context(), auth.UserID(c), "")
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": records,
		"count":        len(records),
	})
}
