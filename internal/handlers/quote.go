package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jstrand/papertrader/internal/quotes"
)

// Quote handles GET /api/quote/:symbol
func (h *Handler) Quote(c *gin.Context) {
	quote, err := h.quotes.Lookup(c.Request.Context(), c.Param("symbol"))
	if errors.Is(err, quotes.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol"})
		return
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote unavailable"})
		return
	}

	c.JSON(http.StatusOK, quote)
}
