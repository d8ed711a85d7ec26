package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jstrand/papertrader/internal/auth"
)

type tradeRequest struct {
	Symbol   string `json:"symbol" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required"`
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Buy handles POST /api/buy
func (h *Handler) Buy(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	exec, err := h.engine.Buy(c.Request.Context(), auth.UserID(c), req.Symbol, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "purchase successful",
		"record":      exec.Record,
		"total_cost":  exec.Total,
		"new_balance": exec.Balance,
	})
}

// Sell handles POST /api/sell
func (h *Handler) Sell(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	exec, err := h.engine.Sell(c.Request.Context(), auth.UserID(c), req.Symbol, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "sale successful",
		"record":         exec.Record,
		"total_proceeds": exec.Total,
		"new_balance":    exec.Balance,
	})
}

// Deposit handles POST /api/deposit
func (h *Handler) Deposit(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	exec, err := h.engine.Deposit(c.Request.Context(), auth.UserID(c), req.Amount)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "deposit successful",
		"record":      exec.Record,
		"new_balance": exec.Balance,
	})
}
