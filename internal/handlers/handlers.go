// Package handlers is the thin JSON surface over the engine and valuation
// service. It translates typed engine failures into HTTP statuses and
// stable error strings; it holds no business rules of its own.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jstrand/papertrader/internal/engine"
	"github.com/jstrand/papertrader/internal/ledger"
	"github.com/jstrand/papertrader/internal/quotes"
	"github.com/jstrand/papertrader/internal/users"
	"github.com/jstrand/papertrader/internal/valuation"
)

type Handler struct {
	engine    *engine.Engine
	valuation *valuation.Service
	store     ledger.Store
	users     *users.Service
	quotes    quotes.Source
	sim       *quotes.Sim
	log       *slog.Logger
}

func New(eng *engine.Engine, val *valuation.Service, store ledger.Store, usr *users.Service, src quotes.Source, sim *quotes.Sim, log *slog.Logger) *Handler {
	return &Handler{
		engine:    eng,
		valuation: val,
		store:     store,
		users:     usr,
		quotes:    src,
		sim:       sim,
		log:       log,
	}
}

// writeError maps an engine failure to a status code. The error kinds are
// stable; the message is advisory.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	case errors.Is(err, engine.ErrUnknownSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown symbol"})
	case errors.Is(err, engine.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient funds"})
	case errors.Is(err, engine.ErrInsufficientShares):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient shares"})
	case errors.Is(err, engine.ErrQuoteUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote unavailable"})
	case errors.Is(err, ledger.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		h.log.Error("internal error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
