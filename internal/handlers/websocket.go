package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (for development and demo)
	},
}

// PriceStream handles websocket connections for simulated price updates.
func (h *Handler) PriceStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.log.Info("price stream client connected", "remote", conn.RemoteAddr())

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		update := h.sim.Advance()
		if err := conn.WriteJSON(update); err != nil {
			h.log.Info("price stream client disconnected", "error", err)
			return
		}
	}
}
