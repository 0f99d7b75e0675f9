package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"econ-pulse/notify"
)

const keepAliveInterval = 15 * time.Second

type StreamHandler struct {
	hub       *notify.Hub
	keepAlive time.Duration
}

func NewStreamHandler(hub *notify.Hub) *StreamHandler {
	return &StreamHandler{hub: hub, keepAlive: keepAliveInterval}
}

// Stream pushes every insert as a server-sent event named after its
// collection. Clients re-fetch the views that show that collection.
func (h *StreamHandler) Stream(c *gin.Context) {
	changes, cancel := h.hub.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case change, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent(change.Collection, change)
			return true
		case <-ticker.C:
			_, err := io.WriteString(w, ": keep-alive\n\n")
			return err == nil
		}
	})
}
