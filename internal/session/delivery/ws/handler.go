package ws

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Serve upgrades the request and runs the read loop until the client goes
// away. One goroutine per connection; task fan-out happens in the session
// manager.
func (h *Handler) Serve(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.l.Warnf(c.Request.Context(), "websocket upgrade failed: %v", err)
		return
	}
	ws.SetReadLimit(h.cfg.MaxMessageBytes)

	clientIP := extractIP(c.Request)
	s := h.manager.Register(&conn{ws: ws, writeTimeout: h.cfg.WriteTimeout})
	defer h.manager.Disconnect(s.ID)

	for {
		messageType, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.l.Warnf(c.Request.Context(), "session %s: read error: %v", s.ID, err)
			}
			return
		}

		if h.limiter != nil {
			if err := h.limiter.Allow(clientIP); err != nil {
				h.l.Warnf(c.Request.Context(), "session %s: %v", s.ID, err)
				h.metrics.MessageDropped()
				continue
			}
		}

		switch messageType {
		case websocket.TextMessage:
			h.manager.Dispatch(s, data)
		case websocket.BinaryMessage:
			h.manager.DispatchBinary(s, data)
		}
	}
}

// extractIP resolves the client address behind proxies.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	return ip
}
