package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

// conn adapts *websocket.Conn to session.Conn, adding a write deadline so
// one stalled client cannot park a task goroutine forever. The session
// manager serializes writes, so no extra locking is needed here.
type conn struct {
	ws           *websocket.Conn
	writeTimeout time.Duration
}

func (c *conn) WriteJSON(v interface{}) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteJSON(v)
}

func (c *conn) Close() error {
	return c.ws.Close()
}
