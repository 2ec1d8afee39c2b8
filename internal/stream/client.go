package stream

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is one subscriber connection. Writes go through the send queue
// only; a writer error closes this connection and nothing else.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// shutdown closes the send queue. Only called with the hub lock held,
// which guarantees single removal and no concurrent Broadcast send. The
// socket itself is owned by writePump so the close frame can still go out.
func (c *Client) shutdown() {
	c.once.Do(func() {
		close(c.send)
	})
}

func (c *Client) writePump(writeTimeout, pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer c.conn.Close()

	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				// the hub dropped us; tell the peer before the deferred close
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.hub.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.unregister(c)
				return
			}
		}
	}
}

// readPump discards inbound frames; its job is noticing the peer going
// away so the hub can reap the connection.
func (c *Client) readPump() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.hub.unregister(c)
			return
		}
	}
}
