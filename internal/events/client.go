package events

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Time between pings; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Buffer size for outgoing messages
	sendBufferSize = 256

	// Clients only send control frames
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is a connected websocket subscriber
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	name        string // empty for anonymous watchers
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a client that is not yet attached to a connection
func NewClient(hub *Hub, name string) *Client {
	return &Client{
		hub:         hub,
		name:        name,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeWS upgrades the request and streams events until either side closes
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub, name string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response
		return err
	}

	client := NewClient(hub, name)
	client.conn = conn
	hub.Register(client)

	go client.writePump()
	client.readPump()
	return nil
}

// readPump discards inbound messages and unregisters the client once the
// connection closes
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read error",
					slog.String("player", c.name),
					slog.String("error", err.Error()))
			}
			return
		}
	}
}

// writePump forwards hub messages to the connection and keeps it alive
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
