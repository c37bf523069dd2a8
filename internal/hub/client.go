package hub

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/laabobo/live-relay/internal/config"
	"github.com/laabobo/live-relay/internal/domain"
	"github.com/laabobo/live-relay/pkg/log"
)

// DisconnectHandler is called once when a client's read loop ends, for
// both clean closes and transport faults.
type DisconnectHandler func(*Client)

// Client is one WebSocket connection with its relay session.
type Client struct {
	ID      string
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	Session *domain.Session

	config            config.WebSocketConfig
	disconnectHandler DisconnectHandler
}

func NewClient(id string, hub *Hub, conn *websocket.Conn, cfg config.WebSocketConfig) *Client {
	return &Client{
		ID:      id,
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Session: domain.NewSession(id),
		config:  cfg,
	}
}

// SetDisconnectHandler sets the handler invoked when the connection ends.
func (c *Client) SetDisconnectHandler(handler DisconnectHandler) {
	c.disconnectHandler = handler
}

// ReadPump reads frames until the connection dies. The pong deadline
// doubles as liveness detection: a half-open socket that stops answering
// pings falls out of this loop and takes the same disconnect path as a
// clean close.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		if c.disconnectHandler != nil {
			c.disconnectHandler(c)
		}
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l := log.L()
				l.Warn().Err(err).Str(log.FieldClientID, c.ID).Msg("websocket read error")
			}
			break
		}

		c.Session.UpdateActivity()
		handler(c, message)
	}
}

// WritePump drains the send queue and keeps the ping cycle going.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
