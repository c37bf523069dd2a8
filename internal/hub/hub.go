package hub

import (
	"encoding/json"
	"sync"

	"github.com/laabobo/live-relay/internal/config"
	"github.com/laabobo/live-relay/pkg/log"
)

// Hub owns every open WebSocket connection. It is the connection
// registry and the fan-out path: room membership itself lives in the
// room table, which hands back client IDs for the hub to deliver to.
type Hub struct {
	clients    map[string]*Client // clientID -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *targetedMessage
	mu         sync.RWMutex
	config     config.WebSocketConfig
}

// targetedMessage is a pre-serialized frame addressed to a set of
// clients. A nil ClientIDs means every registered connection.
type targetedMessage struct {
	ClientIDs []string
	Message   []byte
}

func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *targetedMessage, 256),
		config:     cfg,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			l := log.L()
			l.Debug().Str(log.FieldClientID, client.ID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			l := log.L()
			l.Debug().Str(log.FieldClientID, client.ID).Msg("client unregistered")

		case msg := <-h.broadcast:
			h.mu.RLock()
			if msg.ClientIDs == nil {
				for _, client := range h.clients {
					h.deliverLocked(client, msg.Message)
				}
			} else {
				for _, id := range msg.ClientIDs {
					if client, ok := h.clients[id]; ok {
						h.deliverLocked(client, msg.Message)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// deliverLocked pushes a frame onto a client's send queue. A client that
// cannot keep up is dropped rather than blocking the fan-out.
func (h *Hub) deliverLocked(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		go h.Unregister(client)
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Send serializes message once and queues it for a single client.
// Unknown client IDs are skipped; delivery is best-effort.
func (h *Hub) Send(clientID string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	h.broadcast <- &targetedMessage{ClientIDs: []string{clientID}, Message: data}
	return nil
}

// SendMany serializes message once and queues it for each listed client.
func (h *Hub) SendMany(clientIDs []string, message interface{}) error {
	if len(clientIDs) == 0 {
		return nil
	}
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	h.broadcast <- &targetedMessage{ClientIDs: clientIDs, Message: data}
	return nil
}

// BroadcastAll queues a frame for every registered connection,
// regardless of role or room.
func (h *Hub) BroadcastAll(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	h.broadcast <- &targetedMessage{Message: data}
	return nil
}

// ClientCount reports the number of registered connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
