package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/laabobo/live-relay/internal/config"
	"github.com/laabobo/live-relay/internal/domain"
	"github.com/laabobo/live-relay/internal/hub"
	"github.com/laabobo/live-relay/internal/service"
	"github.com/laabobo/live-relay/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades connections and feeds inbound frames to the relay
// service.
type WSHandler struct {
	hub     *hub.Hub
	service service.RelayService
	wsCfg   config.WebSocketConfig
}

func NewWSHandler(h *hub.Hub, svc service.RelayService, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		wsCfg:   wsCfg,
	}
}

func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l := log.L()
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)
	client.SetDisconnectHandler(h.handleDisconnect)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.handleMessage)
}

// handleMessage routes one inbound frame. A frame that is not valid JSON
// or carries an unknown type is logged and dropped; the connection is
// never closed for bad input.
func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	l := log.L().With().Str(log.FieldClientID, client.ID).Logger()
	ctx := log.WithLogger(context.Background(), l)

	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		l.Warn().Err(err).Msg("dropping malformed frame")
		return
	}

	switch base.Type {
	case domain.MsgTypeStartStream:
		var msg domain.StartStreamMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			l.Warn().Err(err).Str(log.FieldMsgType, base.Type).Msg("dropping malformed frame")
			return
		}
		if err := h.service.HandleStartStream(ctx, client.ID, client.Session, msg.Title, msg.HostID, msg.Token); err != nil {
			l.Warn().Err(err).Msg("start_stream rejected")
		}

	case domain.MsgTypeJoinStream:
		var msg domain.JoinStreamMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			l.Warn().Err(err).Str(log.FieldMsgType, base.Type).Msg("dropping malformed frame")
			return
		}
		if err := h.service.HandleJoinStream(ctx, client.ID, client.Session, msg.StreamID, msg.ViewerID, msg.Token); err != nil {
			l.Warn().Err(err).Msg("join_stream rejected")
		}

	case domain.MsgTypeLike:
		h.service.HandleLike(ctx, client.ID, client.Session)

	case domain.MsgTypeComment:
		var msg domain.CommentMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			l.Warn().Err(err).Str(log.FieldMsgType, base.Type).Msg("dropping malformed frame")
			return
		}
		h.service.HandleComment(ctx, client.ID, client.Session, msg.Message)

	case domain.MsgTypeEndStream:
		h.service.HandleEndStream(ctx, client.ID, client.Session)

	default:
		l.Debug().Str(log.FieldMsgType, base.Type).Msg("ignoring unknown message type")
	}
}

func (h *WSHandler) handleDisconnect(client *hub.Client) {
	l := log.L().With().Str(log.FieldClientID, client.ID).Logger()
	ctx := log.WithLogger(context.Background(), l)
	h.service.HandleDisconnect(ctx, client.ID, client.Session)
}

// RegisterRoutes mounts the WebSocket endpoint on a plain mux.
func (h *WSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleWebSocket)
}
