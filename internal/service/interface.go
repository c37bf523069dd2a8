package service

import (
	"context"

	"github.com/laabobo/live-relay/internal/domain"
)

// Broadcaster delivers serialized frames to connections. Implemented by
// the hub; tests substitute a recording fake.
type Broadcaster interface {
	Send(clientID string, message interface{}) error
	SendMany(clientIDs []string, message interface{}) error
	BroadcastAll(message interface{}) error
}

// RelayService routes inbound relay messages. Every handler is a no-op
// on state it cannot act on; a client is never disconnected for sending
// something the router does not want.
type RelayService interface {
	HandleStartStream(ctx context.Context, clientID string, sess *domain.Session, title, hostID, token string) error
	HandleJoinStream(ctx context.Context, clientID string, sess *domain.Session, streamID, viewerID, token string) error
	HandleLike(ctx context.Context, clientID string, sess *domain.Session) error
	HandleComment(ctx context.Context, clientID string, sess *domain.Session, text string) error
	HandleEndStream(ctx context.Context, clientID string, sess *domain.Session) error
	HandleDisconnect(ctx context.Context, clientID string, sess *domain.Session) error
}
