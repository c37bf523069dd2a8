package service

import (
	"context"
	"strings"

	"github.com/laabobo/live-relay/internal/audit"
	"github.com/laabobo/live-relay/internal/auth"
	"github.com/laabobo/live-relay/internal/config"
	"github.com/laabobo/live-relay/internal/domain"
	"github.com/laabobo/live-relay/internal/events"
	"github.com/laabobo/live-relay/internal/room"
	"github.com/laabobo/live-relay/pkg/log"
)

type relayService struct {
	rooms       *room.Table
	broadcaster Broadcaster
	verifier    *auth.Verifier
	publisher   events.Publisher
	roomCfg     config.RoomConfig
}

func NewRelayService(
	rooms *room.Table,
	broadcaster Broadcaster,
	verifier *auth.Verifier,
	publisher events.Publisher,
	roomCfg config.RoomConfig,
) RelayService {
	return &relayService{
		rooms:       rooms,
		broadcaster: broadcaster,
		verifier:    verifier,
		publisher:   publisher,
		roomCfg:     roomCfg,
	}
}

func (s *relayService) HandleStartStream(ctx context.Context, clientID string, sess *domain.Session, title, hostID, token string) error {
	if sess.IsBound() {
		l := log.Ctx(ctx)
		l.Warn().Str(log.FieldClientID, clientID).Msg("start_stream from a bound connection, ignoring")
		return nil
	}

	userID, err := s.verifier.Identify(token, hostID)
	if err != nil {
		audit.Log(ctx, audit.ActionAuthFailed, "", hostID, "rejected start_stream token")
		return err
	}

	if strings.TrimSpace(title) == "" {
		title = s.roomCfg.DefaultTitle
	}

	streamID := s.rooms.Create(title, userID, clientID)
	if !sess.Bind(domain.RoleHost, streamID, userID) {
		// A viewer connection tried to become a host.
		s.rooms.Delete(streamID)
		l := log.Ctx(ctx)
		l.Warn().Str(log.FieldClientID, clientID).Msg("start_stream from a viewer connection, ignoring")
		return nil
	}

	s.broadcaster.Send(clientID, &domain.StreamStartedMessage{
		Type:     domain.MsgTypeStreamStarted,
		StreamID: streamID,
		Message:  "Stream started successfully",
	})

	s.broadcaster.BroadcastAll(&domain.NewStreamAvailableMessage{
		Type:     domain.MsgTypeNewStreamAvailable,
		StreamID: streamID,
		Title:    title,
	})

	s.publish(ctx, domain.EventStreamStarted, streamID, map[string]string{"host_id": userID, "title": title})
	audit.Log(ctx, audit.ActionStartStream, streamID, userID, "stream started")
	return nil
}

func (s *relayService) HandleJoinStream(ctx context.Context, clientID string, sess *domain.Session, streamID, viewerID, token string) error {
	if sess.IsBound() {
		l := log.Ctx(ctx)
		l.Warn().Str(log.FieldClientID, clientID).Msg("join_stream from a bound connection, ignoring")
		return nil
	}

	userID, err := s.verifier.Identify(token, viewerID)
	if err != nil {
		audit.Log(ctx, audit.ActionAuthFailed, streamID, viewerID, "rejected join_stream token")
		return err
	}

	// Explicit stream ID wins; otherwise fall back to the latest open
	// stream, which is what the first-generation clients expect.
	target := streamID
	if target == "" {
		target = s.rooms.MostRecent()
	}
	if target == "" {
		return s.sendNoActiveStreams(clientID)
	}

	if !sess.Bind(domain.RoleViewer, target, userID) {
		l := log.Ctx(ctx)
		l.Warn().Str(log.FieldClientID, clientID).Msg("join_stream from a host connection, ignoring")
		return nil
	}

	count, ok := s.rooms.AddViewer(target, clientID)
	if !ok {
		// The stream closed between lookup and join.
		sess.Unbind()
		return s.sendNoActiveStreams(clientID)
	}

	snap, ok := s.rooms.Get(target)
	if !ok {
		sess.Unbind()
		return s.sendNoActiveStreams(clientID)
	}

	s.broadcaster.Send(clientID, &domain.StreamDataMessage{
		Type:        domain.MsgTypeStreamData,
		Title:       snap.Title,
		ViewerCount: count,
		Likes:       snap.Likes,
		Comments:    snap.Comments,
	})

	s.broadcastToRoom(target, &domain.ViewerCountMessage{
		Type:  domain.MsgTypeViewerCount,
		Count: count,
	})
	s.notifyHost(target, &domain.ViewerEventMessage{
		Type:        domain.MsgTypeViewerJoined,
		ViewerCount: count,
	})

	s.publish(ctx, domain.EventViewerJoined, target, map[string]interface{}{"viewer_id": userID, "viewer_count": count})
	audit.Log(ctx, audit.ActionJoinStream, target, userID, "viewer joined")
	return nil
}

func (s *relayService) HandleLike(ctx context.Context, clientID string, sess *domain.Session) error {
	streamID := sess.GetStreamID()
	if streamID == "" {
		return nil
	}

	total, ok := s.rooms.IncrementLikes(streamID)
	if !ok {
		return nil
	}

	s.broadcastToRoom(streamID, &domain.LikeMessage{
		Type:       domain.MsgTypeLike,
		TotalLikes: total,
	})

	s.publish(ctx, domain.EventLike, streamID, map[string]interface{}{"user_id": sess.GetUserID(), "total_likes": total})
	return nil
}

func (s *relayService) HandleComment(ctx context.Context, clientID string, sess *domain.Session, text string) error {
	streamID := sess.GetStreamID()
	if streamID == "" {
		return nil
	}

	if _, ok := s.rooms.AppendComment(streamID, text); !ok {
		return nil
	}

	s.broadcastToRoom(streamID, &domain.CommentBroadcast{
		Type:    domain.MsgTypeComment,
		Message: text,
	})

	s.publish(ctx, domain.EventComment, streamID, map[string]string{"user_id": sess.GetUserID(), "message": text})
	return nil
}

func (s *relayService) HandleEndStream(ctx context.Context, clientID string, sess *domain.Session) error {
	if sess.GetRole() != domain.RoleHost {
		return nil
	}
	streamID := sess.GetStreamID()
	if streamID == "" {
		return nil
	}

	s.teardown(ctx, streamID, sess)
	audit.Log(ctx, audit.ActionEndStream, streamID, sess.GetUserID(), "stream ended by host")
	return nil
}

func (s *relayService) HandleDisconnect(ctx context.Context, clientID string, sess *domain.Session) error {
	streamID := sess.GetStreamID()
	if streamID == "" {
		return nil
	}

	switch sess.GetRole() {
	case domain.RoleHost:
		s.teardown(ctx, streamID, sess)
		audit.Log(ctx, audit.ActionDisconnect, streamID, sess.GetUserID(), "host disconnected, stream ended")

	case domain.RoleViewer:
		count, ok := s.rooms.RemoveViewer(streamID, clientID)
		sess.Unbind()
		if !ok {
			return nil
		}
		s.broadcastToRoom(streamID, &domain.ViewerCountMessage{
			Type:  domain.MsgTypeViewerCount,
			Count: count,
		})
		s.notifyHost(streamID, &domain.ViewerEventMessage{
			Type:        domain.MsgTypeViewerLeft,
			ViewerCount: count,
		})
		s.publish(ctx, domain.EventViewerLeft, streamID, map[string]interface{}{"viewer_id": sess.GetUserID(), "viewer_count": count})
		audit.Log(ctx, audit.ActionLeave, streamID, sess.GetUserID(), "viewer disconnected")
	}
	return nil
}

// teardown ends a stream: viewers are told first, then the room is
// removed so later messages see it as gone.
func (s *relayService) teardown(ctx context.Context, streamID string, sess *domain.Session) {
	viewers := s.rooms.Viewers(streamID)
	if len(viewers) > 0 {
		s.broadcaster.SendMany(viewers, &domain.StreamEndedMessage{
			Type:    domain.MsgTypeStreamEnded,
			Message: "The stream has ended",
		})
	}
	s.rooms.Delete(streamID)
	sess.Unbind()
	s.publish(ctx, domain.EventStreamEnded, streamID, nil)
}

func (s *relayService) sendNoActiveStreams(clientID string) error {
	return s.broadcaster.Send(clientID, &domain.NoActiveStreamsMessage{
		Type:    domain.MsgTypeNoActiveStreams,
		Message: "No active streams available",
	})
}

// broadcastToRoom delivers to every viewer and to the host.
func (s *relayService) broadcastToRoom(streamID string, message interface{}) {
	recipients := s.rooms.Viewers(streamID)
	if hostClient, ok := s.rooms.HostClient(streamID); ok {
		recipients = append(recipients, hostClient)
	}
	if len(recipients) == 0 {
		return
	}
	s.broadcaster.SendMany(recipients, message)
}

func (s *relayService) notifyHost(streamID string, message interface{}) {
	hostClient, ok := s.rooms.HostClient(streamID)
	if !ok {
		return
	}
	s.broadcaster.Send(hostClient, message)
}

func (s *relayService) publish(ctx context.Context, eventType, streamID string, payload interface{}) {
	event, err := domain.NewEvent(eventType, streamID, payload)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldStreamID, streamID).Msg("failed to publish feed event")
	}
}
