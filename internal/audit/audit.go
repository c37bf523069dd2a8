package audit

import (
	"context"

	"github.com/laabobo/live-relay/pkg/log"
)

// Audit actions for the live relay.
const (
	ActionStartStream = "relay.start_stream"
	ActionEndStream   = "relay.end_stream"
	ActionJoinStream  = "relay.join_stream"
	ActionLeave       = "relay.leave"
	ActionDisconnect  = "relay.disconnect"
	ActionAuthFailed  = "relay.auth_failed"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action, streamID, userID, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldStreamID, streamID).
		Str(log.FieldUserID, userID).
		Msg(msg)
}
