package domain

import (
	"encoding/json"
	"time"
)

// Interaction event types published to the downstream feed.
const (
	EventStreamStarted = "stream.started"
	EventStreamEnded   = "stream.ended"
	EventViewerJoined  = "stream.viewer_joined"
	EventViewerLeft    = "stream.viewer_left"
	EventLike          = "stream.like"
	EventComment       = "stream.comment"
)

// Event is one interaction record on the feed channel. Downstream
// consumers (points/gifts accounting, analytics) rebuild their own view
// from these; the relay itself never reads them back.
type Event struct {
	Type      string          `json:"type"`
	StreamID  string          `json:"stream_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent creates a feed event with the current timestamp.
func NewEvent(eventType, streamID string, payload interface{}) (*Event, error) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		data = b
	}
	return &Event{
		Type:      eventType,
		StreamID:  streamID,
		Payload:   data,
		Timestamp: time.Now().UTC(),
	}, nil
}
