package domain

// WebSocket message types from client.
const (
	MsgTypeStartStream = "start_stream"
	MsgTypeJoinStream  = "join_stream"
	MsgTypeLike        = "like"
	MsgTypeComment     = "comment"
	MsgTypeEndStream   = "end_stream"
)

// WebSocket message types to client.
const (
	MsgTypeStreamStarted      = "stream_started"
	MsgTypeNewStreamAvailable = "new_stream_available"
	MsgTypeStreamData         = "stream_data"
	MsgTypeNoActiveStreams    = "no_active_streams"
	MsgTypeViewerCount        = "viewer_count"
	MsgTypeViewerJoined       = "viewer_joined"
	MsgTypeViewerLeft         = "viewer_left"
	MsgTypeStreamEnded        = "stream_ended"
)

// BaseMessage is the base structure for all WebSocket messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

type StartStreamMessage struct {
	Type   string `json:"type"`
	Title  string `json:"title,omitempty"`
	HostID string `json:"hostId,omitempty"`
	Token  string `json:"token,omitempty"`
}

type JoinStreamMessage struct {
	Type     string `json:"type"`
	StreamID string `json:"streamId,omitempty"`
	ViewerID string `json:"viewerId,omitempty"`
	Token    string `json:"token,omitempty"`
}

type CommentMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Server -> Client messages

type StreamStartedMessage struct {
	Type     string `json:"type"`
	StreamID string `json:"streamId"`
	Message  string `json:"message"`
}

type NewStreamAvailableMessage struct {
	Type     string `json:"type"`
	StreamID string `json:"streamId"`
	Title    string `json:"title"`
}

type StreamDataMessage struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	ViewerCount int      `json:"viewerCount"`
	Likes       int      `json:"likes"`
	Comments    []string `json:"comments,omitempty"`
}

type NoActiveStreamsMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ViewerCountMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type ViewerEventMessage struct {
	Type        string `json:"type"`
	ViewerCount int    `json:"viewerCount"`
}

type LikeMessage struct {
	Type       string `json:"type"`
	TotalLikes int    `json:"totalLikes"`
}

type CommentBroadcast struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type StreamEndedMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
