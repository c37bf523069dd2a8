package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor
	FieldUserID = "user_id"

	// Relay
	FieldClientID = "client_id"
	FieldStreamID = "stream_id"
	FieldRole     = "role"
	FieldHostID   = "host_id"
	FieldViewerID = "viewer_id"
	FieldMsgType  = "msg_type"

	// Service
	FieldService = "service"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
