package domain

import (
	"sync"
	"time"
)

// Role identifies what a connection is doing in a stream.
type Role string

const (
	RoleNone   Role = ""
	RoleHost   Role = "host"
	RoleViewer Role = "viewer"
)

// Session carries the per-connection relay state. A session starts
// unassigned; the first successful start_stream or join_stream fixes its
// role for the lifetime of the connection.
type Session struct {
	ID           string
	UserID       string
	Role         Role
	StreamID     string
	CreatedAt    time.Time
	LastActiveAt time.Time
	mu           sync.RWMutex
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Bind assigns the session's role and stream. A role, once assigned,
// never changes: an unbound session may rebind only to the role it
// already held. Binding while attached to a stream is rejected.
func (s *Session) Bind(role Role, streamID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StreamID != "" {
		return false
	}
	if s.Role != RoleNone && s.Role != role {
		return false
	}
	s.Role = role
	s.StreamID = streamID
	s.UserID = userID
	s.LastActiveAt = time.Now()
	return true
}

// Unbind detaches the session from its stream. The role is kept so a
// former host cannot rejoin as a viewer on the same connection.
func (s *Session) Unbind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StreamID = ""
	s.LastActiveAt = time.Now()
}

func (s *Session) GetRole() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Role
}

func (s *Session) GetStreamID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.StreamID
}

func (s *Session) GetUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.UserID
}

func (s *Session) IsBound() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.StreamID != ""
}

func (s *Session) UpdateActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastActiveAt = time.Now()
}
