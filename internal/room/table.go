package room

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Room is one live stream tracked in memory. It holds the social
// interaction state only; media goes through the external streaming SDK.
type Room struct {
	ID           string
	Title        string
	HostID       string
	HostClientID string
	CreatedAt    time.Time

	viewers  map[string]struct{} // viewer client IDs, never the host
	likes    int
	comments []string
}

// Snapshot is an immutable view of a room for responses and the HTTP API.
type Snapshot struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	HostID      string    `json:"host_id"`
	ViewerCount int       `json:"viewer_count"`
	Likes       int       `json:"likes"`
	Comments    []string  `json:"comments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Table tracks every open room. All methods are safe for concurrent use;
// mutators on a missing room are no-ops so that a viewer action racing a
// host teardown resolves quietly.
type Table struct {
	mu          sync.RWMutex
	rooms       map[string]*Room
	order       []string // room IDs in creation order
	commentCap  int
	entropy     *ulid.MonotonicEntropy
	entropyLock sync.Mutex
}

// NewTable creates an empty room table. commentCap bounds the per-room
// comment buffer; values <= 0 fall back to 50.
func NewTable(commentCap int) *Table {
	if commentCap <= 0 {
		commentCap = 50
	}
	return &Table{
		rooms:      make(map[string]*Room),
		commentCap: commentCap,
		entropy:    ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// Create registers a new room and returns its ID. It always succeeds.
func (t *Table) Create(title, hostID, hostClientID string) string {
	now := time.Now()

	t.entropyLock.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), t.entropy).String()
	t.entropyLock.Unlock()

	r := &Room{
		ID:           id,
		Title:        strings.TrimSpace(title),
		HostID:       hostID,
		HostClientID: hostClientID,
		CreatedAt:    now,
		viewers:      make(map[string]struct{}),
	}

	t.mu.Lock()
	t.rooms[id] = r
	t.order = append(t.order, id)
	t.mu.Unlock()

	return id
}

// MostRecent returns the most recently created room that is still open,
// or "" when none is.
func (t *Table) MostRecent() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.order) - 1; i >= 0; i-- {
		if _, ok := t.rooms[t.order[i]]; ok {
			return t.order[i]
		}
	}
	return ""
}

// Get returns a snapshot of the room, including its comment backlog.
func (t *Table) Get(id string) (Snapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rooms[id]
	if !ok {
		return Snapshot{}, false
	}
	return t.snapshotLocked(r), true
}

// List returns snapshots of every open room in creation order, without
// comment backlogs.
func (t *Table) List() []Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Snapshot, 0, len(t.rooms))
	for _, id := range t.order {
		if r, ok := t.rooms[id]; ok {
			s := t.snapshotLocked(r)
			s.Comments = nil
			out = append(out, s)
		}
	}
	return out
}

// AddViewer attaches a viewer connection and returns the new viewer
// count. The host's own connection is never added.
func (t *Table) AddViewer(id, clientID string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rooms[id]
	if !ok {
		return 0, false
	}
	if clientID == r.HostClientID {
		return len(r.viewers), true
	}
	r.viewers[clientID] = struct{}{}
	return len(r.viewers), true
}

// RemoveViewer detaches a viewer connection and returns the new viewer
// count. Removing from a missing room, or a viewer that already left, is
// a no-op.
func (t *Table) RemoveViewer(id, clientID string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rooms[id]
	if !ok {
		return 0, false
	}
	delete(r.viewers, clientID)
	return len(r.viewers), true
}

// Viewers returns the viewer client IDs of the room.
func (t *Table) Viewers(id string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rooms[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(r.viewers))
	for cid := range r.viewers {
		out = append(out, cid)
	}
	return out
}

// HostClient returns the host connection's client ID.
func (t *Table) HostClient(id string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rooms[id]
	if !ok {
		return "", false
	}
	return r.HostClientID, true
}

// IncrementLikes bumps the like counter and returns the new total. The
// counter only ever grows.
func (t *Table) IncrementLikes(id string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rooms[id]
	if !ok {
		return 0, false
	}
	r.likes++
	return r.likes, true
}

// AppendComment adds a comment to the room's bounded buffer. Empty and
// whitespace-only text is dropped. When the buffer exceeds its cap the
// oldest entries are evicted.
func (t *Table) AppendComment(id, text string) ([]string, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.rooms[id]
	if !ok {
		return nil, false
	}
	r.comments = append(r.comments, text)
	if len(r.comments) > t.commentCap {
		r.comments = r.comments[len(r.comments)-t.commentCap:]
	}
	out := make([]string, len(r.comments))
	copy(out, r.comments)
	return out, true
}

// Delete removes the room. Deleting a missing room is a no-op.
func (t *Table) Delete(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rooms[id]; !ok {
		return
	}
	delete(t.rooms, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of open rooms.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rooms)
}

func (t *Table) snapshotLocked(r *Room) Snapshot {
	comments := make([]string, len(r.comments))
	copy(comments, r.comments)
	return Snapshot{
		ID:          r.ID,
		Title:       r.Title,
		HostID:      r.HostID,
		ViewerCount: len(r.viewers),
		Likes:       r.likes,
		Comments:    comments,
		CreatedAt:   r.CreatedAt,
	}
}
