package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	e, err := NewEvent(EventLike, "stream-1", map[string]int{"total_likes": 3})
	require.NoError(t, err)

	assert.Equal(t, EventLike, e.Type)
	assert.Equal(t, "stream-1", e.StreamID)
	assert.False(t, e.Timestamp.IsZero())

	var payload map[string]int
	require.NoError(t, json.Unmarshal(e.Payload, &payload))
	assert.Equal(t, 3, payload["total_likes"])
}

func TestNewEvent_NilPayload(t *testing.T) {
	e, err := NewEvent(EventStreamEnded, "stream-1", nil)
	require.NoError(t, err)
	assert.Nil(t, e.Payload)

	// An event without payload still marshals cleanly.
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"payload"`)
}
