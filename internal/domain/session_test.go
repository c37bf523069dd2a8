package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Bind(t *testing.T) {
	s := NewSession("c1")
	assert.Equal(t, RoleNone, s.GetRole())
	assert.False(t, s.IsBound())

	require.True(t, s.Bind(RoleViewer, "stream-1", "user-1"))
	assert.Equal(t, RoleViewer, s.GetRole())
	assert.Equal(t, "stream-1", s.GetStreamID())
	assert.Equal(t, "user-1", s.GetUserID())
	assert.True(t, s.IsBound())

	// Already attached to a stream.
	assert.False(t, s.Bind(RoleViewer, "stream-2", "user-1"))
}

func TestSession_RoleNeverChanges(t *testing.T) {
	s := NewSession("c1")
	require.True(t, s.Bind(RoleHost, "stream-1", "user-1"))

	s.Unbind()
	assert.False(t, s.IsBound())
	assert.Equal(t, RoleHost, s.GetRole())

	// A former host may host again but never becomes a viewer.
	assert.False(t, s.Bind(RoleViewer, "stream-2", "user-1"))
	assert.True(t, s.Bind(RoleHost, "stream-2", "user-1"))
}
