package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastAllReachesEveryClient(t *testing.T) {
	hub := NewHub()
	c1, err := hub.Register(1, nil)
	require.NoError(t, err)
	anon, err := hub.Register(0, nil)
	require.NoError(t, err)

	hub.BroadcastAll([]byte(`{"type":"story.created"}`))

	assert.Equal(t, `{"type":"story.created"}`, string(<-c1.Send))
	assert.Equal(t, `{"type":"story.created"}`, string(<-anon.Send))
}

func TestHub_UnregisterClosesSendOnce(t *testing.T) {
	hub := NewHub()
	c, err := hub.Register(1, nil)
	require.NoError(t, err)

	hub.UnregisterClient(c)
	hub.UnregisterClient(c)

	_, ok := <-c.Send
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Count())

	// Broadcasting after unregister must not touch the closed channel.
	hub.BroadcastAll([]byte("x"))
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	hub := NewHub()
	c, err := hub.Register(1, nil)
	require.NoError(t, err)

	for i := 0; i < sendBufferSize; i++ {
		require.True(t, c.TrySend([]byte("m")))
	}
	assert.False(t, c.TrySend([]byte("overflow")))
	assert.Len(t, c.Send, sendBufferSize)
}

func TestHub_ShutdownRefusesNewClients(t *testing.T) {
	hub := NewHub()
	c, err := hub.Register(1, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))

	_, ok := <-c.Send
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Count())

	_, err = hub.Register(2, nil)
	assert.ErrorIs(t, err, ErrHubClosed)
}
