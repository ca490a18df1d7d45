package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case msg := <-c.Send:
		var ev Event
		require.NoError(t, json.Unmarshal(msg, &ev))
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestNotifier_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.Publish(context.Background(), []byte("x")))
	assert.NoError(t, n.StartSubscriber(context.Background(), func(string) { t.Fatal("unexpected message") }))
}

func TestNotifier_PublishSubscribe(t *testing.T) {
	_, rdb := newRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 1)
	require.NoError(t, n.StartSubscriber(ctx, func(payload string) { got <- payload }))
	require.NoError(t, n.Publish(ctx, []byte(`{"type":"story.liked"}`)))

	select {
	case p := <-got:
		assert.Equal(t, `{"type":"story.liked"}`, p)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published message")
	}
}

func TestNotifier_SubscriberSurvivesPanic(t *testing.T) {
	_, rdb := newRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 2)
	require.NoError(t, n.StartSubscriber(ctx, func(payload string) {
		if payload == "boom" {
			panic("bad payload")
		}
		got <- payload
	}))

	require.NoError(t, n.Publish(ctx, []byte("boom")))
	require.NoError(t, n.Publish(ctx, []byte("ok")))

	select {
	case p := <-got:
		assert.Equal(t, "ok", p)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber stopped after panic")
	}
}

func TestFeed_LocalDeliveryWithoutRedis(t *testing.T) {
	hub := NewHub()
	feed := NewFeed(hub, NewNotifier(nil))
	require.NoError(t, feed.Start(context.Background()))

	c, err := hub.Register(0, nil)
	require.NoError(t, err)

	feed.Publish(context.Background(), EventStoryCreated, map[string]any{"id": 1})

	ev := receive(t, c)
	assert.Equal(t, EventStoryCreated, ev.Type)
	assert.Equal(t, map[string]any{"id": float64(1)}, ev.Payload)
}

func TestFeed_RelaysThroughRedisOnce(t *testing.T) {
	_, rdb := newRedis(t)
	hub := NewHub()
	feed := NewFeed(hub, NewNotifier(rdb))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, feed.Start(ctx))

	c, err := hub.Register(7, nil)
	require.NoError(t, err)

	feed.Publish(ctx, EventCommentDeleted, map[string]any{"id": 3, "story_id": 1})

	ev := receive(t, c)
	assert.Equal(t, EventCommentDeleted, ev.Type)

	select {
	case extra := <-c.Send:
		t.Fatalf("event delivered twice: %s", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFeed_FallsBackToLocalWhenRedisDown(t *testing.T) {
	mr, rdb := newRedis(t)
	hub := NewHub()
	feed := NewFeed(hub, NewNotifier(rdb))

	c, err := hub.Register(1, nil)
	require.NoError(t, err)

	mr.Close()
	feed.Publish(context.Background(), EventStoryDeleted, map[string]any{"id": 9})

	ev := receive(t, c)
	assert.Equal(t, EventStoryDeleted, ev.Type)
}
