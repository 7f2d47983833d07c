package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveIdentity(t *testing.T, ch <-chan *Identity) *Identity {
	t.Helper()
	select {
	case id := <-ch:
		return id
	case <-time.After(time.Second):
		t.Fatal("no identity delivered")
		return nil
	}
}

func TestHub_WatchDeliversCurrentImmediately(t *testing.T) {
	hub := NewHub()
	hub.SetIdentity(&Identity{UserID: "u1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	id := receiveIdentity(t, hub.Watch(ctx))
	require.NotNil(t, id)
	assert.Equal(t, "u1", id.UserID)
}

func TestHub_WatchStartsWithNoSession(t *testing.T) {
	hub := NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Nil(t, receiveIdentity(t, hub.Watch(ctx)))
}

func TestHub_NotifiesOnChange(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := hub.Watch(ctx)
	receiveIdentity(t, ch) // initial nil

	hub.SetIdentity(&Identity{UserID: "u1"})

	id := receiveIdentity(t, ch)
	require.NotNil(t, id)
	assert.Equal(t, "u1", id.UserID)
}

func TestHub_SameUserDoesNotNotifyAgain(t *testing.T) {
	hub := NewHub()
	hub.SetIdentity(&Identity{UserID: "u1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := hub.Watch(ctx)
	receiveIdentity(t, ch) // initial u1

	hub.SetIdentity(&Identity{UserID: "u1"})

	select {
	case id := <-ch:
		t.Fatalf("unexpected notification for unchanged user: %v", id)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ClearNotifiesNil(t *testing.T) {
	hub := NewHub()
	hub.SetIdentity(&Identity{UserID: "u1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := hub.Watch(ctx)
	receiveIdentity(t, ch) // initial u1

	hub.Clear()

	assert.Nil(t, receiveIdentity(t, ch))
	assert.Nil(t, hub.Current())
}

func TestHub_SlowSubscriberSeesLatestOnly(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := hub.Watch(ctx)
	receiveIdentity(t, ch) // initial nil

	hub.SetIdentity(&Identity{UserID: "u1"})
	hub.SetIdentity(&Identity{UserID: "u2"})

	id := receiveIdentity(t, ch)
	require.NotNil(t, id)
	assert.Equal(t, "u2", id.UserID)
}

func TestHub_CancelClosesStream(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	ch := hub.Watch(ctx)
	receiveIdentity(t, ch) // initial nil

	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open, "stream must close after cancellation")
	case <-time.After(time.Second):
		t.Fatal("stream did not close after cancellation")
	}

	// A change after cancellation must not panic or deliver.
	hub.SetIdentity(&Identity{UserID: "u1"})
}

func TestHub_MultipleSubscribers(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := hub.Watch(ctx)
	second := hub.Watch(ctx)
	receiveIdentity(t, first)
	receiveIdentity(t, second)

	hub.SetIdentity(&Identity{UserID: "u1"})

	assert.Equal(t, "u1", receiveIdentity(t, first).UserID)
	assert.Equal(t, "u1", receiveIdentity(t, second).UserID)
}
