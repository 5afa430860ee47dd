package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventBlogCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventBlogCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventBlogDeleted, func(context.Context, Event) error {
		t.Fatal("unexpected delivery")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventBlogCreated, "b1", Actor{UserID: "u1"}, BlogPayload{Title: "t"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"first:b1", "second:b1"}, got)
}

func TestDispatcher_KeepsGoingAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	called := false
	d.Subscribe(EventUserCreated, func(context.Context, Event) error { return boom })
	d.Subscribe(EventUserCreated, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventUserCreated, "u1", Actor{}, nil))
	assert.ErrorIs(t, err, boom)
	assert.True(t, called)
}

func TestNewEvent_Stamped(t *testing.T) {
	e := NewEvent(EventBlogUpdated, "b1", Actor{}, nil)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, EventBlogUpdated, e.Type)
}
