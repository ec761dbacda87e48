package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bank-support/internal/events"
)

// TestPublishInvokesSubscribers verifies handlers receive the published event.
func TestPublishInvokesSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var received []events.Event
	dispatcher.Subscribe(events.EventComplaintSubmitted, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	event := events.Event{Type: events.EventComplaintSubmitted, SubjectID: "c-1"}
	require.NoError(t, dispatcher.Publish(context.Background(), event))

	require.Len(t, received, 1)
	assert.Equal(t, "c-1", received[0].SubjectID)
}

// TestPublishIgnoresOtherTypes verifies a handler only sees its own type.
func TestPublishIgnoresOtherTypes(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(events.EventAccountDeleted, func(_ context.Context, _ events.Event) error {
		calls++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(),
		events.Event{Type: events.EventComplaintSubmitted}))

	assert.Zero(t, calls)
}

// TestPublishContinuesAfterHandlerError verifies one failing handler does not
// starve the rest.
func TestPublishContinuesAfterHandlerError(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	dispatcher.Subscribe(events.EventComplaintStatusChanged, func(_ context.Context, _ events.Event) error {
		return errors.New("handler failed")
	})

	secondRan := false
	dispatcher.Subscribe(events.EventComplaintStatusChanged, func(_ context.Context, _ events.Event) error {
		secondRan = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(),
		events.Event{Type: events.EventComplaintStatusChanged}))

	assert.True(t, secondRan)
}
