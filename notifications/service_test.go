package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesBroadcast(t *testing.T) {
	s := NewService()
	defer s.Shutdown()

	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()

	s.NotifyMatterChanged("m1", "updated")

	select {
	case ev := <-ch:
		assert.Equal(t, EventMatterChanged, ev.Type)
		assert.NotZero(t, ev.Timestamp)
	case <-time.After(time.Second):
		t.Fatal("expected event")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := NewService()
	defer s.Shutdown()

	ch, unsubscribe := s.Subscribe()
	require.Equal(t, 1, s.SubscriberCount())

	unsubscribe()
	assert.Equal(t, 0, s.SubscriberCount())

	// Channel is closed after unsubscribe
	_, ok := <-ch
	assert.False(t, ok)

	// Double unsubscribe is safe
	unsubscribe()
}

func TestSlowSubscriberDoesNotBlockNotify(t *testing.T) {
	s := NewService()
	defer s.Shutdown()

	_, unsubscribe := s.Subscribe()
	defer unsubscribe()

	// Fill past the channel buffer; Notify must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			s.NotifyDisplayMode(i%2 == 0)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a slow subscriber")
	}
}
