package notifications

import (
	"sync"
	"time"
)

// EventType represents the type of notification event
type EventType string

const (
	EventConnected       EventType = "connected"
	EventStoreChanged    EventType = "store-changed"
	EventDisplayMode     EventType = "display-mode"
	EventMatterChanged   EventType = "matter-changed"
	EventHearingReminder EventType = "hearing-reminder"
	EventAnalysisUpdated EventType = "analysis-updated"
)

// Event represents a notification event
type Event struct {
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// Service manages SSE subscriptions and event broadcasting
type Service struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	done        chan struct{}
}

// NewService creates a new notification service
func NewService() *Service {
	return &Service{
		subscribers: make(map[chan Event]struct{}),
		done:        make(chan struct{}),
	}
}

// Subscribe creates a new subscription channel
// Returns the event channel and an unsubscribe function
func (s *Service) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 10)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		// Only close if the channel is still in subscribers map
		if _, exists := s.subscribers[ch]; exists {
			delete(s.subscribers, ch)
			close(ch)
		}
	}

	return ch, unsubscribe
}

// Notify broadcasts an event to all subscribers
func (s *Service) Notify(event Event) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, skip this subscriber
		}
	}
}

// NotifyStoreChanged broadcasts the latest session-store snapshot
func (s *Service) NotifyStoreChanged(snapshot any) {
	s.Notify(Event{
		Type:      EventStoreChanged,
		Timestamp: time.Now().UnixMilli(),
		Data:      snapshot,
	})
}

// NotifyDisplayMode announces a dark-mode flip so every open tab follows
func (s *Service) NotifyDisplayMode(dark bool) {
	s.Notify(Event{
		Type:      EventDisplayMode,
		Timestamp: time.Now().UnixMilli(),
		Data: map[string]interface{}{
			"darkMode": dark,
		},
	})
}

// NotifyMatterChanged sends a matter-changed event
// Used when matters, parties, or hearings are created, updated, or deleted
func (s *Service) NotifyMatterChanged(matterID string, operation string) {
	s.Notify(Event{
		Type:      EventMatterChanged,
		Timestamp: time.Now().UnixMilli(),
		Data: map[string]interface{}{
			"matterId":  matterID,
			"operation": operation,
		},
	})
}

// NotifyHearingReminder sends a hearing-reminder event
func (s *Service) NotifyHearingReminder(hearingID, matterID string, scheduledAt int64) {
	s.Notify(Event{
		Type:      EventHearingReminder,
		Timestamp: time.Now().UnixMilli(),
		Data: map[string]interface{}{
			"hearingId":   hearingID,
			"matterId":    matterID,
			"scheduledAt": scheduledAt,
		},
	})
}

// NotifyAnalysisUpdated sends an analysis-updated event
// Used when an analysis job changes status (running, done, failed)
func (s *Service) NotifyAnalysisUpdated(analysisID string, status string) {
	s.Notify(Event{
		Type:      EventAnalysisUpdated,
		Timestamp: time.Now().UnixMilli(),
		Data: map[string]interface{}{
			"analysisId": analysisID,
			"status":     status,
		},
	})
}

// Shutdown closes the notification service
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.done)

	// Close all subscriber channels
	for ch := range s.subscribers {
		close(ch)
	}
	s.subscribers = make(map[chan Event]struct{})
}

// SubscriberCount returns the number of active subscribers
func (s *Service) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
