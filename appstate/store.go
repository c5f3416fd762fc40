package appstate

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/lawmasters-app/lawmasters/log"
)

// Observer is called synchronously after each mutation with the
// post-mutation snapshot. Observers must not call back into the store;
// re-entrant mutation during notification is disallowed.
type Observer func(Snapshot)

// ModeApplier applies the visual dark-mode side effect on the host display
// surface. It is best-effort: an error never fails the state mutation.
type ModeApplier func(dark bool) error

// Options configures a Store
type Options struct {
	// Clock supplies timestamps for timers and notifications.
	// Defaults to the real clock when nil.
	Clock clockwork.Clock

	// Persister provides durable storage for the persisted subset.
	// Nil disables persistence (useful in tests).
	Persister Persister

	// ApplyMode is invoked on dark-mode toggles and at rehydrate time
	// when the persisted darkMode is true. May be nil.
	ApplyMode ModeApplier
}

type observerEntry struct {
	id int
	fn Observer
}

// Store is the application preference and session state container.
// It holds one mutable state object, exposes atomic mutation operations,
// and notifies observers synchronously after each mutation.
//
// Mutations are serialized with an internal mutex; operations are total
// and never return errors (invalid input is a silent no-op).
type Store struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	logger zerolog.Logger

	// persisted subset, rehydrated at construction
	persisted Persisted

	// transient fields, reset on every fresh load
	sidebarOpen   bool
	activeTimer   *Timer
	notifications []Notification

	observers []observerEntry
	nextObsID int
	applyMode ModeApplier
	saver     *saver
}

// New creates a Store with initial values, rehydrating the persisted
// subset from the Persister if one is configured. Rehydration failures
// fall back to defaults and never fail construction.
func New(opts Options) *Store {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &Store{
		clock:       clock,
		logger:      log.GetLogger("AppState"),
		persisted:   DefaultPersisted(),
		sidebarOpen: true,
		applyMode:   opts.ApplyMode,
	}

	if opts.Persister != nil {
		s.rehydrate(opts.Persister)
		s.saver = newSaver(opts.Persister, s.logger)
	}

	// Reapply the visual mode if dark mode survived the restart
	if s.persisted.DarkMode {
		s.applyModeBestEffort(true)
	}

	return s
}

// rehydrate loads the persisted subset, falling back to defaults for
// malformed payloads. Partial payloads keep defaults for absent fields.
func (s *Store) rehydrate(p Persister) {
	data, err := p.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load persisted state, using defaults")
		return
	}
	if len(data) == 0 {
		return
	}
	s.persisted = decodePersisted(data, s.logger)
}

// Close flushes any pending persistence write and stops the saver.
// The store itself has no destructor; it is torn down with the process.
func (s *Store) Close() {
	if s.saver != nil {
		s.saver.Close()
	}
}

// Subscribe registers an observer and returns an unsubscribe function.
// Observers registered before a mutation see the post-mutation snapshot
// before the mutating call returns.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.observers {
			if e.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Persisted returns a copy of the current persisted subset
func (s *Store) Persisted() Persisted {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePersisted(s.persisted)
}

// SetSidebarOpen sets the sidebar visibility. Idempotent.
func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = open
	s.commitLocked(false)
}

// ToggleDarkMode flips dark mode and applies the visual-mode side effect.
// The side effect is best-effort and never fails the mutation.
func (s *Store) ToggleDarkMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persisted.DarkMode = !s.persisted.DarkMode
	s.applyModeBestEffort(s.persisted.DarkMode)
	s.commitLocked(true)
}

// SetLanguage sets the interface language ("en" or "hi").
// Unknown codes are ignored.
func (s *Store) SetLanguage(lang string) {
	if lang != LanguageEnglish && lang != LanguageHindi {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persisted.Language = lang
	s.commitLocked(true)
}

// SetBCISafeMode sets the compliance-mode flag. No cross-field validation;
// enforcement happens elsewhere.
func (s *Store) SetBCISafeMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persisted.BCISafeMode = enabled
	s.commitLocked(true)
}

// SetTimezone sets the display timezone preference
func (s *Store) SetTimezone(tz string) {
	if tz == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persisted.Timezone = tz
	s.commitLocked(true)
}

// SetDateFormat sets the display date-format preference
func (s *Store) SetDateFormat(format string) {
	if format == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persisted.DateFormat = format
	s.commitLocked(true)
}

// StartTimer starts a work timer for a matter, replacing any running
// timer. The previous timer's accumulated duration is discarded, not merged.
func (s *Store) StartTimer(matterID, description string) {
	if matterID == "" || description == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTimer = &Timer{
		MatterID:    matterID,
		Description: description,
		StartTime:   s.clock.Now().UnixMilli(),
		Duration:    0,
	}
	s.commitLocked(false)
}

// PauseTimer folds elapsed wall time into the timer's duration and
// restarts the clock. There is no distinct paused state: the timer stays
// "running" with a fresh StartTime. No-op without an active timer.
func (s *Store) PauseTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeTimer == nil {
		return
	}
	now := s.clock.Now().UnixMilli()
	s.activeTimer.Duration += now - s.activeTimer.StartTime
	s.activeTimer.StartTime = now
	s.commitLocked(false)
}

// StopTimer clears the active timer. No-op if none is running.
func (s *Store) StopTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeTimer == nil {
		return
	}
	s.activeTimer = nil
	s.commitLocked(false)
}

// UpdateTimerDuration overwrites the active timer's accumulated duration.
// No-op without an active timer.
func (s *Store) UpdateTimerDuration(durationMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeTimer == nil {
		return
	}
	s.activeTimer.Duration = durationMs
	s.commitLocked(false)
}

// AddNotification prepends a notification with a fresh unique id and the
// current timestamp, truncating the list to the newest MaxNotifications.
// Returns the generated id.
func (s *Store) AddNotification(kind NotificationKind, title, message string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		Timestamp: s.clock.Now().UnixMilli(),
		Read:      false,
	}

	s.notifications = append([]Notification{n}, s.notifications...)
	if len(s.notifications) > MaxNotifications {
		// Oldest entries beyond the cap are dropped, not archived
		s.notifications = s.notifications[:MaxNotifications]
	}
	s.commitLocked(false)
	return n.ID
}

// MarkNotificationRead marks the matching entry read. Unknown ids are a no-op.
func (s *Store) MarkNotificationRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			if s.notifications[i].Read {
				return
			}
			s.notifications[i].Read = true
			s.commitLocked(false)
			return
		}
	}
}

// ClearNotifications empties the notification list
func (s *Store) ClearNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notifications) == 0 {
		return
	}
	s.notifications = nil
	s.commitLocked(false)
}

// AddRecentMatter records a matter visit with move-to-front semantics:
// an existing occurrence is removed before re-inserting at the head,
// and the list is capped at MaxRecentMatters.
func (s *Store) AddRecentMatter(matterID string) {
	if matterID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recents := make([]string, 0, len(s.persisted.RecentMatters)+1)
	recents = append(recents, matterID)
	for _, id := range s.persisted.RecentMatters {
		if id != matterID {
			recents = append(recents, id)
		}
	}
	if len(recents) > MaxRecentMatters {
		recents = recents[:MaxRecentMatters]
	}
	s.persisted.RecentMatters = recents
	s.commitLocked(true)
}

// TogglePinnedItem adds the item to the pinned set if absent, removes it
// if present. Applying it twice restores the original membership.
func (s *Store) TogglePinnedItem(itemID string) {
	if itemID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.persisted.PinnedItems {
		if id == itemID {
			s.persisted.PinnedItems = append(
				s.persisted.PinnedItems[:i], s.persisted.PinnedItems[i+1:]...)
			s.commitLocked(true)
			return
		}
	}
	s.persisted.PinnedItems = append(s.persisted.PinnedItems, itemID)
	s.commitLocked(true)
}

// IsPinned reports whether an item is currently pinned
func (s *Store) IsPinned(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.persisted.PinnedItems {
		if id == itemID {
			return true
		}
	}
	return false
}

// commitLocked finishes a mutation: notifies observers synchronously and,
// when the persisted subset changed, schedules a write-behind save.
// The in-memory mutation has already succeeded at this point; persistence
// failures are logged by the saver and never surface to the caller.
func (s *Store) commitLocked(persistedChanged bool) {
	snap := s.snapshotLocked()

	for _, e := range s.observers {
		e.fn(snap)
	}

	if persistedChanged && s.saver != nil {
		data, err := encodePersisted(s.persisted)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to encode persisted state")
			return
		}
		s.saver.Schedule(data)
	}
}

func (s *Store) applyModeBestEffort(dark bool) {
	if s.applyMode == nil {
		return
	}
	if err := s.applyMode(dark); err != nil {
		s.logger.Warn().Err(err).Bool("dark", dark).Msg("display mode side effect failed")
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		SidebarOpen:   s.sidebarOpen,
		DarkMode:      s.persisted.DarkMode,
		Language:      s.persisted.Language,
		BCISafeMode:   s.persisted.BCISafeMode,
		Timezone:      s.persisted.Timezone,
		DateFormat:    s.persisted.DateFormat,
		Notifications: append([]Notification{}, s.notifications...),
		RecentMatters: append([]string{}, s.persisted.RecentMatters...),
		PinnedItems:   append([]string{}, s.persisted.PinnedItems...),
	}
	if s.activeTimer != nil {
		t := *s.activeTimer
		snap.ActiveTimer = &t
	}
	return snap
}

func clonePersisted(p Persisted) Persisted {
	p.RecentMatters = append([]string{}, p.RecentMatters...)
	p.PinnedItems = append([]string{}, p.PinnedItems...)
	return p
}
