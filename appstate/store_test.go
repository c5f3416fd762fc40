package appstate

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	s := New(Options{Clock: clock})
	t.Cleanup(s.Close)
	return s, clock
}

func TestDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	snap := s.Snapshot()

	assert.True(t, snap.SidebarOpen)
	assert.False(t, snap.DarkMode)
	assert.Equal(t, LanguageEnglish, snap.Language)
	assert.True(t, snap.BCISafeMode)
	assert.Equal(t, "Asia/Kolkata", snap.Timezone)
	assert.Equal(t, "DD/MM/YYYY", snap.DateFormat)
	assert.Nil(t, snap.ActiveTimer)
	assert.Empty(t, snap.Notifications)
	assert.Empty(t, snap.RecentMatters)
	assert.Empty(t, snap.PinnedItems)
}

func TestToggleDarkMode_AppliesSideEffect(t *testing.T) {
	var applied []bool
	clock := clockwork.NewFakeClock()
	s := New(Options{
		Clock: clock,
		ApplyMode: func(dark bool) error {
			applied = append(applied, dark)
			return nil
		},
	})
	defer s.Close()

	s.ToggleDarkMode()
	s.ToggleDarkMode()

	assert.Equal(t, []bool{true, false}, applied)
	assert.False(t, s.Snapshot().DarkMode)
}

func TestToggleDarkMode_SideEffectFailureDoesNotFailMutation(t *testing.T) {
	s := New(Options{
		Clock:     clockwork.NewFakeClock(),
		ApplyMode: func(bool) error { return errors.New("display surface unavailable") },
	})
	defer s.Close()

	s.ToggleDarkMode()
	assert.True(t, s.Snapshot().DarkMode)
}

func TestSetLanguage_RejectsUnknownCodes(t *testing.T) {
	s, _ := newTestStore(t)

	s.SetLanguage(LanguageHindi)
	assert.Equal(t, LanguageHindi, s.Snapshot().Language)

	s.SetLanguage("fr")
	assert.Equal(t, LanguageHindi, s.Snapshot().Language)
}

func TestTimer_StartReplacesWithoutMerging(t *testing.T) {
	s, clock := newTestStore(t)

	s.StartTimer("M1", "drafting")
	clock.Advance(10 * time.Minute)
	s.StartTimer("M2", "hearing prep")

	timer := s.Snapshot().ActiveTimer
	require.NotNil(t, timer)
	assert.Equal(t, "M2", timer.MatterID)
	assert.Equal(t, int64(0), timer.Duration, "prior accumulated duration is discarded")
	assert.Equal(t, clock.Now().UnixMilli(), timer.StartTime)
}

func TestTimer_PauseFoldsElapsedAndRestartsClock(t *testing.T) {
	s, clock := newTestStore(t)

	s.StartTimer("M1", "work")
	clock.Advance(90 * time.Second)
	s.PauseTimer()

	timer := s.Snapshot().ActiveTimer
	require.NotNil(t, timer)
	assert.Equal(t, int64(90_000), timer.Duration)
	assert.Equal(t, clock.Now().UnixMilli(), timer.StartTime, "clock restarts at pause")

	// Pausing again with no elapsed time folds in zero
	s.PauseTimer()
	timer = s.Snapshot().ActiveTimer
	require.NotNil(t, timer)
	assert.Equal(t, int64(90_000), timer.Duration)
}

func TestTimer_StopClearsRegardlessOfElapsed(t *testing.T) {
	s, clock := newTestStore(t)

	s.StartTimer("M1", "work")
	clock.Advance(3 * time.Hour)
	s.StopTimer()
	assert.Nil(t, s.Snapshot().ActiveTimer)

	// Stop with no active timer is a no-op
	s.StopTimer()
	assert.Nil(t, s.Snapshot().ActiveTimer)
}

func TestTimer_OperationsWithoutActiveTimerAreNoOps(t *testing.T) {
	s, _ := newTestStore(t)

	s.PauseTimer()
	s.UpdateTimerDuration(5000)
	assert.Nil(t, s.Snapshot().ActiveTimer)
}

func TestTimer_UpdateDurationOverwrites(t *testing.T) {
	s, clock := newTestStore(t)

	s.StartTimer("M1", "work")
	clock.Advance(time.Minute)
	s.UpdateTimerDuration(42)

	timer := s.Snapshot().ActiveTimer
	require.NotNil(t, timer)
	assert.Equal(t, int64(42), timer.Duration)
}

func TestTimer_RejectsEmptyInputs(t *testing.T) {
	s, _ := newTestStore(t)

	s.StartTimer("", "work")
	s.StartTimer("M1", "")
	assert.Nil(t, s.Snapshot().ActiveTimer)
}

func TestNotifications_NewestFirstCappedAt50(t *testing.T) {
	s, _ := newTestStore(t)

	var firstID string
	for i := 0; i < MaxNotifications+1; i++ {
		id := s.AddNotification(KindInfo, fmt.Sprintf("n%d", i), "msg")
		if i == 0 {
			firstID = id
		}
	}

	snap := s.Snapshot()
	require.Len(t, snap.Notifications, MaxNotifications)
	assert.Equal(t, "n50", snap.Notifications[0].Title, "newest first")
	for _, n := range snap.Notifications {
		assert.NotEqual(t, firstID, n.ID, "oldest entry dropped after 51 adds")
	}
}

func TestNotifications_UniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.AddNotification(KindSuccess, "t", "m")
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestMarkNotificationRead(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.AddNotification(KindWarning, "deadline", "limitation period approaching")
	s.AddNotification(KindError, "sync failed", "eCourts lookup failed")

	s.MarkNotificationRead(id)

	snap := s.Snapshot()
	require.Len(t, snap.Notifications, 2)
	assert.False(t, snap.Notifications[0].Read)
	assert.True(t, snap.Notifications[1].Read)
	assert.Equal(t, 1, snap.UnreadCount())
}

func TestMarkNotificationRead_UnknownIDLeavesListUnchanged(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddNotification(KindInfo, "a", "1")
	s.AddNotification(KindInfo, "b", "2")
	before := s.Snapshot().Notifications

	notified := false
	defer s.Subscribe(func(Snapshot) { notified = true })()
	s.MarkNotificationRead("no-such-id")

	assert.Equal(t, before, s.Snapshot().Notifications)
	assert.False(t, notified, "no mutation occurs for unknown ids")
}

func TestClearNotifications(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddNotification(KindInfo, "a", "1")
	s.ClearNotifications()
	assert.Empty(t, s.Snapshot().Notifications)
}

func TestRecentMatters_MoveToFrontDedupedCapped(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < 12; i++ {
		s.AddRecentMatter(fmt.Sprintf("M%d", i))
	}
	// Revisit an old matter: moves to front, no duplicate
	s.AddRecentMatter("M5")

	recents := s.Snapshot().RecentMatters
	require.Len(t, recents, MaxRecentMatters)
	assert.Equal(t, "M5", recents[0])

	seen := make(map[string]bool)
	for _, id := range recents {
		assert.False(t, seen[id], "no duplicates")
		seen[id] = true
	}
}

func TestRecentMatters_RevisitDoesNotGrowList(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddRecentMatter("M1")
	s.AddRecentMatter("M2")
	s.AddRecentMatter("M1")

	assert.Equal(t, []string{"M1", "M2"}, s.Snapshot().RecentMatters)
}

func TestTogglePinnedItem_SelfInverse(t *testing.T) {
	s, _ := newTestStore(t)

	s.TogglePinnedItem("M1")
	assert.True(t, s.IsPinned("M1"))

	s.TogglePinnedItem("M1")
	assert.False(t, s.IsPinned("M1"))
	assert.Empty(t, s.Snapshot().PinnedItems)
}

func TestObservers_SeePostMutationStateSynchronously(t *testing.T) {
	s, _ := newTestStore(t)

	var seen []bool
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		seen = append(seen, snap.SidebarOpen)
	})

	s.SetSidebarOpen(false)
	require.Equal(t, []bool{false}, seen, "observer runs before the mutating call returns")

	unsubscribe()
	s.SetSidebarOpen(true)
	assert.Len(t, seen, 1, "unsubscribed observer is not notified")
}

func TestObservers_MultipleSubscribers(t *testing.T) {
	s, _ := newTestStore(t)

	a, b := 0, 0
	defer s.Subscribe(func(Snapshot) { a++ })()
	defer s.Subscribe(func(Snapshot) { b++ })()

	s.ToggleDarkMode()
	s.AddRecentMatter("M1")

	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddRecentMatter("M1")
	snap := s.Snapshot()
	snap.RecentMatters[0] = "mutated"
	snap.DarkMode = true

	assert.Equal(t, []string{"M1"}, s.Snapshot().RecentMatters)
	assert.False(t, s.Snapshot().DarkMode)
}
