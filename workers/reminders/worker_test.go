package reminders

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawmasters-app/lawmasters/appstate"
	"github.com/lawmasters-app/lawmasters/db"
	"github.com/lawmasters-app/lawmasters/notifications"
)

// fakeSource serves hearings from memory
type fakeSource struct {
	hearings []db.Hearing
	reminded map[string]bool
	titles   map[string]string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		reminded: make(map[string]bool),
		titles:   make(map[string]string),
	}
}

func (f *fakeSource) Unreminded(fromMs, toMs int64) ([]db.Hearing, error) {
	var out []db.Hearing
	for _, h := range f.hearings {
		if !f.reminded[h.ID] && h.ScheduledAt >= fromMs && h.ScheduledAt < toMs {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeSource) MarkReminded(id string) error {
	f.reminded[id] = true
	return nil
}

func (f *fakeSource) MatterTitle(matterID string) string {
	return f.titles[matterID]
}

func newTestWorker(t *testing.T, clock clockwork.Clock, source HearingSource) (*Worker, *appstate.Store, *notifications.Service) {
	t.Helper()

	store := appstate.New(appstate.Options{Clock: clock})
	notif := notifications.NewService()
	t.Cleanup(func() {
		notif.Shutdown()
		store.Close()
	})

	w := NewWorker(store, notif, 24, Options{Clock: clock, Source: source})
	return w, store, notif
}

func TestReminderPushedForHearingInWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	source := newFakeSource()
	source.titles["m1"] = "Sharma v. State"
	source.hearings = []db.Hearing{{
		ID:          "h1",
		MatterID:    "m1",
		ScheduledAt: clock.Now().Add(3 * time.Hour).UnixMilli(),
		Purpose:     "Final arguments",
	}}

	w, store, notif := newTestWorker(t, clock, source)

	events, unsubscribe := notif.Subscribe()
	defer unsubscribe()

	w.CheckOnce()

	snap := store.Snapshot()
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, appstate.KindInfo, snap.Notifications[0].Kind)
	assert.Equal(t, "Upcoming hearing", snap.Notifications[0].Title)
	assert.Contains(t, snap.Notifications[0].Message, "Sharma v. State")
	assert.Contains(t, snap.Notifications[0].Message, "Final arguments")

	select {
	case ev := <-events:
		assert.Equal(t, notifications.EventHearingReminder, ev.Type)
	default:
		t.Fatal("expected a hearing-reminder event")
	}
}

func TestReminderFiresOnlyOnce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	source := newFakeSource()
	source.hearings = []db.Hearing{{
		ID:          "h1",
		MatterID:    "m1",
		ScheduledAt: clock.Now().Add(time.Hour).UnixMilli(),
		Purpose:     "Evidence",
	}}

	w, store, _ := newTestWorker(t, clock, source)

	w.CheckOnce()
	w.CheckOnce()

	assert.Len(t, store.Snapshot().Notifications, 1)
	assert.True(t, source.reminded["h1"])
}

func TestHearingOutsideWindowIgnored(t *testing.T) {
	clock := clockwork.NewFakeClock()
	source := newFakeSource()
	source.hearings = []db.Hearing{
		{
			ID:          "past",
			MatterID:    "m1",
			ScheduledAt: clock.Now().Add(-time.Hour).UnixMilli(),
			Purpose:     "Already happened",
		},
		{
			ID:          "far",
			MatterID:    "m1",
			ScheduledAt: clock.Now().Add(48 * time.Hour).UnixMilli(),
			Purpose:     "Next week",
		},
	}

	w, store, _ := newTestWorker(t, clock, source)

	w.CheckOnce()

	assert.Empty(t, store.Snapshot().Notifications)
	assert.False(t, source.reminded["past"])
	assert.False(t, source.reminded["far"])
}

func TestHearingEntersWindowAsClockAdvances(t *testing.T) {
	clock := clockwork.NewFakeClock()
	source := newFakeSource()
	source.hearings = []db.Hearing{{
		ID:          "h1",
		MatterID:    "m1",
		ScheduledAt: clock.Now().Add(30 * time.Hour).UnixMilli(),
		Purpose:     "Cross-examination",
	}}

	w, store, _ := newTestWorker(t, clock, source)

	w.CheckOnce()
	assert.Empty(t, store.Snapshot().Notifications)

	clock.Advance(10 * time.Hour)
	w.CheckOnce()

	assert.Len(t, store.Snapshot().Notifications, 1)
	assert.True(t, source.reminded["h1"])
}

func TestUnknownMatterFallsBackToGenericTitle(t *testing.T) {
	clock := clockwork.NewFakeClock()
	source := newFakeSource()
	source.hearings = []db.Hearing{{
		ID:          "h1",
		MatterID:    "gone",
		ScheduledAt: clock.Now().Add(time.Hour).UnixMilli(),
		Purpose:     "Mention",
	}}

	w, store, _ := newTestWorker(t, clock, source)

	w.CheckOnce()

	snap := store.Snapshot()
	require.Len(t, snap.Notifications, 1)
	assert.Contains(t, snap.Notifications[0].Message, "a matter")
}
