package appstate

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawmasters-app/lawmasters/log"
)

// fakePersister is an in-memory Persister with fault injection
type fakePersister struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	loadErr error
	saveErr error
}

func (f *fakePersister) Load() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.data, nil
}

func (f *fakePersister) Save(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data = data
	f.saves++
	return nil
}

func (f *fakePersister) stored(t *testing.T) Persisted {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotNil(t, f.data)
	var p Persisted
	require.NoError(t, json.Unmarshal(f.data, &p))
	return p
}

func TestRehydrate_PartialPayloadKeepsDefaultsForAbsentFields(t *testing.T) {
	p := &fakePersister{data: []byte(`{"darkMode": true}`)}
	s := New(Options{Clock: clockwork.NewFakeClock(), Persister: p})
	defer s.Close()

	snap := s.Snapshot()
	assert.True(t, snap.DarkMode)
	assert.Equal(t, LanguageEnglish, snap.Language)
	assert.True(t, snap.BCISafeMode)
	assert.Equal(t, "Asia/Kolkata", snap.Timezone)
	assert.Equal(t, "DD/MM/YYYY", snap.DateFormat)
	assert.Empty(t, snap.RecentMatters)
	assert.Empty(t, snap.PinnedItems)
}

func TestRehydrate_MalformedPayloadFallsBackToDefaults(t *testing.T) {
	p := &fakePersister{data: []byte(`{"darkMode": tru`)}
	s := New(Options{Clock: clockwork.NewFakeClock(), Persister: p})
	defer s.Close()

	assert.Equal(t, DefaultPersisted(), s.Persisted())
}

func TestRehydrate_LoadErrorFallsBackToDefaults(t *testing.T) {
	p := &fakePersister{loadErr: errors.New("storage unavailable")}
	s := New(Options{Clock: clockwork.NewFakeClock(), Persister: p})
	defer s.Close()

	assert.Equal(t, DefaultPersisted(), s.Persisted())
}

func TestRehydrate_AppliesDarkModeSideEffect(t *testing.T) {
	applied := false
	p := &fakePersister{data: []byte(`{"darkMode": true}`)}
	s := New(Options{
		Clock:     clockwork.NewFakeClock(),
		Persister: p,
		ApplyMode: func(dark bool) error {
			applied = dark
			return nil
		},
	})
	defer s.Close()

	assert.True(t, applied)
}

func TestRehydrate_EnforcesCapsAndSetInvariants(t *testing.T) {
	payload := Persisted{
		Language:      "de",
		RecentMatters: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"},
		PinnedItems:   []string{"x", "y", "x"},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	s := New(Options{Clock: clockwork.NewFakeClock(), Persister: &fakePersister{data: data}})
	defer s.Close()

	snap := s.Snapshot()
	assert.Len(t, snap.RecentMatters, MaxRecentMatters)
	assert.Equal(t, []string{"x", "y"}, snap.PinnedItems)
	assert.Equal(t, LanguageEnglish, snap.Language)
}

func TestPersistence_OnlyPersistedFieldsAreWritten(t *testing.T) {
	p := &fakePersister{}
	s := New(Options{Clock: clockwork.NewFakeClock(), Persister: p})

	s.StartTimer("M1", "work")
	s.AddNotification(KindInfo, "t", "m")
	s.SetSidebarOpen(false)
	s.ToggleDarkMode()
	s.AddRecentMatter("M1")
	s.TogglePinnedItem("M1")
	s.Close()

	stored := p.stored(t)
	assert.True(t, stored.DarkMode)
	assert.Equal(t, []string{"M1"}, stored.RecentMatters)
	assert.Equal(t, []string{"M1"}, stored.PinnedItems)

	// Transient fields never reach the payload shape
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(p.data, &raw))
	assert.NotContains(t, raw, "activeTimer")
	assert.NotContains(t, raw, "notifications")
	assert.NotContains(t, raw, "sidebarOpen")
}

func TestPersistence_SaveFailureDoesNotCorruptMemoryState(t *testing.T) {
	p := &fakePersister{saveErr: errors.New("quota exceeded")}
	s := New(Options{Clock: clockwork.NewFakeClock(), Persister: p})

	s.ToggleDarkMode()
	s.AddRecentMatter("M1")
	s.Close()

	snap := s.Snapshot()
	assert.True(t, snap.DarkMode)
	assert.Equal(t, []string{"M1"}, snap.RecentMatters)
}

func TestPersistence_SurvivesRestart(t *testing.T) {
	p := &fakePersister{}
	clock := clockwork.NewFakeClock()

	s := New(Options{Clock: clock, Persister: p})
	s.SetLanguage(LanguageHindi)
	s.SetBCISafeMode(false)
	s.SetTimezone("Asia/Dubai")
	s.SetDateFormat("YYYY-MM-DD")
	s.StartTimer("M1", "work")
	s.AddNotification(KindInfo, "t", "m")
	s.SetSidebarOpen(false)
	s.Close()

	restarted := New(Options{Clock: clock, Persister: p})
	defer restarted.Close()

	snap := restarted.Snapshot()
	assert.Equal(t, LanguageHindi, snap.Language)
	assert.False(t, snap.BCISafeMode)
	assert.Equal(t, "Asia/Dubai", snap.Timezone)
	assert.Equal(t, "YYYY-MM-DD", snap.DateFormat)

	// Transient fields reset on every fresh load
	assert.True(t, snap.SidebarOpen)
	assert.Nil(t, snap.ActiveTimer)
	assert.Empty(t, snap.Notifications)
}

func TestSaver_CoalescesRapidMutations(t *testing.T) {
	p := &fakePersister{}
	s := newSaver(p, log.GetLogger("AppStateTest"))

	for i := 0; i < 100; i++ {
		s.Schedule([]byte(`{"darkMode":true}`))
	}
	s.Close()

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.LessOrEqual(t, p.saves, 100)
	assert.GreaterOrEqual(t, p.saves, 1)
	assert.JSONEq(t, `{"darkMode":true}`, string(p.data))
}

func TestSaver_LastWriteWins(t *testing.T) {
	p := &fakePersister{}
	s := newSaver(p, log.GetLogger("AppStateTest"))

	s.Schedule([]byte(`{"language":"en"}`))
	s.Schedule([]byte(`{"language":"hi"}`))
	s.Close()

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.JSONEq(t, `{"language":"hi"}`, string(p.data))
}
