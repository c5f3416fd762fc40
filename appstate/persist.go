package appstate

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Persister provides durable storage for the persisted subset of session
// state, addressed by StorageKey. Load returns nil data when nothing has
// been stored yet.
type Persister interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// encodePersisted serializes the persisted subset for durable storage
func encodePersisted(p Persisted) ([]byte, error) {
	return json.Marshal(p)
}

// decodePersisted deserializes a stored payload, starting from defaults so
// a partial payload keeps the documented initial value for every absent
// field. A malformed payload falls back to full defaults; rehydration
// never fails.
func decodePersisted(data []byte, logger zerolog.Logger) Persisted {
	p := DefaultPersisted()
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Warn().Err(err).Msg("malformed persisted state, using defaults")
		return DefaultPersisted()
	}
	if p.RecentMatters == nil {
		p.RecentMatters = []string{}
	}
	if p.PinnedItems == nil {
		p.PinnedItems = []string{}
	}
	// Re-apply the caps and set invariants in case the payload predates them
	if len(p.RecentMatters) > MaxRecentMatters {
		p.RecentMatters = p.RecentMatters[:MaxRecentMatters]
	}
	p.PinnedItems = dedupe(p.PinnedItems)
	if p.Language != LanguageEnglish && p.Language != LanguageHindi {
		p.Language = LanguageEnglish
	}
	return p
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// saver is a write-behind persistence loop. Rapid mutations coalesce:
// only the latest scheduled payload is written (last-write-wins), so the
// durable copy converges to the newest state without blocking mutations.
type saver struct {
	p      Persister
	logger zerolog.Logger

	mu      sync.Mutex
	latest  []byte
	dirty   chan struct{} // buffered(1): a pending write exists
	stop    chan struct{}
	stopped atomic.Bool
	wg      sync.WaitGroup
}

func newSaver(p Persister, logger zerolog.Logger) *saver {
	s := &saver{
		p:      p,
		logger: logger,
		dirty:  make(chan struct{}, 1),
		stop:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.loop()
	return s
}

// Schedule queues a payload for write-behind persistence. Never blocks;
// an older unwritten payload is replaced by the newer one.
func (s *saver) Schedule(data []byte) {
	if s.stopped.Load() {
		return
	}
	s.mu.Lock()
	s.latest = data
	s.mu.Unlock()

	select {
	case s.dirty <- struct{}{}:
	default:
		// a write is already pending; it will pick up the latest payload
	}
}

// Close flushes any pending write and stops the loop
func (s *saver) Close() {
	if s.stopped.Swap(true) {
		return
	}
	close(s.stop)
	s.wg.Wait()
	s.flush()
}

func (s *saver) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.dirty:
			s.flush()
		case <-s.stop:
			return
		}
	}
}

func (s *saver) flush() {
	s.mu.Lock()
	data := s.latest
	s.latest = nil
	s.mu.Unlock()

	if data == nil {
		return
	}
	if err := s.p.Save(data); err != nil {
		// In-memory state stays authoritative; persistence is best-effort
		s.logger.Warn().Err(err).Msg("failed to persist app state")
	}
}
