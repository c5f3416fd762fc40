package meili

import (
	"sync"
	"time"

	"github.com/lawmasters-app/lawmasters/db"
	"github.com/lawmasters-app/lawmasters/log"
	"github.com/lawmasters-app/lawmasters/vendors"
)

const (
	// syncBatchSize is the max number of matters to sync per tick
	syncBatchSize = 50

	// syncInterval is how often we poll for dirty matters
	syncInterval = 10 * time.Second

	// initialDelay before the first poll (let the rest of the stack warm up)
	initialDelay = 5 * time.Second
)

var logger = log.GetLogger("MeiliSync")

// SyncWorker pushes search-dirty matters to Meilisearch.
type SyncWorker struct {
	stopChan chan struct{}
	wg       sync.WaitGroup

	// nudgeChan allows immediate sync after a matter changes
	nudgeChan chan struct{}
}

// NewSyncWorker creates a new Meilisearch sync worker.
func NewSyncWorker() *SyncWorker {
	return &SyncWorker{
		stopChan:  make(chan struct{}),
		nudgeChan: make(chan struct{}, 1), // buffered so nudge never blocks
	}
}

// Start begins the sync loop.
func (w *SyncWorker) Start() {
	w.wg.Add(1)
	go w.loop()
	logger.Info().Msg("meili sync worker started")
}

// Stop signals the worker to exit and waits for it to finish.
func (w *SyncWorker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	logger.Info().Msg("meili sync worker stopped")
}

// Nudge asks the worker to run a sync cycle as soon as possible.
// Non-blocking — if a nudge is already pending it is a no-op.
func (w *SyncWorker) Nudge() {
	select {
	case w.nudgeChan <- struct{}{}:
	default:
		// already nudged
	}
}

// loop is the main goroutine.
func (w *SyncWorker) loop() {
	defer w.wg.Done()

	// Wait a bit before first sync to let other services initialize
	select {
	case <-time.After(initialDelay):
	case <-w.stopChan:
		return
	}

	// Run an initial full sync on startup
	w.syncDirty()

	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.syncDirty()
		case <-w.nudgeChan:
			w.syncDirty()
		case <-w.stopChan:
			return
		}
	}
}

// syncDirty fetches dirty matters from SQLite and pushes them to Meilisearch.
// Processes in batches until all dirty matters are synced.
func (w *SyncWorker) syncDirty() {
	meili := vendors.GetMeiliClient()
	if meili == nil {
		// Meilisearch not configured — nothing to do
		return
	}

	totalIndexed := 0

	for {
		select {
		case <-w.stopChan:
			return
		default:
		}

		matters, err := db.DirtyMatters(syncBatchSize)
		if err != nil {
			logger.Error().Err(err).Msg("failed to list dirty matters")
			return
		}

		if len(matters) == 0 {
			break
		}

		if err := meili.IndexMatters(matters); err != nil {
			logger.Warn().Err(err).Int("count", len(matters)).Msg("failed to index matters")
			return
		}

		ids := make([]string, len(matters))
		for i, m := range matters {
			ids[i] = m.ID
		}
		if err := db.MarkMattersSynced(ids); err != nil {
			logger.Error().Err(err).Msg("failed to clear search-dirty flags")
			return
		}

		totalIndexed += len(matters)

		// If this batch was smaller than the limit, we've drained the backlog
		if len(matters) < syncBatchSize {
			break
		}
	}

	if totalIndexed > 0 {
		logger.Info().Int("indexed", totalIndexed).Msg("sync cycle complete")
	}
}
