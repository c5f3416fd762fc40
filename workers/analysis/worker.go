package analysis

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/lawmasters-app/lawmasters/db"
	"github.com/lawmasters-app/lawmasters/log"
	"github.com/lawmasters-app/lawmasters/notifications"
	"github.com/lawmasters-app/lawmasters/vendors"
)

const (
	// MaxAttempts is the retry budget for a single analysis job
	MaxAttempts = 3

	// pollInterval is how often the supervisor checks for queued jobs
	pollInterval = 15 * time.Second
)

var logger = log.GetLogger("AnalysisWorker")

// Worker runs queued document analyses through OpenAI
type Worker struct {
	workers int
	notif   *notifications.Service

	stopChan chan struct{}
	wg       sync.WaitGroup

	// nudgeChan wakes the workers as soon as a job is enqueued
	nudgeChan chan struct{}
}

// NewWorker creates an analysis worker pool
func NewWorker(workers int, notifService *notifications.Service) *Worker {
	if workers <= 0 {
		workers = 2
	}

	return &Worker{
		workers:   workers,
		notif:     notifService,
		stopChan:  make(chan struct{}),
		nudgeChan: make(chan struct{}, 1),
	}
}

// Start begins processing analyses
func (w *Worker) Start() {
	// Recover jobs orphaned by an unclean shutdown
	requeued, err := db.RequeueStuckAnalyses()
	if err != nil {
		logger.Error().Err(err).Msg("failed to requeue stuck analyses")
	} else if requeued > 0 {
		logger.Info().Int64("count", requeued).Msg("requeued stuck analyses")
	}

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.processLoop()
	}

	logger.Info().Int("workers", w.workers).Msg("analysis worker started")
}

// Stop signals the workers to exit and waits for them to finish
func (w *Worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	logger.Info().Msg("analysis worker stopped")
}

// Nudge asks the pool to check the queue as soon as possible.
// Non-blocking — if a nudge is already pending it is a no-op.
func (w *Worker) Nudge() {
	select {
	case w.nudgeChan <- struct{}{}:
	default:
		// already nudged
	}
}

func (w *Worker) processLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		w.drainQueue()

		select {
		case <-ticker.C:
		case <-w.nudgeChan:
		case <-w.stopChan:
			return
		}
	}
}

// drainQueue claims and processes jobs until the queue is empty
func (w *Worker) drainQueue() {
	for {
		select {
		case <-w.stopChan:
			return
		default:
		}

		job, err := db.ClaimNextAnalysis()
		if err != nil {
			logger.Error().Err(err).Msg("failed to claim analysis")
			return
		}
		if job == nil {
			return
		}

		w.processJob(job)
	}
}

func (w *Worker) processJob(job *db.Analysis) {
	logger.Info().Str("id", job.ID).Str("title", job.Title).Int("attempt", job.Attempts).Msg("analyzing document")
	w.notif.NotifyAnalysisUpdated(job.ID, db.AnalysisStatusRunning)

	client := vendors.GetOpenAI()
	if client == nil {
		w.fail(job, "OpenAI not configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	verdict, err := client.AnalyzeDocument(ctx, job.Title, job.DocumentText)
	if err != nil {
		w.fail(job, err.Error())
		return
	}

	risksJSON, _ := json.Marshal(verdict.Risks)
	tagsJSON, _ := json.Marshal(verdict.Tags)

	if err := db.CompleteAnalysis(job.ID, verdict.Summary, string(risksJSON), string(tagsJSON)); err != nil {
		logger.Error().Err(err).Str("id", job.ID).Msg("failed to store analysis verdict")
		return
	}

	logger.Info().Str("id", job.ID).Int("risks", len(verdict.Risks)).Msg("analysis complete")
	w.notif.NotifyAnalysisUpdated(job.ID, db.AnalysisStatusDone)
}

func (w *Worker) fail(job *db.Analysis, errMsg string) {
	if err := db.FailAnalysis(job.ID, errMsg, MaxAttempts); err != nil {
		logger.Error().Err(err).Str("id", job.ID).Msg("failed to record analysis failure")
		return
	}

	logger.Warn().Str("id", job.ID).Str("error", errMsg).Int("attempt", job.Attempts).Msg("analysis failed")
	w.notif.NotifyAnalysisUpdated(job.ID, db.AnalysisStatusFailed)
}
