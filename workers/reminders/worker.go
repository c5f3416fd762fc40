package reminders

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lawmasters-app/lawmasters/appstate"
	"github.com/lawmasters-app/lawmasters/db"
	"github.com/lawmasters-app/lawmasters/log"
	"github.com/lawmasters-app/lawmasters/notifications"
)

// checkInterval is how often we scan for hearings entering the reminder window
const checkInterval = 5 * time.Minute

var logger = log.GetLogger("ReminderWorker")

// HearingSource provides the hearings pending a reminder.
// The db-backed implementation is the default; tests inject their own.
type HearingSource interface {
	Unreminded(fromMs, toMs int64) ([]db.Hearing, error)
	MarkReminded(id string) error
	MatterTitle(matterID string) string
}

// dbSource reads hearings from SQLite
type dbSource struct{}

func (dbSource) Unreminded(fromMs, toMs int64) ([]db.Hearing, error) {
	return db.UnremindedHearings(fromMs, toMs)
}

func (dbSource) MarkReminded(id string) error {
	return db.MarkHearingReminded(id)
}

func (dbSource) MatterTitle(matterID string) string {
	matter, err := db.GetMatter(matterID)
	if err != nil || matter == nil {
		return ""
	}
	return matter.Title
}

// Worker pushes hearing reminders into the session store and the event stream
type Worker struct {
	clock  clockwork.Clock
	store  *appstate.Store
	notif  *notifications.Service
	source HearingSource
	window time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// Options configures a reminder worker
type Options struct {
	Clock  clockwork.Clock
	Source HearingSource
}

// NewWorker creates a reminder worker scanning the given window ahead
func NewWorker(store *appstate.Store, notifService *notifications.Service, windowHours int, opts Options) *Worker {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	source := opts.Source
	if source == nil {
		source = dbSource{}
	}

	if windowHours <= 0 {
		windowHours = 24
	}

	return &Worker{
		clock:    clock,
		store:    store,
		notif:    notifService,
		source:   source,
		window:   time.Duration(windowHours) * time.Hour,
		stopChan: make(chan struct{}),
	}
}

// Start begins the reminder loop
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
	logger.Info().Dur("window", w.window).Msg("reminder worker started")
}

// Stop signals the worker to exit and waits for it to finish
func (w *Worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	logger.Info().Msg("reminder worker stopped")
}

func (w *Worker) loop() {
	defer w.wg.Done()

	// Scan immediately on startup, then on the ticker
	w.CheckOnce()

	ticker := w.clock.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			w.CheckOnce()
		case <-w.stopChan:
			return
		}
	}
}

// CheckOnce scans for hearings entering the reminder window and pushes a
// notification for each, at most once per hearing.
func (w *Worker) CheckOnce() {
	now := w.clock.Now().UnixMilli()
	until := w.clock.Now().Add(w.window).UnixMilli()

	hearings, err := w.source.Unreminded(now, until)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list upcoming hearings")
		return
	}

	for _, h := range hearings {
		title := w.source.MatterTitle(h.MatterID)
		if title == "" {
			title = "a matter"
		}

		when := time.UnixMilli(h.ScheduledAt).Format("02 Jan 2006 15:04")
		message := fmt.Sprintf("%s in %s on %s", h.Purpose, title, when)

		w.store.AddNotification(appstate.KindInfo, "Upcoming hearing", message)
		w.notif.NotifyHearingReminder(h.ID, h.MatterID, h.ScheduledAt)

		if err := w.source.MarkReminded(h.ID); err != nil {
			logger.Error().Err(err).Str("hearing", h.ID).Msg("failed to mark hearing reminded")
			continue
		}

		logger.Info().Str("hearing", h.ID).Str("matter", h.MatterID).Msg("hearing reminder sent")
	}
}
