package api

import (
	"github.com/lawmasters-app/lawmasters/appstate"
	"github.com/lawmasters-app/lawmasters/log"
	"github.com/lawmasters-app/lawmasters/notifications"
	"github.com/lawmasters-app/lawmasters/workers/analysis"
	"github.com/lawmasters-app/lawmasters/workers/meili"
)

var apiLogger = log.GetLogger("Api")

// Handlers holds references to the services the API exposes
type Handlers struct {
	store          *appstate.Store
	notif          *notifications.Service
	meiliSync      *meili.SyncWorker
	analysisWorker *analysis.Worker
}

// NewHandlers creates a new Handlers instance
func NewHandlers(store *appstate.Store, notif *notifications.Service, meiliSync *meili.SyncWorker, analysisWorker *analysis.Worker) *Handlers {
	return &Handlers{
		store:          store,
		notif:          notif,
		meiliSync:      meiliSync,
		analysisWorker: analysisWorker,
	}
}
