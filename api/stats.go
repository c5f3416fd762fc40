package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/db"
)

// StatsResponse feeds the dashboard stat widgets
type StatsResponse struct {
	Matters struct {
		Active int64 `json:"active"`
		OnHold int64 `json:"onHold"`
		Closed int64 `json:"closed"`
		Total  int64 `json:"total"`
	} `json:"matters"`
	HearingsThisWeek    int64 `json:"hearingsThisWeek"`
	PendingAnalyses     int64 `json:"pendingAnalyses"`
	UnreadNotifications int   `json:"unreadNotifications"`
	SSESubscribers      int   `json:"sseSubscribers"`
}

// GetStats handles GET /api/stats
func (h *Handlers) GetStats(c *gin.Context) {
	var resp StatsResponse

	counts, err := db.CountMattersByStatus()
	if err != nil {
		RespondInternalError(c, "failed to count matters")
		return
	}
	resp.Matters.Active = counts[db.MatterStatusActive]
	resp.Matters.OnHold = counts[db.MatterStatusOnHold]
	resp.Matters.Closed = counts[db.MatterStatusClosed]
	for _, n := range counts {
		resp.Matters.Total += n
	}

	now := time.Now()
	weekHearings, err := db.Count(
		"SELECT COUNT(*) FROM hearings WHERE scheduled_at >= ? AND scheduled_at < ?",
		now.UnixMilli(), now.Add(7*24*time.Hour).UnixMilli(),
	)
	if err != nil {
		RespondInternalError(c, "failed to count hearings")
		return
	}
	resp.HearingsThisWeek = weekHearings

	pending, err := db.Count(
		"SELECT COUNT(*) FROM analyses WHERE status IN (?, ?)",
		db.AnalysisStatusTodo, db.AnalysisStatusRunning,
	)
	if err != nil {
		RespondInternalError(c, "failed to count analyses")
		return
	}
	resp.PendingAnalyses = pending

	resp.UnreadNotifications = h.store.Snapshot().UnreadCount()
	resp.SSESubscribers = h.notif.SubscriberCount()

	RespondData(c, resp)
}
