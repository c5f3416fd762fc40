package api

import (
	"github.com/gin-gonic/gin"
)

// StartTimer handles POST /api/timer/start.
// Starting over a running timer replaces it; the previous timer's
// accumulated duration is discarded.
func (h *Handlers) StartTimer(c *gin.Context) {
	var req struct {
		MatterID    string `json:"matterId"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if req.MatterID == "" || req.Description == "" {
		RespondValidationError(c, "matterId and description are required", nil)
		return
	}

	h.store.StartTimer(req.MatterID, req.Description)
	RespondData(c, toPayload(h.store.Snapshot()))
}

// PauseTimer handles POST /api/timer/pause
func (h *Handlers) PauseTimer(c *gin.Context) {
	h.store.PauseTimer()
	RespondData(c, toPayload(h.store.Snapshot()))
}

// StopTimer handles POST /api/timer/stop
func (h *Handlers) StopTimer(c *gin.Context) {
	h.store.StopTimer()
	RespondData(c, toPayload(h.store.Snapshot()))
}

// UpdateTimerDuration handles PUT /api/timer/duration
func (h *Handlers) UpdateTimerDuration(c *gin.Context) {
	var req struct {
		DurationMs *int64 `json:"durationMs"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.DurationMs == nil {
		RespondBadRequest(c, "durationMs (integer) is required")
		return
	}
	if *req.DurationMs < 0 {
		RespondValidationError(c, "durationMs must be non-negative", nil)
		return
	}

	h.store.UpdateTimerDuration(*req.DurationMs)
	RespondData(c, toPayload(h.store.Snapshot()))
}
