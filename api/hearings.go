package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/db"
)

// ListUpcomingHearings handles GET /api/hearings?days=
// Returns hearings scheduled from now through the requested window.
func (h *Handlers) ListUpcomingHearings(c *gin.Context) {
	days := 7
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 365 {
			RespondValidationError(c, "days must be between 1 and 365", nil)
			return
		}
		days = parsed
	}

	now := time.Now()
	hearings, err := db.ListUpcomingHearings(
		now.UnixMilli(),
		now.Add(time.Duration(days)*24*time.Hour).UnixMilli(),
	)
	if err != nil {
		RespondInternalError(c, "failed to list hearings")
		return
	}

	RespondList(c, hearings, nil)
}

// ListMatterHearings handles GET /api/matters/:id/hearings
func (h *Handlers) ListMatterHearings(c *gin.Context) {
	matterID := c.Param("id")

	matter, err := db.GetMatter(matterID)
	if err != nil {
		RespondInternalError(c, "failed to load matter")
		return
	}
	if matter == nil {
		RespondNotFound(c, "matter not found")
		return
	}

	hearings, err := db.ListHearings(matterID)
	if err != nil {
		RespondInternalError(c, "failed to list hearings")
		return
	}

	RespondList(c, hearings, nil)
}

type hearingRequest struct {
	ScheduledAt int64   `json:"scheduledAt"` // epoch ms
	Purpose     string  `json:"purpose"`
	Courtroom   *string `json:"courtroom"`
	Judge       *string `json:"judge"`
	Outcome     *string `json:"outcome"`
}

// CreateHearing handles POST /api/matters/:id/hearings
func (h *Handlers) CreateHearing(c *gin.Context) {
	matterID := c.Param("id")

	var req hearingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if req.ScheduledAt <= 0 || req.Purpose == "" {
		RespondValidationError(c, "scheduledAt and purpose are required", nil)
		return
	}

	hearing, err := db.CreateHearing(matterID, req.ScheduledAt, req.Purpose, req.Courtroom, req.Judge)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			RespondNotFound(c, "matter not found")
			return
		}
		RespondInternalError(c, "failed to create hearing")
		return
	}

	h.notif.NotifyMatterChanged(matterID, "hearing-scheduled")
	RespondCreated(c, hearing, "")
}

// UpdateHearing handles PUT /api/hearings/:id
func (h *Handlers) UpdateHearing(c *gin.Context) {
	var req hearingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if req.ScheduledAt <= 0 || req.Purpose == "" {
		RespondValidationError(c, "scheduledAt and purpose are required", nil)
		return
	}

	hearing, err := db.UpdateHearing(c.Param("id"), req.ScheduledAt, req.Purpose, req.Courtroom, req.Judge, req.Outcome)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			RespondNotFound(c, "hearing not found")
			return
		}
		RespondInternalError(c, "failed to update hearing")
		return
	}

	h.notif.NotifyMatterChanged(hearing.MatterID, "hearing-updated")
	RespondData(c, hearing)
}

// DeleteHearing handles DELETE /api/hearings/:id
func (h *Handlers) DeleteHearing(c *gin.Context) {
	if err := db.DeleteHearing(c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			RespondNotFound(c, "hearing not found")
			return
		}
		RespondInternalError(c, "failed to delete hearing")
		return
	}

	RespondNoContent(c)
}
