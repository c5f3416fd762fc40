package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/appstate"
)

// snapshotPayload is the wire form of a store snapshot, with the derived
// unread count included so clients don't recompute it
type snapshotPayload struct {
	appstate.Snapshot
	UnreadCount int `json:"unreadCount"`
}

func toPayload(snap appstate.Snapshot) snapshotPayload {
	return snapshotPayload{Snapshot: snap, UnreadCount: snap.UnreadCount()}
}

// GetAppState handles GET /api/appstate
func (h *Handlers) GetAppState(c *gin.Context) {
	RespondData(c, toPayload(h.store.Snapshot()))
}

// SetSidebar handles PUT /api/appstate/sidebar
func (h *Handlers) SetSidebar(c *gin.Context) {
	var req struct {
		Open *bool `json:"open"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Open == nil {
		RespondBadRequest(c, "open (boolean) is required")
		return
	}

	h.store.SetSidebarOpen(*req.Open)
	RespondData(c, toPayload(h.store.Snapshot()))
}

// ToggleDarkMode handles POST /api/appstate/darkmode/toggle
func (h *Handlers) ToggleDarkMode(c *gin.Context) {
	h.store.ToggleDarkMode()
	RespondData(c, toPayload(h.store.Snapshot()))
}

// UpdatePreferences handles PUT /api/appstate/preferences.
// Absent fields are left unchanged; unknown language codes are ignored
// by the store.
func (h *Handlers) UpdatePreferences(c *gin.Context) {
	var req struct {
		Language    *string `json:"language"`
		BCISafeMode *bool   `json:"bciSafeMode"`
		Timezone    *string `json:"timezone"`
		DateFormat  *string `json:"dateFormat"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}

	if req.Language != nil {
		h.store.SetLanguage(*req.Language)
	}
	if req.BCISafeMode != nil {
		h.store.SetBCISafeMode(*req.BCISafeMode)
	}
	if req.Timezone != nil {
		h.store.SetTimezone(*req.Timezone)
	}
	if req.DateFormat != nil {
		h.store.SetDateFormat(*req.DateFormat)
	}

	RespondData(c, toPayload(h.store.Snapshot()))
}

// AddRecentMatter handles POST /api/recents/:matterId
func (h *Handlers) AddRecentMatter(c *gin.Context) {
	matterID := c.Param("matterId")
	if matterID == "" {
		RespondBadRequest(c, "matterId is required")
		return
	}

	h.store.AddRecentMatter(matterID)
	RespondData(c, toPayload(h.store.Snapshot()))
}

// TogglePin handles POST /api/pins/:itemId/toggle
func (h *Handlers) TogglePin(c *gin.Context) {
	itemID := c.Param("itemId")
	if itemID == "" {
		RespondBadRequest(c, "itemId is required")
		return
	}

	h.store.TogglePinnedItem(itemID)
	RespondData(c, gin.H{
		"pinned":   h.store.IsPinned(itemID),
		"snapshot": toPayload(h.store.Snapshot()),
	})
}
