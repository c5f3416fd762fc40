package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/appstate"
)

// In-store notification endpoints. These operate on the session store's
// bounded notification list, not the SSE event stream.

// ListNotifications handles GET /api/notifications
func (h *Handlers) ListNotifications(c *gin.Context) {
	snap := h.store.Snapshot()
	RespondData(c, gin.H{
		"notifications": snap.Notifications,
		"unreadCount":   snap.UnreadCount(),
	})
}

// AddNotification handles POST /api/notifications
func (h *Handlers) AddNotification(c *gin.Context) {
	var req struct {
		Kind    string `json:"kind"`
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}

	kind := appstate.NotificationKind(req.Kind)
	switch kind {
	case appstate.KindInfo, appstate.KindWarning, appstate.KindError, appstate.KindSuccess:
	case "":
		kind = appstate.KindInfo
	default:
		RespondValidationError(c, "kind must be one of info, warning, error, success", nil)
		return
	}

	if req.Title == "" {
		RespondValidationError(c, "title is required", nil)
		return
	}

	id := h.store.AddNotification(kind, req.Title, req.Message)
	RespondCreated(c, gin.H{
		"id":       id,
		"snapshot": toPayload(h.store.Snapshot()),
	}, "")
}

// MarkNotificationRead handles POST /api/notifications/:id/read.
// Unknown ids are accepted and leave the list unchanged.
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	h.store.MarkNotificationRead(c.Param("id"))
	RespondData(c, toPayload(h.store.Snapshot()))
}

// ClearNotifications handles DELETE /api/notifications
func (h *Handlers) ClearNotifications(c *gin.Context) {
	h.store.ClearNotifications()
	RespondData(c, toPayload(h.store.Snapshot()))
}
