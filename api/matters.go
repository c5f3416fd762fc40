package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/db"
	"github.com/lawmasters-app/lawmasters/vendors"
)

// ListMatters handles GET /api/matters?status=
func (h *Handlers) ListMatters(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", db.MatterStatusActive, db.MatterStatusOnHold, db.MatterStatusClosed:
	default:
		RespondValidationError(c, "status must be one of active, on-hold, closed", nil)
		return
	}

	matters, err := db.ListMatters(status)
	if err != nil {
		RespondInternalError(c, "failed to list matters")
		return
	}

	RespondList(c, matters, nil)
}

// GetMatter handles GET /api/matters/:id
func (h *Handlers) GetMatter(c *gin.Context) {
	matter, err := db.GetMatter(c.Param("id"))
	if err != nil {
		RespondInternalError(c, "failed to load matter")
		return
	}
	if matter == nil {
		RespondNotFound(c, "matter not found")
		return
	}

	RespondData(c, matter)
}

type matterRequest struct {
	CNR        *string `json:"cnr"`
	Title      string  `json:"title"`
	ClientName string  `json:"clientName"`
	MatterType string  `json:"matterType"`
	Court      string  `json:"court"`
	Status     string  `json:"status"`
}

func (r *matterRequest) validate(requireStatus bool) []ErrorDetail {
	var details []ErrorDetail
	if r.Title == "" {
		details = append(details, ErrorDetail{Field: "title", Message: "title is required"})
	}
	if r.ClientName == "" {
		details = append(details, ErrorDetail{Field: "clientName", Message: "clientName is required"})
	}
	if r.MatterType == "" {
		details = append(details, ErrorDetail{Field: "matterType", Message: "matterType is required"})
	}
	if r.Court == "" {
		details = append(details, ErrorDetail{Field: "court", Message: "court is required"})
	}
	if requireStatus {
		switch r.Status {
		case db.MatterStatusActive, db.MatterStatusOnHold, db.MatterStatusClosed:
		default:
			details = append(details, ErrorDetail{Field: "status", Message: "status must be one of active, on-hold, closed"})
		}
	}
	return details
}

// CreateMatter handles POST /api/matters
func (h *Handlers) CreateMatter(c *gin.Context) {
	var req matterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if details := req.validate(false); len(details) > 0 {
		RespondValidationError(c, "invalid matter", details)
		return
	}

	matter, err := db.CreateMatter(req.CNR, req.Title, req.ClientName, req.MatterType, req.Court)
	if err != nil {
		RespondInternalError(c, "failed to create matter")
		return
	}

	h.notif.NotifyMatterChanged(matter.ID, "created")
	h.meiliSync.Nudge()

	RespondCreated(c, matter, fmt.Sprintf("/api/matters/%s", matter.ID))
}

// UpdateMatter handles PUT /api/matters/:id
func (h *Handlers) UpdateMatter(c *gin.Context) {
	id := c.Param("id")

	var req matterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if details := req.validate(true); len(details) > 0 {
		RespondValidationError(c, "invalid matter", details)
		return
	}

	existing, err := db.GetMatter(id)
	if err != nil {
		RespondInternalError(c, "failed to load matter")
		return
	}
	if existing == nil {
		RespondNotFound(c, "matter not found")
		return
	}

	matter, err := db.UpdateMatter(id, req.CNR, req.Title, req.ClientName, req.MatterType, req.Court, req.Status)
	if err != nil {
		RespondInternalError(c, "failed to update matter")
		return
	}

	h.notif.NotifyMatterChanged(id, "updated")
	h.meiliSync.Nudge()

	RespondData(c, matter)
}

// DeleteMatter handles DELETE /api/matters/:id
func (h *Handlers) DeleteMatter(c *gin.Context) {
	id := c.Param("id")

	existing, err := db.GetMatter(id)
	if err != nil {
		RespondInternalError(c, "failed to load matter")
		return
	}
	if existing == nil {
		RespondNotFound(c, "matter not found")
		return
	}

	if err := db.DeleteMatter(id); err != nil {
		RespondInternalError(c, "failed to delete matter")
		return
	}

	// Best-effort removal from the search index; the sync worker cannot
	// see deleted rows
	if meili := vendors.GetMeiliClient(); meili != nil {
		if err := meili.DeleteMatter(id); err != nil {
			apiLogger.Warn().Err(err).Str("matter", id).Msg("failed to remove matter from search index")
		}
	}

	h.notif.NotifyMatterChanged(id, "deleted")
	RespondNoContent(c)
}
