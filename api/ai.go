package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/db"
	"github.com/lawmasters-app/lawmasters/vendors"
)

// maxDocumentBytes caps the analyzable document size
const maxDocumentBytes = 512 * 1024

// SubmitAnalysis handles POST /api/ai/analyze.
// The document is queued; workers pick it up asynchronously.
func (h *Handlers) SubmitAnalysis(c *gin.Context) {
	var req struct {
		MatterID     *string `json:"matterId"`
		Title        string  `json:"title"`
		DocumentText string  `json:"documentText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	if req.Title == "" || req.DocumentText == "" {
		RespondValidationError(c, "title and documentText are required", nil)
		return
	}
	if len(req.DocumentText) > maxDocumentBytes {
		RespondValidationError(c, "documentText exceeds the 512 KiB limit", nil)
		return
	}

	if vendors.GetOpenAI() == nil {
		RespondServiceUnavailable(c, "AI analysis is not configured")
		return
	}

	if req.MatterID != nil {
		matter, err := db.GetMatter(*req.MatterID)
		if err != nil {
			RespondInternalError(c, "failed to load matter")
			return
		}
		if matter == nil {
			RespondNotFound(c, "matter not found")
			return
		}
	}

	analysis, err := db.EnqueueAnalysis(req.MatterID, req.Title, req.DocumentText)
	if err != nil {
		RespondInternalError(c, "failed to queue analysis")
		return
	}

	h.analysisWorker.Nudge()

	c.Header("Location", fmt.Sprintf("/api/ai/analyses/%s", analysis.ID))
	RespondAccepted(c, analysis)
}

// GetAnalysis handles GET /api/ai/analyses/:id
func (h *Handlers) GetAnalysis(c *gin.Context) {
	analysis, err := db.GetAnalysis(c.Param("id"))
	if err != nil {
		RespondInternalError(c, "failed to load analysis")
		return
	}
	if analysis == nil {
		RespondNotFound(c, "analysis not found")
		return
	}

	RespondData(c, analysis)
}

// ListAnalyses handles GET /api/ai/analyses?matterId=
func (h *Handlers) ListAnalyses(c *gin.Context) {
	analyses, err := db.ListAnalyses()
	if err != nil {
		RespondInternalError(c, "failed to list analyses")
		return
	}

	if matterID := c.Query("matterId"); matterID != "" {
		filtered := analyses[:0]
		for _, a := range analyses {
			if a.MatterID != nil && *a.MatterID == matterID {
				filtered = append(filtered, a)
			}
		}
		analyses = filtered
	}

	RespondList(c, analyses, nil)
}
