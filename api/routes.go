package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/db"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *Handlers) {
	// API group
	api := r.Group("/api")

	// Session store
	api.GET("/appstate", h.GetAppState)
	api.PUT("/appstate/sidebar", h.SetSidebar)
	api.POST("/appstate/darkmode/toggle", h.ToggleDarkMode)
	api.PUT("/appstate/preferences", h.UpdatePreferences)
	api.GET("/appstate/stream", h.AppStateStream)
	api.GET("/appstate/ws", h.AppStateWS)

	// Work timer
	api.POST("/timer/start", h.StartTimer)
	api.POST("/timer/pause", h.PauseTimer)
	api.POST("/timer/stop", h.StopTimer)
	api.PUT("/timer/duration", h.UpdateTimerDuration)

	// In-store notifications
	api.GET("/notifications", h.ListNotifications)
	api.POST("/notifications", h.AddNotification)
	api.POST("/notifications/:id/read", h.MarkNotificationRead)
	api.DELETE("/notifications", h.ClearNotifications)

	// Recents and pins
	api.POST("/recents/:matterId", h.AddRecentMatter)
	api.POST("/pins/:itemId/toggle", h.TogglePin)

	// Matters
	api.GET("/matters", h.ListMatters)
	api.POST("/matters", h.CreateMatter)
	api.GET("/matters/:id", h.GetMatter)
	api.PUT("/matters/:id", h.UpdateMatter)
	api.DELETE("/matters/:id", h.DeleteMatter)
	api.GET("/matters/:id/hearings", h.ListMatterHearings)
	api.POST("/matters/:id/hearings", h.CreateHearing)

	// Parties
	api.GET("/parties", h.ListParties)
	api.POST("/parties", h.CreateParty)
	api.GET("/parties/:id", h.GetParty)
	api.PUT("/parties/:id", h.UpdateParty)
	api.DELETE("/parties/:id", h.DeleteParty)

	// Hearings
	api.GET("/hearings", h.ListUpcomingHearings)
	api.PUT("/hearings/:id", h.UpdateHearing)
	api.DELETE("/hearings/:id", h.DeleteHearing)

	// Search
	api.GET("/search", h.Search)

	// Stats
	api.GET("/stats", h.GetStats)

	// AI analysis
	api.POST("/ai/analyze", h.SubmitAnalysis)
	api.GET("/ai/analyses", h.ListAnalyses)
	api.GET("/ai/analyses/:id", h.GetAnalysis)

	// eCourts
	api.GET("/ecourts/case/:cnr", h.GetCaseByCNR)
	api.GET("/ecourts/causelist", h.GetCauseList)

	// Health
	api.GET("/health", h.Health)
}

// Health handles GET /api/health
func (h *Handlers) Health(c *gin.Context) {
	version, err := db.GetCurrentVersion()
	if err != nil {
		RespondServiceUnavailable(c, "database unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"schemaVersion": version,
	})
}
