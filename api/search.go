package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/vendors"
)

// Search handles GET /api/search?q=&status=&court=&limit=&offset=
func (h *Handlers) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		RespondBadRequest(c, "q query parameter is required")
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	offset := 0
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	meili := vendors.GetMeiliClient()
	if meili == nil {
		RespondServiceUnavailable(c, "search is not configured")
		return
	}

	result, err := meili.Search(query, vendors.MeiliSearchOptions{
		Limit:        limit,
		Offset:       offset,
		StatusFilter: c.Query("status"),
		CourtFilter:  c.Query("court"),
	})
	if err != nil {
		apiLogger.Error().Err(err).Str("query", query).Msg("search failed")
		RespondInternalError(c, "search failed")
		return
	}

	RespondList(c, result.Hits, &Pagination{
		Total:  &result.EstimatedTotalHits,
		Limit:  &result.Limit,
		Offset: &result.Offset,
	})
}
