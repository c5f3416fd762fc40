package api

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/lawmasters-app/lawmasters/vendors"
)

// CNR numbers are 16 alphanumeric characters (e.g. DLHC010012342024)
var cnrPattern = regexp.MustCompile(`^[A-Z0-9]{16}$`)

var causeListDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// GetCaseByCNR handles GET /api/ecourts/case/:cnr
func (h *Handlers) GetCaseByCNR(c *gin.Context) {
	cnr := c.Param("cnr")
	if !cnrPattern.MatchString(cnr) {
		RespondValidationError(c, "cnr must be 16 uppercase alphanumeric characters", nil)
		return
	}

	client := vendors.GetECourtsClient()
	if client == nil {
		RespondServiceUnavailable(c, "eCourts lookups are not configured")
		return
	}

	status, err := client.CaseByCNR(c.Request.Context(), cnr)
	if err != nil {
		apiLogger.Warn().Err(err).Str("cnr", cnr).Msg("eCourts lookup failed")
		RespondInternalError(c, "eCourts lookup failed")
		return
	}

	RespondData(c, status)
}

// GetCauseList handles GET /api/ecourts/causelist?court=&date=
func (h *Handlers) GetCauseList(c *gin.Context) {
	court := c.Query("court")
	if court == "" {
		RespondValidationError(c, "court query parameter is required", nil)
		return
	}
	date := c.Query("date")
	if !causeListDatePattern.MatchString(date) {
		RespondValidationError(c, "date must be in YYYY-MM-DD format", nil)
		return
	}

	client := vendors.GetECourtsClient()
	if client == nil {
		RespondServiceUnavailable(c, "eCourts lookups are not configured")
		return
	}

	cases, err := client.CauseList(c.Request.Context(), court, date)
	if err != nil {
		apiLogger.Warn().Err(err).Str("court", court).Str("date", date).Msg("eCourts cause list failed")
		RespondInternalError(c, "eCourts lookup failed")
		return
	}

	RespondList(c, cases, nil)
}
