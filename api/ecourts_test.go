package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCaseByCNRRejectsMalformedCNR(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, cnr := range []string{"short", "dlhc010012342024", "DLHC01001234202!"} {
		w := doRequest(r, http.MethodGet, "/api/ecourts/case/"+cnr, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "cnr %q", cnr)
	}
}

func TestGetCauseListRequiresCourt(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/ecourts/causelist?date=2026-08-25", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
}

func TestGetCauseListValidatesDate(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, date := range []string{"", "25-08-2026", "2026/08/25", "tomorrow"} {
		w := doRequest(r, http.MethodGet, "/api/ecourts/causelist?court=DLHC&date="+date, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "date %q", date)
	}
}
