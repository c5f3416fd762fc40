package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawmasters-app/lawmasters/db"
)

func TestMain(m *testing.M) {
	code := m.Run()
	db.Close()
	os.RemoveAll("./data")
	os.Exit(code)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetPartyRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	matter, err := db.CreateMatter(nil, "Verma v. Union", "A. Verma", "civil", "Bombay HC")
	require.NoError(t, err)

	party, err := db.CreateParty(matter.ID, "A. Verma", db.PartyRolePetitioner, nil)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/api/parties/"+party.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, party.ID, data["id"])
	assert.Equal(t, matter.ID, data["matterId"])
	assert.Equal(t, "A. Verma", data["name"])
}

func TestGetPartyNotFoundEnvelope(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/parties/no-such-party", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "party not found", resp.Error.Message)
}
