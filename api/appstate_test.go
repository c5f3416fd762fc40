package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawmasters-app/lawmasters/appstate"
	"github.com/lawmasters-app/lawmasters/notifications"
	"github.com/lawmasters-app/lawmasters/workers/analysis"
	"github.com/lawmasters-app/lawmasters/workers/meili"
)

func newTestRouter(t *testing.T) (*gin.Engine, *appstate.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := appstate.New(appstate.Options{})
	notif := notifications.NewService()
	t.Cleanup(func() {
		notif.Shutdown()
		store.Close()
	})

	// Workers are wired but never started; these endpoints don't reach them
	h := NewHandlers(store, notif, meili.NewSyncWorker(), analysis.NewWorker(1, notif))

	r := gin.New()
	SetupRoutes(r, h)
	return r, store
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestGetAppStateReturnsDefaults(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/appstate", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, true, data["sidebarOpen"])
	assert.Equal(t, false, data["darkMode"])
	assert.Equal(t, "en", data["language"])
	assert.Equal(t, true, data["bciSafeMode"])
	assert.Equal(t, "Asia/Kolkata", data["timezone"])
	assert.Equal(t, "DD/MM/YYYY", data["dateFormat"])
	assert.Equal(t, float64(0), data["unreadCount"])
	assert.Nil(t, data["activeTimer"])
}

func TestSetSidebarRequiresOpen(t *testing.T) {
	r, store := newTestRouter(t)

	w := doRequest(r, http.MethodPut, "/api/appstate/sidebar", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/api/appstate/sidebar", `{"open": false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.Snapshot().SidebarOpen)
}

func TestToggleDarkModeRoundTrip(t *testing.T) {
	r, store := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/appstate/darkmode/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.Snapshot().DarkMode)

	doRequest(r, http.MethodPost, "/api/appstate/darkmode/toggle", "")
	assert.False(t, store.Snapshot().DarkMode)
}

func TestUpdatePreferencesPartial(t *testing.T) {
	r, store := newTestRouter(t)

	w := doRequest(r, http.MethodPut, "/api/appstate/preferences", `{"language": "hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	snap := store.Snapshot()
	assert.Equal(t, "hi", snap.Language)
	// Untouched fields keep their values
	assert.True(t, snap.BCISafeMode)
	assert.Equal(t, "Asia/Kolkata", snap.Timezone)
}

func TestUpdatePreferencesIgnoresUnknownLanguage(t *testing.T) {
	r, store := newTestRouter(t)

	w := doRequest(r, http.MethodPut, "/api/appstate/preferences", `{"language": "fr"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "en", store.Snapshot().Language)
}

func TestTimerLifecycle(t *testing.T) {
	r, store := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/timer/start", `{"matterId": "m1", "description": "Drafting"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.Snapshot().ActiveTimer)

	w = doRequest(r, http.MethodPut, "/api/timer/duration", `{"durationMs": 60000}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(60000), store.Snapshot().ActiveTimer.Duration)

	w = doRequest(r, http.MethodPost, "/api/timer/stop", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, store.Snapshot().ActiveTimer)
}

func TestStartTimerValidation(t *testing.T) {
	r, store := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/timer/start", `{"matterId": "", "description": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, store.Snapshot().ActiveTimer)
}

func TestNegativeDurationRejected(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPut, "/api/timer/duration", `{"durationMs": -5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	r, store := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/notifications", `{"kind": "info", "title": "Filed", "message": "Appeal filed"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := decodeData(t, w)["id"].(string)
	require.NotEmpty(t, id)

	w = doRequest(r, http.MethodPost, "/api/notifications/"+id+"/read", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.Snapshot().UnreadCount())

	// Unknown id is accepted and changes nothing
	w = doRequest(r, http.MethodPost, "/api/notifications/nope/read", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.Snapshot().Notifications, 1)

	w = doRequest(r, http.MethodDelete, "/api/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.Snapshot().Notifications)
}

func TestNotificationKindValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/notifications", `{"kind": "shout", "title": "x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPinToggleEndpoint(t *testing.T) {
	r, store := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/pins/matter-7/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.IsPinned("matter-7"))

	doRequest(r, http.MethodPost, "/api/pins/matter-7/toggle", "")
	assert.False(t, store.IsPinned("matter-7"))
}

func TestRecentsEndpoint(t *testing.T) {
	r, store := newTestRouter(t)

	doRequest(r, http.MethodPost, "/api/recents/m1", "")
	doRequest(r, http.MethodPost, "/api/recents/m2", "")
	doRequest(r, http.MethodPost, "/api/recents/m1", "")

	assert.Equal(t, []string{"m1", "m2"}, store.Snapshot().RecentMatters)
}
