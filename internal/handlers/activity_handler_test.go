package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"activities-system/config"
	"activities-system/internal/services"
	"activities-system/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	_ "github.com/pocketbase/pocketbase/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()

	app := core.NewBaseApp(core.BaseAppConfig{DataDir: t.TempDir()})
	require.NoError(t, app.Bootstrap())
	t.Cleanup(func() {
		_ = app.ResetBootstrapState()
	})

	require.NoError(t, services.EnsureSchema(app))
	require.NoError(t, services.EnsureDefaultActivities(app))

	cfg := &config.Config{
		StaticDir:         t.TempDir(),
		SignupLockTimeout: time.Second,
	}
	handler := NewActivityHandler(
		app,
		services.NewActivityService(app),
		services.NewLockService(nil, cfg.SignupLockTimeout),
		nil,
	)

	r, err := apis.NewRouter(app)
	require.NoError(t, err)
	BindRoutes(r, cfg, handler, nil)

	mux, err := r.BuildMux()
	require.NoError(t, err)
	return mux
}

func doRequest(t *testing.T, mux http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func signupURL(activityName, email string) string {
	return "/activities/" + url.PathEscape(activityName) + "/signup?email=" + url.QueryEscape(email)
}

func listActivities(t *testing.T, mux http.Handler) map[string]models.ActivityDetail {
	t.Helper()

	rec := doRequest(t, mux, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)

	var activities map[string]models.ActivityDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activities))
	return activities
}

func TestRootRedirectsToStaticIndex(t *testing.T) {
	mux := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/static/index.html", rec.Header().Get("Location"))
}

func TestListActivities(t *testing.T) {
	mux := setupTestServer(t)

	activities := listActivities(t, mux)
	require.Len(t, activities, 3)

	chess, ok := activities["Chess Club"]
	require.True(t, ok)
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t, "Fridays, 3:30 PM - 5:00 PM", chess.Schedule)
	assert.NotNil(t, chess.Participants)
	assert.Empty(t, chess.Participants)
}

func TestSignupAndUnregisterFlow(t *testing.T) {
	mux := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, signupURL("Chess Club", "a@x.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Successfully signed up for Chess Club")

	activities := listActivities(t, mux)
	assert.Equal(t, []string{"a@x.com"}, activities["Chess Club"].Participants)

	rec = doRequest(t, mux, http.MethodDelete, signupURL("Chess Club", "a@x.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Successfully removed from Chess Club")

	activities = listActivities(t, mux)
	assert.Empty(t, activities["Chess Club"].Participants)
}

func TestSignup_UnknownActivity(t *testing.T) {
	mux := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, signupURL("Drama Club", "a@x.com"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Activity not found")
}

func TestSignup_Duplicate(t *testing.T) {
	mux := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, signupURL("Chess Club", "a@x.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, signupURL("Chess Club", "a@x.com"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already signed up for this activity")
}

func TestSignup_Full(t *testing.T) {
	mux := setupTestServer(t)

	for i := 0; i < 12; i++ {
		rec := doRequest(t, mux, http.MethodPost, signupURL("Chess Club", string(rune('a'+i))+"@x.com"))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, mux, http.MethodPost, signupURL("Chess Club", "late@x.com"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Activity is full")
}

func TestSignup_MissingEmail(t *testing.T) {
	mux := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodPost, "/activities/Chess%20Club/signup")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is required")
}

func TestUnregister_UnknownActivity(t *testing.T) {
	mux := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodDelete, signupURL("Drama Club", "a@x.com"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Activity not found")
}

func TestUnregister_NotSignedUp(t *testing.T) {
	mux := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodDelete, signupURL("Chess Club", "ghost@x.com"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Student not found in this activity")
}

func TestHealthCheck(t *testing.T) {
	mux := setupTestServer(t)

	rec := doRequest(t, mux, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
