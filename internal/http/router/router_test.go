package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswapper-backend/internal/config"
	"github.com/ignatzorin/skillswapper-backend/internal/http/handlers"
	"github.com/ignatzorin/skillswapper-backend/internal/models"
	"github.com/ignatzorin/skillswapper-backend/internal/service"
)

func newTestEngine(t *testing.T) (*service.TokenManager, http.Handler) {
	t.Helper()
	return newTestEngineWithUploads(t, t.TempDir())
}

func newTestEngineWithUploads(t *testing.T, uploadsDir string) (*service.TokenManager, http.Handler) {
	t.Helper()
	cfg := &config.Config{
		Env:               "test",
		AllowedOrigins:    []string{"http://localhost:3000"},
		RateLimitLimit:    100,
		RateLimitPeriod:   time.Minute,
		UploadStoragePath: uploadsDir,
	}
	tokens := service.NewTokenManager("access-secret-for-tests-0123456789", "refresh-secret-for-tests-0123456789", time.Minute, time.Hour)

	h := Handlers{
		Auth:         handlers.NewAuthHandler(nil),
		Admin:        handlers.NewAdminHandler(nil),
		Profile:      handlers.NewProfileHandler(nil, 1<<20),
		Skill:        handlers.NewSkillHandler(nil),
		Match:        handlers.NewMatchHandler(nil, nil),
		Notification: handlers.NewNotificationHandler(nil),
		Health:       handlers.NewHealthHandler(nil),
	}
	return tokens, SetupRouter(cfg, h, tokens)
}

func request(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	_, r := newTestEngine(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/matches"},
		{http.MethodGet, "/api/matches/saved"},
		{http.MethodPost, "/api/matches/save"},
		{http.MethodPost, "/api/matches/accept"},
		{http.MethodPost, "/api/matches/decline"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodGet, "/api/notifications/unread-count"},
		{http.MethodPut, "/api/notifications/mark-all-read"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodGet, "/api/users/me/skills"},
	} {
		w := request(r, route.method, route.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestRouter_AdminRequiresAdminRole(t *testing.T) {
	tokens, r := newTestEngine(t)

	pair, err := tokens.GenerateAccess(uuid.New(), models.RoleUser)
	require.NoError(t, err)

	w := request(r, http.MethodGet, "/api/admin/users", pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_ParamValidation(t *testing.T) {
	tokens, r := newTestEngine(t)
	pair, err := tokens.GenerateAccess(uuid.New(), models.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, request(r, http.MethodGet, "/api/users/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusBadRequest, request(r, http.MethodGet, "/api/matches/detailed/nope", pair.AccessToken).Code)
	assert.Equal(t, http.StatusBadRequest, request(r, http.MethodPut, "/api/notifications/nope/read", pair.AccessToken).Code)
}

func TestRouter_Health(t *testing.T) {
	_, r := newTestEngine(t)

	w := request(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_UploadsServeFilesWithoutListing(t *testing.T) {
	dir := t.TempDir()
	userDir := uuid.NewString()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, userDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, userDir, "avatar.png"), []byte("png-bytes"), 0o644))

	_, r := newTestEngineWithUploads(t, dir)

	w := request(r, http.MethodGet, "/uploads/"+userDir+"/avatar.png", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())

	w = request(r, http.MethodGet, "/uploads/", "")
	assert.NotContains(t, w.Body.String(), userDir)

	w = request(r, http.MethodGet, "/uploads/"+userDir+"/", "")
	assert.NotContains(t, w.Body.String(), "avatar.png")
}
