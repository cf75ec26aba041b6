package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mentorbooking/pkg/config"
	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123"

type pingHandler struct{}

func (pingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/ping", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := config.FromEnv("test")
	cfg.Log = logger.NewNop()
	cfg.JWTSecret = testSecret
	cfg.JWTIssuer = "test"

	a := NewApplication(cfg)
	a.SetApp(pingHandler{})
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateLimiter.Stop()
	})
	return a
}

func TestApplication_HealthSkipsAuthentication(t *testing.T) {
	a := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApplication_RequiresBearerToken(t *testing.T) {
	a := newTestApplication(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := middleware.NewAuthenticator(testSecret, "test").
		IssueToken("student@example.com", middleware.RoleStudent, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
