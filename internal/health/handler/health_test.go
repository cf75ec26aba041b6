package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mentorbooking/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	return p.err
}

func serve(h *HealthHandler, path string) (*httptest.ResponseRecorder, HealthResponse) {
	router := httprouter.New()
	h.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body HealthResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, body := serve(NewHealthHandler(stubPinger{err: errors.New("down")}, nil, logger.NewNop()), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body.Status)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		database   error
		cache      CachePinger
		wantStatus int
		want       HealthResponse
	}{
		{
			name:       "database only",
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ready", Database: "ok"},
		},
		{
			name:       "database down",
			database:   errors.New("no reachable servers"),
			wantStatus: http.StatusServiceUnavailable,
			want:       HealthResponse{Status: "unavailable", Database: "error"},
		},
		{
			name:       "cache up",
			cache:      func(context.Context) error { return nil },
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ready", Database: "ok", Cache: "ok"},
		},
		{
			name:       "cache down",
			cache:      func(context.Context) error { return errors.New("connection refused") },
			wantStatus: http.StatusServiceUnavailable,
			want:       HealthResponse{Status: "unavailable", Database: "ok", Cache: "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(stubPinger{err: tt.database}, tt.cache, logger.NewNop())
			rec, body := serve(h, "/ready")
			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.want, body)
		})
	}
}
