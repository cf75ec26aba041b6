package handler

import (
	"context"
	"net/http"
	"time"

	httputil "mentorbooking/pkg/http"
	"mentorbooking/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const readinessTimeout = 2 * time.Second

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache,omitempty"`
}

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// CachePinger reports whether the optional shared cache is reachable.
type CachePinger func(ctx context.Context) error

type HealthHandler struct {
	database Pinger
	cache    CachePinger
	log      *logger.Logger
}

func NewHealthHandler(database Pinger, cache CachePinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		database: database,
		cache:    cache,
		log:      log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ready", Database: "ok"}
	status := http.StatusOK

	if err := h.database.Ping(ctx, nil); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		resp.Status, resp.Database = "unavailable", "error"
		status = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		resp.Cache = "ok"
		if err := h.cache(ctx); err != nil {
			h.log.Error("Cache health check failed",
				"error", err,
				"path", r.URL.Path,
			)
			resp.Status, resp.Cache = "unavailable", "error"
			status = http.StatusServiceUnavailable
		}
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
