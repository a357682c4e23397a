package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"starboard/core/log"
	"starboard/middleware"
)

const healthCheckTimeout = 2 * time.Second

// DatabasePinger is satisfied by *sqlx.DB
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db DatabasePinger
}

func NewHealthHandler(db DatabasePinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status, body := http.StatusOK, `{"status":"ok"}`
	if err := h.db.PingContext(ctx); err != nil {
		log.Warn("⚠️ Health check failed to reach the database", "error", err)
		status, body = http.StatusServiceUnavailable, `{"status":"unavailable"}`
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Error("❌ Failed to write health check response", "error", err)
	}
}

// NewRouter builds the HTTP surface of the bot
func NewRouter(health *HealthHandler, alerts *middleware.ErrorAlertMiddleware) *mux.Router {
	router := mux.NewRouter()
	router.Use(alerts.HTTPMiddleware)
	router.HandleFunc("/health", health.HandleHealth).Methods(http.MethodGet)
	return router
}
