package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/PredictionContest_Go/internal/database"
	"github.com/osse101/PredictionContest_Go/internal/logger"
)

const readinessTimeout = 2 * time.Second

// HealthResponse is the body of /healthz and /readyz
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	StorageMS *int64 `json:"storage_ms,omitempty"`
}

// HandleHealthz reports that the process is serving
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz pings the contest store and reports how long it took
// @Summary Readiness check
// @Description 503 while the contest store does not answer within two seconds
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(store database.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		start := time.Now()
		err := store.Ping(ctx)
		took := time.Since(start).Milliseconds()

		if err != nil {
			logger.FromContext(ctx).Error("Readiness check failed", "error", err, "took_ms", took)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "contest store unreachable",
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", StorageMS: &took})
	}
}
