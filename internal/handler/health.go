package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/takeyourtrade/collection-service/internal/database"
)

// ServiceInfo identifies the running service in health and root responses.
type ServiceInfo struct {
	Name    string
	Version string
}

// HealthResponse represents the response for the health and root endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Message string `json:"message,omitempty"`
}

// HandleHealth reports liveness and database connectivity.
func HandleHealth(info ServiceInfo, dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			slog.Error("Health check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Service: info.Name,
				Version: info.Version,
				Message: "database connection failed",
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: info.Name,
			Version: info.Version,
		})
	}
}

// HandleRoot identifies the service without touching any dependency.
func HandleRoot(info ServiceInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: info.Name,
			Version: info.Version,
		})
	}
}
